package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/owbinding/onewire-go/pkg/config"
	"github.com/owbinding/onewire-go/pkg/discovery"
	"github.com/owbinding/onewire-go/pkg/inbox"
)

var (
	scanAddress string
	scanFixture string
	scanBridge  string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the configured bridges once",
	Long: `Scan every configured bridge once and print the discovered devices.

--address or --fixture scan a single bridge without a config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bridges, err := scanTargets()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, closeEvents, err := openEventLog()
		if err != nil {
			return err
		}
		defer closeEvents()

		in := inbox.New(logger)
		services, closeServices, err := openServices(bridges, in, events)
		if err != nil {
			return err
		}
		defer closeServices()

		sched := discovery.NewScheduler(discovery.SchedulerConfig{
			MaxConcurrent: cfg.Discovery.MaxConcurrent,
			Logger:        logger,
		}, services...)

		out := cmd.OutOrStdout()
		for _, report := range sched.ScanAll(ctx) {
			if report != nil {
				printReport(out, report)
			}
		}
		fmt.Fprintf(out, "%d devices discovered\n", in.Len())
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanAddress, "address", "", "owserver address (host[:port])")
	scanCmd.Flags().StringVar(&scanFixture, "fixture", "", "simulated bus topology file")
	scanCmd.Flags().StringVar(&scanBridge, "bridge", "", "bridge id (default: only bridge from config, or \"default\")")
	scanCmd.MarkFlagsMutuallyExclusive("address", "fixture")
	rootCmd.AddCommand(scanCmd)
}

// scanTargets returns the bridges selected by the scan flags.
func scanTargets() ([]config.Bridge, error) {
	if scanAddress != "" || scanFixture != "" {
		id := scanBridge
		if id == "" {
			id = "default"
		}
		b := config.Bridge{
			ID:      id,
			Address: scanAddress,
			Fixture: scanFixture,
			Timeout: config.Duration(config.DefaultBridgeTimeout),
		}
		return []config.Bridge{b}, nil
	}

	if scanBridge != "" {
		for _, b := range cfg.Bridges {
			if b.ID == scanBridge {
				return []config.Bridge{b}, nil
			}
		}
		return nil, fmt.Errorf("unknown bridge %q", scanBridge)
	}

	if len(cfg.Bridges) == 0 {
		return nil, errors.New("no bridges configured (use --config, --address or --fixture)")
	}
	return cfg.Bridges, nil
}
