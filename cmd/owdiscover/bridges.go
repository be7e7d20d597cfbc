package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/owbinding/onewire-go/pkg/bridge"
)

var bridgesCmd = &cobra.Command{
	Use:   "bridges",
	Short: "List owserver bridges announced via mDNS",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.MDNS.BrowseTimeout.Std())
		defer cancel()

		browser := bridge.NewBrowser(bridge.Config{
			Interface: cfg.MDNS.Interface,
			Logger:    logger,
		})
		services, err := browser.FindAll(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(services) == 0 {
			dimColor.Fprintln(out, "No bridges found")
			return nil
		}
		for _, svc := range services {
			headerColor.Fprintf(out, "%-20s", svc.BridgeID())
			fmt.Fprintf(out, " %-24s %s\n", svc.Address(), svc.Instance)
			if len(svc.Addresses) > 1 {
				dimColor.Fprintf(out, "  %s\n", strings.Join(svc.Addresses, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bridgesCmd)
}
