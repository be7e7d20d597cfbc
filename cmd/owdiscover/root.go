package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/owbinding/onewire-go/pkg/config"
	"github.com/owbinding/onewire-go/pkg/log"
)

var (
	configPath string
	logLevel   string

	// Set up by the root command before any subcommand runs.
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "owdiscover",
	Short:         "Discover 1-Wire devices behind owserver bridges",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.Default()
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}

		l, err := newLogger(os.Stderr, cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
}

// newLogger creates a slog logger writing through a charm handler.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidLogLevel, level)
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "owdiscover",
	})
	return slog.New(handler), nil
}

// openEventLog returns the event logger for the configured event log file,
// mirrored to slog at debug level. The returned close function is never nil.
func openEventLog() (log.Logger, func() error, error) {
	adapter := log.NewSlogAdapter(logger)
	if cfg.EventLog == "" {
		return adapter, func() error { return nil }, nil
	}
	file, err := log.NewFileLogger(cfg.EventLog)
	if err != nil {
		return nil, nil, fmt.Errorf("open event log: %w", err)
	}
	return log.NewMultiLogger(file, adapter), file.Close, nil
}
