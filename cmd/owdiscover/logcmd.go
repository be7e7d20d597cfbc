package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/owbinding/onewire-go/pkg/log"
)

var (
	viewScan     string
	viewBridge   string
	viewSensor   string
	viewStage    string
	viewCategory string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect a scan event log",
}

var logViewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Print events in human-readable form",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := eventLogPath(args)
		if err != nil {
			return err
		}
		filter, err := viewFilter()
		if err != nil {
			return err
		}
		return runView(path, filter, cmd.OutOrStdout())
	},
}

var logStatsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Summarize an event log",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := eventLogPath(args)
		if err != nil {
			return err
		}
		return runStats(path, cmd.OutOrStdout())
	},
}

func init() {
	f := logViewCmd.Flags()
	f.StringVar(&viewScan, "scan", "", "only events of this scan id")
	f.StringVar(&viewBridge, "bridge", "", "only events of this bridge")
	f.StringVar(&viewSensor, "sensor", "", "only events of this device id")
	f.StringVar(&viewStage, "stage", "", "only events of this stage (scan, traversal, classification, association, result)")
	f.StringVar(&viewCategory, "category", "", "only events of this category (lifecycle, found, resolved, error)")

	logCmd.AddCommand(logViewCmd, logStatsCmd)
	rootCmd.AddCommand(logCmd)
}

// eventLogPath returns the file named on the command line, falling back to
// the configured event log.
func eventLogPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.EventLog == "" {
		return "", errors.New("log file path required (argument or eventLog in config)")
	}
	return cfg.EventLog, nil
}

func viewFilter() (log.Filter, error) {
	filter := log.Filter{
		ScanID:   viewScan,
		BridgeID: viewBridge,
		SensorID: viewSensor,
	}
	if viewStage != "" {
		s, err := parseStage(viewStage)
		if err != nil {
			return filter, err
		}
		filter.Stage = &s
	}
	if viewCategory != "" {
		c, err := parseCategory(viewCategory)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	return filter, nil
}

func runView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

func runStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	formatStats(w, log.Summarize(events))
	return nil
}

// parseStage parses a stage name (case-insensitive).
func parseStage(s string) (log.Stage, error) {
	switch strings.ToLower(s) {
	case "scan":
		return log.StageScan, nil
	case "traversal":
		return log.StageTraversal, nil
	case "classification":
		return log.StageClassification, nil
	case "association":
		return log.StageAssociation, nil
	case "result":
		return log.StageResult, nil
	default:
		return 0, fmt.Errorf("invalid stage: %s (must be scan, traversal, classification, association, or result)", s)
	}
}

// parseCategory parses a category name (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "lifecycle":
		return log.CategoryLifecycle, nil
	case "found":
		return log.CategoryFound, nil
	case "resolved":
		return log.CategoryResolved, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be lifecycle, found, resolved, or error)", s)
	}
}
