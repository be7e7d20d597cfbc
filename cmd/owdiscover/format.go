package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/owbinding/onewire-go/pkg/discovery"
	"github.com/owbinding/onewire-go/pkg/log"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
	dimColor    = color.New(color.FgHiBlack)
)

// printReport writes the results and failures of one scan.
func printReport(w io.Writer, report *discovery.Report) {
	headerColor.Fprintf(w, "Bridge %s", report.BridgeID)
	dimColor.Fprintf(w, "  scan %s, %s\n", report.ScanID, report.Duration.Round(time.Millisecond))

	if len(report.Results) == 0 {
		dimColor.Fprintln(w, "  no devices found")
	}
	for _, r := range report.Results {
		printResult(w, r)
	}

	for _, err := range report.Errors {
		printScanError(w, err)
	}
	if report.Cancelled {
		warnColor.Fprintln(w, "  scan cancelled")
	}
	fmt.Fprintln(w)
}

// printResult writes one result line followed by its properties.
func printResult(w io.Writer, r discovery.Result) {
	okColor.Fprint(w, "  ● ")
	fmt.Fprintf(w, "%-44s %s\n", r.ThingUID, r.Label)

	keys := slices.Sorted(maps.Keys(r.Properties))
	for _, k := range keys {
		dimColor.Fprintf(w, "      %-18s", k)
		fmt.Fprintf(w, " %s\n", r.Property(k))
	}
}

// printScanError writes a failure with a marker for its kind.
func printScanError(w io.Writer, err error) {
	var (
		transport *discovery.TransportError
		assoc     *discovery.AssociationError
	)
	switch {
	case errors.As(err, &transport):
		warnColor.Fprintf(w, "  ⚠ branch  ")
	case errors.As(err, &assoc):
		warnColor.Fprintf(w, "  ⚠ assoc   ")
	default:
		errColor.Fprintf(w, "  ✗ device  ")
	}
	fmt.Fprintln(w, err)
}

// formatEvent writes a human-readable representation of an event log entry.
func formatEvent(w io.Writer, e log.Event) {
	ts := e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")
	fmt.Fprintf(w, "%s [scan:%s] %-8s %-14s %-9s", ts, shortID(e.ScanID), e.BridgeID, e.Stage, e.Category)
	if e.Path != "" {
		fmt.Fprintf(w, " %s", e.Path)
	} else if e.SensorID != "" {
		fmt.Fprintf(w, " %s", e.SensorID)
	}
	fmt.Fprintln(w)

	switch {
	case e.Scan != nil:
		fmt.Fprintf(w, "  State: %s", e.Scan.State)
		if e.Scan.Duration != nil {
			fmt.Fprintf(w, "  Results: %d  Errors: %d  Duration: %s", e.Scan.Results, e.Scan.Errors, e.Scan.Duration.Round(time.Millisecond))
		}
		fmt.Fprintln(w)
	case e.Sensor != nil:
		fmt.Fprintf(w, "  Type: %s", e.Sensor.Type)
		if e.Sensor.Hub {
			fmt.Fprint(w, " (hub)")
		}
		if e.Sensor.Vendor != "" {
			fmt.Fprintf(w, "  Vendor: %s", e.Sensor.Vendor)
		}
		fmt.Fprintln(w)
		if len(e.Sensor.AssociatedIDs) > 0 {
			fmt.Fprintf(w, "  Declares: %s\n", strings.Join(e.Sensor.AssociatedIDs, ", "))
		}
	case e.Association != nil:
		fmt.Fprintf(w, "  %s -> %s (pass %d)", e.Association.AssociatedID, e.Association.OwnerID, e.Association.Pass)
		if e.Association.Transferred > 0 {
			fmt.Fprintf(w, ", %d transferred", e.Association.Transferred)
		}
		fmt.Fprintln(w)
	case e.Result != nil:
		fmt.Fprintf(w, "  %s (%s, %d sub-sensors)\n", e.Result.ThingUID, e.Result.ModelID, e.Result.SensorCount)
	case e.Error != nil:
		fmt.Fprintf(w, "  Error: %s\n", e.Error.Message)
		if e.Error.Context != "" {
			fmt.Fprintf(w, "  While: %s\n", e.Error.Context)
		}
	}
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

var allStages = []log.Stage{
	log.StageScan,
	log.StageTraversal,
	log.StageClassification,
	log.StageAssociation,
	log.StageResult,
}

// formatStats writes an event log summary.
func formatStats(w io.Writer, s log.Stats) {
	fmt.Fprintf(w, "Events:  %d\n", s.Events)
	fmt.Fprintf(w, "Scans:   %d\n", s.Scans)
	fmt.Fprintf(w, "Results: %d\n", s.Results)
	fmt.Fprintf(w, "Errors:  %d\n", s.Errors)
	if s.Events > 0 {
		fmt.Fprintf(w, "Span:    %s .. %s\n", s.First.UTC().Format(time.RFC3339), s.Last.UTC().Format(time.RFC3339))
	}

	fmt.Fprintln(w, "\nBy stage:")
	for _, st := range allStages {
		if s.ByStage[st] == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-15s %6d", st, s.ByStage[st])
		if n := s.ErrorStage[st]; n > 0 {
			fmt.Fprintf(w, "  (%d errors)", n)
		}
		fmt.Fprintln(w)
	}
}
