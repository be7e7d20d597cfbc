// Package log provides the structured diagnostic event log of bus scans.
//
// Discovery never aborts on a bad branch, device or association; instead
// every such failure is reported as an Event. This package defines the Logger
// interface those events are written to. It is separate from operational
// logging (slog) - the event log is a complete machine-readable trace of what
// a scan saw and why devices were skipped.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: append to a binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/log/onewire/scan.owlog")
//
//	// Both
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Stages
//
// Events carry the stage of the scan they were produced in:
//   - Scan: start and end of a scan (ScanEvent)
//   - Traversal: directory listings and hub recursion
//   - Classification: device type detection (SensorEvent)
//   - Association: composite sensor resolution (AssociationEvent)
//   - Result: discovery result construction (ResultEvent)
//
// Failures at any stage use ErrorEventData.
//
// # File Format
//
// Log files are a plain sequence of CBOR encoded events with integer keys.
// The owdiscover CLI can view and summarize them.
package log
