package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger. Errors are logged at Info
// level, everything else at Debug.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("scan_id", event.ScanID),
		slog.String("bridge", event.BridgeID),
		slog.String("stage", event.Stage.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Path != "" {
		attrs = append(attrs, slog.String("path", event.Path))
	}
	if event.SensorID != "" {
		attrs = append(attrs, slog.String("sensor", event.SensorID))
	}

	level := slog.LevelDebug
	switch {
	case event.Scan != nil:
		attrs = append(attrs, slog.String("state", event.Scan.State.String()))
		if event.Scan.State != ScanStarted {
			attrs = append(attrs,
				slog.Int("results", event.Scan.Results),
				slog.Int("errors", event.Scan.Errors),
			)
		}
		if event.Scan.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Scan.Duration))
		}
	case event.Sensor != nil:
		attrs = append(attrs, slog.String("type", event.Sensor.Type))
		if event.Sensor.Vendor != "" {
			attrs = append(attrs, slog.String("vendor", event.Sensor.Vendor))
		}
		if len(event.Sensor.AssociatedIDs) > 0 {
			attrs = append(attrs, slog.Any("associated", event.Sensor.AssociatedIDs))
		}
		if event.Sensor.Hub {
			attrs = append(attrs, slog.Bool("hub", true))
		}
	case event.Association != nil:
		attrs = append(attrs,
			slog.String("associated", event.Association.AssociatedID),
			slog.String("owner", event.Association.OwnerID),
			slog.Int("pass", int(event.Association.Pass)),
		)
		if event.Association.Transferred > 0 {
			attrs = append(attrs, slog.Int("transferred", event.Association.Transferred))
		}
	case event.Result != nil:
		attrs = append(attrs,
			slog.String("thing_uid", event.Result.ThingUID),
			slog.String("thing_type", event.Result.ThingTypeUID),
			slog.Int("sensor_count", event.Result.SensorCount),
		)
	case event.Error != nil:
		level = slog.LevelInfo
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "scan event", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
