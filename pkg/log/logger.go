package log

import "time"

// Logger receives scan events.
// Pass nil or NoopLogger to disable the event log.
type Logger interface {
	// Log records an event. Implementations must be safe for concurrent use
	// because bridges are scanned in parallel.
	Log(event Event)
}

// NoopLogger discards all events.
// NoopLogger is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}

// ScanLogger stamps every event with the scan it belongs to before passing
// it on.
type ScanLogger struct {
	next     Logger
	scanID   string
	bridgeID string
	now      func() time.Time
}

// ForScan returns a Logger that sets Timestamp, ScanID and BridgeID of each
// event. A nil next logger discards events; a nil now uses time.Now.
func ForScan(next Logger, scanID, bridgeID string, now func() time.Time) *ScanLogger {
	if next == nil {
		next = NoopLogger{}
	}
	if now == nil {
		now = time.Now
	}
	return &ScanLogger{next: next, scanID: scanID, bridgeID: bridgeID, now: now}
}

// Log stamps and forwards the event.
func (l *ScanLogger) Log(event Event) {
	event.Timestamp = l.now()
	event.ScanID = l.scanID
	event.BridgeID = l.bridgeID
	l.next.Log(event)
}

var _ Logger = (*ScanLogger)(nil)
