package discovery

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/owbinding/onewire-go/pkg/log"
)

// DefaultInterval is the minimum time between two scans of a bridge.
const DefaultInterval = 60 * time.Second

// ErrDeactivated is returned by scans of a deactivated Service.
var ErrDeactivated = errors.New("discovery service deactivated")

// ResultSink receives discovery results. Implemented by *inbox.Inbox.
type ResultSink interface {
	// ThingDiscovered adds or refreshes a result. Results are keyed by
	// Result.ThingUID.
	ThingDiscovered(result Result)

	// RemoveOlderResults removes the results of bridgeUID last seen before
	// the given time.
	RemoveOlderResults(bridgeUID string, before time.Time)
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	ScannerConfig

	Sink ResultSink

	// Interval limits TriggerScan to one scan per interval. Scans started
	// by StartScan count against the same budget.
	// Default: DefaultInterval.
	Interval time.Duration
}

// Service runs the discovery lifecycle of one bridge. Scans of the same
// bridge never overlap.
type Service struct {
	config  ServiceConfig
	scanner *Scanner
	limiter *rate.Limiter

	scanMu sync.Mutex // held for the duration of a scan

	mu          sync.Mutex
	lastScan    time.Time
	cancel      context.CancelFunc
	deactivated bool
}

// NewService creates a Service.
func NewService(config ServiceConfig) (*Service, error) {
	if config.Sink == nil {
		return nil, errors.New("discovery: result sink is required")
	}
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	scanner, err := NewScanner(config.ScannerConfig)
	if err != nil {
		return nil, err
	}
	config.ScannerConfig = scanner.config

	return &Service{
		config:  config,
		scanner: scanner,
		limiter: rate.NewLimiter(rate.Every(config.Interval), 1),
	}, nil
}

// BridgeID returns the id of the bridge this service discovers.
func (s *Service) BridgeID() string {
	return s.config.BridgeID
}

// StartScan scans the bus and delivers the results to the sink. Results of
// this bridge that were not seen again are removed afterwards. A cancelled
// context stops delivery; nothing is removed in that case.
//
// StartScan is never throttled, but it uses up the interval budget so a
// TriggerScan right after it is rejected.
func (s *Service) StartScan(ctx context.Context) (*Report, error) {
	return s.scan(ctx, func(now time.Time) bool {
		s.limiter.AllowN(now, 1)
		return true
	})
}

// TriggerScan runs a scan unless one already ran within the interval. A
// rejected trigger does not use up the budget.
func (s *Service) TriggerScan(ctx context.Context) (*Report, error) {
	return s.scan(ctx, func(now time.Time) bool {
		return s.limiter.AllowN(now, 1)
	})
}

// scan runs one scan. admit is called once the scan lock is held and may
// refuse the scan.
func (s *Service) scan(ctx context.Context, admit func(now time.Time) bool) (*Report, error) {
	if !s.scanMu.TryLock() {
		return nil, ErrScanInProgress
	}
	defer s.scanMu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.deactivated {
		s.mu.Unlock()
		return nil, ErrDeactivated
	}
	now := s.config.Now()
	if !admit(now) {
		s.mu.Unlock()
		return nil, ErrScanThrottled
	}
	s.lastScan = now
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
	}()

	report := s.scanner.Scan(ctx)
	delivered := s.deliver(ctx, report.Results)
	if delivered < len(report.Results) {
		report.Cancelled = true
	}
	if report.Cancelled {
		s.debugLog("scan cancelled", "delivered", delivered, "results", len(report.Results))
		return report, nil
	}

	s.StopScan()
	return report, nil
}

// deliver hands results to the sink until ctx ends or the service is
// deactivated. Returns the number delivered.
func (s *Service) deliver(ctx context.Context, results []Result) int {
	for i, res := range results {
		s.mu.Lock()
		if ctx.Err() != nil || s.deactivated {
			s.mu.Unlock()
			return i
		}
		s.config.Sink.ThingDiscovered(res)
		s.mu.Unlock()
	}
	return len(results)
}

// StopScan removes the results of this bridge that the last scan did not
// refresh.
func (s *Service) StopScan() {
	s.config.Sink.RemoveOlderResults(s.scanner.bridgeUID(), s.LastScan())
}

// Deactivate cancels a running scan and removes all results of the bridge.
// The service cannot scan afterwards.
func (s *Service) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.deactivated = true
	s.config.Sink.RemoveOlderResults(s.scanner.bridgeUID(), s.config.Now())
	log.ForScan(s.config.EventLogger, "", s.config.BridgeID, s.config.Now).Log(log.Event{
		Stage:    log.StageScan,
		Category: log.CategoryLifecycle,
		Scan:     &log.ScanEvent{State: log.ScanCancelled},
	})
}

// LastScan returns the start time of the most recent scan.
func (s *Service) LastScan() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastScan
}

func (s *Service) debugLog(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, append([]any{"bridge", s.config.BridgeID}, args...)...)
	}
}
