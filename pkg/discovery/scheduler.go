package discovery

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// DefaultMaxConcurrent bounds the number of bridges scanned at once.
const DefaultMaxConcurrent = 4

// SchedulerConfig configures a Scheduler.
type SchedulerConfig struct {
	// Interval between background scans. Default: DefaultInterval.
	Interval time.Duration

	// MaxConcurrent bounds parallel bridge scans. Default: DefaultMaxConcurrent.
	MaxConcurrent int64

	Logger *slog.Logger

	// OnReport is called after every completed scan.
	OnReport func(*Report)
}

// Scheduler runs background discovery over several bridges.
type Scheduler struct {
	config SchedulerConfig
	sem    *semaphore.Weighted

	mu       sync.Mutex
	services []*Service
}

// NewScheduler creates a Scheduler for the given services.
func NewScheduler(config SchedulerConfig, services ...*Service) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = DefaultMaxConcurrent
	}
	return &Scheduler{
		config:   config,
		services: services,
		sem:      semaphore.NewWeighted(config.MaxConcurrent),
	}
}

// Run scans all bridges immediately and then once per interval until ctx is
// done. Returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		s.ScanAll(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Add registers another bridge. It is scanned from the next round on.
func (s *Scheduler) Add(svc *Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = append(s.services, svc)
}

// Remove deactivates and unregisters the bridge with the given id. Returns
// false if no such bridge is registered.
func (s *Scheduler) Remove(bridgeID string) bool {
	s.mu.Lock()
	idx := slices.IndexFunc(s.services, func(svc *Service) bool { return svc.BridgeID() == bridgeID })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	svc := s.services[idx]
	s.services = slices.Delete(s.services, idx, idx+1)
	s.mu.Unlock()

	svc.Deactivate()
	return true
}

// Services returns the registered bridges.
func (s *Scheduler) Services() []*Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.services)
}

// ScanAll scans every bridge once, in parallel up to MaxConcurrent. Bridges
// that are already being scanned are skipped. Reports are returned in
// service order; skipped bridges have a nil report.
func (s *Scheduler) ScanAll(ctx context.Context) []*Report {
	services := s.Services()
	reports := make([]*Report, len(services))

	var wg sync.WaitGroup
	for i, svc := range services {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer s.sem.Release(1)

			report, err := svc.StartScan(ctx)
			if err != nil {
				if !errors.Is(err, ErrScanInProgress) {
					s.debugLog("scan failed", "bridge", svc.BridgeID(), "error", err)
				}
				return
			}
			reports[i] = report
			if s.config.OnReport != nil {
				s.config.OnReport(report)
			}
		}()
	}
	wg.Wait()
	return reports
}

func (s *Scheduler) debugLog(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, args...)
	}
}
