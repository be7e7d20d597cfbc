package discovery

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/owbinding/onewire-go/pkg/log"
	"github.com/owbinding/onewire-go/pkg/sensor"
)

// ScannerConfig configures a Scanner.
type ScannerConfig struct {
	// BridgeID is the id of the owserver bridge, used in result uids.
	BridgeID string

	Reader     DirectoryReader
	Classifier Classifier

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger

	// EventLogger receives structured scan events. Nil disables the event log.
	EventLogger log.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Report is the outcome of one scan.
type Report struct {
	ScanID   string
	BridgeID string
	Started  time.Time
	Duration time.Duration

	// Results are ordered by device id.
	Results []Result

	// Errors collects every non-fatal failure of the scan: *TransportError,
	// *ClassificationError, *AssociationError and *BuildError values.
	Errors []error

	// Cancelled is set when the scan context ended before all results were
	// delivered.
	Cancelled bool
}

// ErrorsAs returns the errors of the report that match target's type, e.g.
// ErrorsAs[*TransportError](report).
func ErrorsAs[T error](r *Report) []T {
	var out []T
	for _, err := range r.Errors {
		var target T
		if errors.As(err, &target) {
			out = append(out, target)
		}
	}
	return out
}

// Scanner runs discovery scans of one bridge.
type Scanner struct {
	config ScannerConfig
}

// NewScanner creates a Scanner.
func NewScanner(config ScannerConfig) (*Scanner, error) {
	if config.BridgeID == "" {
		return nil, errors.New("discovery: bridge id is required")
	}
	if config.Reader == nil {
		return nil, errors.New("discovery: directory reader is required")
	}
	if config.Classifier == nil {
		return nil, errors.New("discovery: classifier is required")
	}
	if config.EventLogger == nil {
		config.EventLogger = log.NoopLogger{}
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Scanner{config: config}, nil
}

// BridgeID returns the id of the scanned bridge.
func (s *Scanner) BridgeID() string {
	return s.config.BridgeID
}

// Scan walks the whole bus, resolves associations and builds the results.
// It always returns a report; failures are collected in Report.Errors.
func (s *Scanner) Scan(ctx context.Context) *Report {
	r := &run{
		ScannerConfig: s.config,
		scanID:        uuid.NewString(),
		items:         make(map[string]*Item),
		associations:  make(map[string]string),
	}
	r.events = log.ForScan(s.config.EventLogger, r.scanID, s.config.BridgeID, s.config.Now)
	report := &Report{
		ScanID:   r.scanID,
		BridgeID: s.config.BridgeID,
		Started:  s.config.Now(),
	}

	r.event(log.Event{
		Stage:    log.StageScan,
		Category: log.CategoryLifecycle,
		Scan:     &log.ScanEvent{State: log.ScanStarted},
	})

	r.scan(ctx, "/")
	r.resolve()
	report.Results = r.build()
	report.Errors = r.errs
	report.Duration = s.config.Now().Sub(report.Started)

	state := log.ScanFinished
	if ctx.Err() != nil {
		state = log.ScanCancelled
		report.Cancelled = true
	}
	duration := report.Duration
	r.event(log.Event{
		Stage:    log.StageScan,
		Category: log.CategoryLifecycle,
		Scan: &log.ScanEvent{
			State:    state,
			Results:  len(report.Results),
			Errors:   len(report.Errors),
			Duration: &duration,
		},
	})
	r.debugLog("scan finished", "scan_id", r.scanID, "results", len(report.Results), "errors", len(report.Errors))

	return report
}

// run holds the state of one scan.
type run struct {
	ScannerConfig

	scanID       string
	events       *log.ScanLogger
	items        map[string]*Item
	associations map[string]string
	errs         []error
}

func (r *run) resolve() {
	for _, res := range resolveAssociations(r.items, r.associations) {
		if res.Err != nil {
			r.fail(log.StageAssociation, "", res.AssociatedID, res.Err)
			continue
		}
		r.debugLog("resolved association", "associated", res.AssociatedID, "owner", res.OwnerID, "pass", res.Pass)
		r.event(log.Event{
			Stage:    log.StageAssociation,
			Category: log.CategoryResolved,
			SensorID: res.OwnerID,
			Association: &log.AssociationEvent{
				AssociatedID: res.AssociatedID,
				OwnerID:      res.OwnerID,
				Pass:         res.Pass,
				Transferred:  res.Transferred,
			},
		})
	}
}

func (r *run) build() []Result {
	keys := make([]string, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	results := make([]Result, 0, len(keys))
	for _, k := range keys {
		it := r.items[k]
		res, err := buildResult(r.BridgeID, it, r.Now())
		if err != nil {
			r.fail(log.StageResult, it.ID.FullPath(), it.ID.ID(), err)
			continue
		}
		r.debugLog("created result", "thing_uid", res.ThingUID, "id", it.ID.FullPath(), "type", it.Type)
		r.event(log.Event{
			Stage:    log.StageResult,
			Category: log.CategoryFound,
			Path:     it.ID.FullPath(),
			SensorID: it.ID.ID(),
			Result: &log.ResultEvent{
				ThingUID:     res.ThingUID,
				ThingTypeUID: res.ThingTypeUID,
				Label:        res.Label,
				ModelID:      it.Type.String(),
				SensorCount:  len(it.Associated),
			},
		})
		results = append(results, res)
	}
	return results
}

func (r *run) fail(stage log.Stage, path, sensorID string, err error) {
	r.errs = append(r.errs, err)
	r.debugLog("scan error", "stage", stage, "error", err)
	r.event(log.Event{
		Stage:    stage,
		Category: log.CategoryError,
		Path:     path,
		SensorID: sensorID,
		Error: &log.ErrorEventData{
			Stage:   stage,
			Message: err.Error(),
			Context: failContext(stage),
		},
	})
}

func failContext(stage log.Stage) string {
	switch stage {
	case log.StageTraversal:
		return "list directory"
	case log.StageClassification:
		return "classify device"
	case log.StageAssociation:
		return "resolve association"
	case log.StageResult:
		return "build result"
	default:
		return ""
	}
}

func (r *run) event(e log.Event) {
	r.events.Log(e)
}

func (r *run) debugLog(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, append([]any{"bridge", r.BridgeID}, args...)...)
	}
}

// bridgeUID returns the registry uid of the scanned bridge.
func (s *Scanner) bridgeUID() string {
	return sensor.BridgeUID(s.config.BridgeID)
}
