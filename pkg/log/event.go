package log

import "time"

// Event is one diagnostic record of a bus scan.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// ScanID correlates all events of one scan (UUID).
	ScanID string `cbor:"2,keyasint"`

	// BridgeID identifies the owserver bridge that was scanned.
	BridgeID string `cbor:"3,keyasint"`

	// Stage of the scan that produced the event.
	Stage Stage `cbor:"4,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"5,keyasint"`

	// Path is the directory or device path the event refers to.
	Path string `cbor:"6,keyasint,omitempty"`

	// SensorID is the device id (no path) the event refers to.
	SensorID string `cbor:"7,keyasint,omitempty"`

	// Stage-specific payload (at most one is set).
	Scan        *ScanEvent        `cbor:"10,keyasint,omitempty"`
	Sensor      *SensorEvent      `cbor:"11,keyasint,omitempty"`
	Association *AssociationEvent `cbor:"12,keyasint,omitempty"`
	Result      *ResultEvent      `cbor:"13,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"`
}

// Stage is the part of the scan pipeline an event belongs to.
type Stage uint8

const (
	StageScan           Stage = 0
	StageTraversal      Stage = 1
	StageClassification Stage = 2
	StageAssociation    Stage = 3
	StageResult         Stage = 4
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageScan:
		return "SCAN"
	case StageTraversal:
		return "TRAVERSAL"
	case StageClassification:
		return "CLASSIFICATION"
	case StageAssociation:
		return "ASSOCIATION"
	case StageResult:
		return "RESULT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event.
type Category uint8

const (
	// CategoryLifecycle marks scan start and end.
	CategoryLifecycle Category = 0
	// CategoryFound marks a device, hub or result that was found.
	CategoryFound Category = 1
	// CategoryResolved marks a resolved association.
	CategoryResolved Category = 2
	// CategoryError marks a non-fatal failure.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryFound:
		return "FOUND"
	case CategoryResolved:
		return "RESOLVED"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ScanState is the lifecycle state reported by a ScanEvent.
type ScanState uint8

const (
	ScanStarted   ScanState = 0
	ScanFinished  ScanState = 1
	ScanCancelled ScanState = 2
)

// String returns the scan state name.
func (s ScanState) String() string {
	switch s {
	case ScanStarted:
		return "STARTED"
	case ScanFinished:
		return "FINISHED"
	case ScanCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// ScanEvent reports the start or end of a scan.
type ScanEvent struct {
	State ScanState `cbor:"1,keyasint"`

	// Results is the number of discovery results emitted (end only).
	Results int `cbor:"2,keyasint,omitempty"`

	// Errors is the number of non-fatal failures (end only).
	Errors int `cbor:"3,keyasint,omitempty"`

	// Duration of the scan (end only). Stored as nanoseconds.
	Duration *time.Duration `cbor:"4,keyasint,omitempty"`
}

// SensorEvent reports a classified device.
type SensorEvent struct {
	Type   string `cbor:"1,keyasint"`
	Vendor string `cbor:"2,keyasint,omitempty"`

	// AssociatedIDs are the ids the device declares as its sub-sensors.
	AssociatedIDs []string `cbor:"3,keyasint,omitempty"`

	// Hub is set for branching devices that were traversed.
	Hub bool `cbor:"4,keyasint,omitempty"`
}

// AssociationEvent reports a merge of an associated sensor into its owner.
type AssociationEvent struct {
	AssociatedID string `cbor:"1,keyasint"`
	OwnerID      string `cbor:"2,keyasint"`

	// Pass is the resolution pass (1 or 2).
	Pass uint8 `cbor:"3,keyasint"`

	// Transferred is the number of sub-sensors moved along with the
	// associated sensor (pass 2 only).
	Transferred int `cbor:"4,keyasint,omitempty"`
}

// ResultEvent reports a constructed discovery result.
type ResultEvent struct {
	ThingUID     string `cbor:"1,keyasint"`
	ThingTypeUID string `cbor:"2,keyasint"`
	Label        string `cbor:"3,keyasint,omitempty"`
	ModelID      string `cbor:"4,keyasint,omitempty"`
	SensorCount  int    `cbor:"5,keyasint,omitempty"`
}

// ErrorEventData reports a failure that was swallowed at the boundary where it
// occurred.
type ErrorEventData struct {
	// Stage where the error occurred.
	Stage Stage `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what was being attempted.
	Context string `cbor:"3,keyasint,omitempty"`
}
