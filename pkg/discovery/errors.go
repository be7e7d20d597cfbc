package discovery

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnsupportedType is returned for devices that have no registry
	// representation, including modules whose sub-sensors do not form a
	// known combination.
	ErrUnsupportedType = errors.New("unsupported sensor type")

	// ErrMissingSubSensor is returned when a module lacks a sub-sensor of a
	// type it requires.
	ErrMissingSubSensor = errors.New("missing sub-sensor")

	// ErrScanInProgress is returned when a scan is started while another scan
	// of the same bridge is running.
	ErrScanInProgress = errors.New("scan already in progress")

	// ErrScanThrottled is returned when a triggered scan comes sooner than the
	// scan interval allows.
	ErrScanThrottled = errors.New("scan throttled")
)

// TransportError reports a directory that could not be listed. The branch
// below Path is skipped.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("list %s: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ClassificationError reports a device that could not be classified.
type ClassificationError struct {
	ID  string
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify %s: %v", e.ID, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// AssociationError reports an association whose owner or associated sensor
// is not on the bus (or was already merged elsewhere).
type AssociationError struct {
	AssociatedID string
	OwnerID      string
}

func (e *AssociationError) Error() string {
	return fmt.Sprintf("cannot resolve association %s->%s", e.AssociatedID, e.OwnerID)
}

// BuildError reports an item that could not be turned into a Result.
type BuildError struct {
	ID  string
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build result for %s: %v", e.ID, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
