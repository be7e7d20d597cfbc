package discovery

import (
	"context"

	"github.com/owbinding/onewire-go/pkg/classify"
	"github.com/owbinding/onewire-go/pkg/log"
	"github.com/owbinding/onewire-go/pkg/sensor"
)

// DirectoryReader lists the devices of a bus directory.
// Implemented by *owserver.Client and *simbus.Bus.
type DirectoryReader interface {
	// Dir returns the devices in path ("/" or "<hub>/main/", "<hub>/aux/").
	// An absent, empty or unreachable directory is an error.
	Dir(ctx context.Context, path string) ([]sensor.ID, error)
}

// Classifier determines what a device is.
// Implemented by *classify.Classifier.
type Classifier interface {
	Classify(ctx context.Context, id sensor.ID) (classify.Classification, error)
}

// scan walks the bus below path depth-first, filling r.items and
// r.associations. Failures stay local to the directory or device they
// happened on.
func (r *run) scan(ctx context.Context, path string) {
	r.debugLog("scanning directory", "path", path)

	ids, err := r.Reader.Dir(ctx, path)
	if err != nil {
		r.fail(log.StageTraversal, path, "", &TransportError{Path: path, Err: err})
		return
	}

	for _, id := range ids {
		c, err := r.Classifier.Classify(ctx, id)
		if err != nil {
			r.fail(log.StageClassification, id.FullPath(), id.ID(), &ClassificationError{ID: id.ID(), Err: err})
			continue
		}

		if c.Type.IsHub() {
			r.found(id, c, true)
			r.scan(ctx, id.Branch(sensor.BranchMain))
			r.scan(ctx, id.Branch(sensor.BranchAux))
			continue
		}

		r.found(id, c, false)
		r.items[id.ID()] = &Item{
			ID:            id,
			Type:          c.Type,
			Vendor:        c.Vendor,
			AssociatedIDs: c.AssociatedIDs,
		}
		for _, assoc := range c.AssociatedIDs {
			r.associations[assoc] = id.ID()
		}
	}
}

func (r *run) found(id sensor.ID, c classify.Classification, hub bool) {
	r.debugLog("found device", "id", id.FullPath(), "type", c.Type, "hub", hub)
	r.event(log.Event{
		Stage:    log.StageClassification,
		Category: log.CategoryFound,
		Path:     id.FullPath(),
		SensorID: id.ID(),
		Sensor: &log.SensorEvent{
			Type:          c.Type.String(),
			Vendor:        c.Vendor,
			AssociatedIDs: c.AssociatedIDs,
			Hub:           hub,
		},
	})
}
