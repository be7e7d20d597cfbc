// Package classify determines the type, vendor and declared sub-sensors of a
// 1-Wire device by reading its owserver properties.
package classify

import (
	"context"
	"fmt"

	"github.com/owbinding/onewire-go/pkg/sensor"
)

// DeviceReader reads device properties from a bridge.
type DeviceReader interface {
	// ReadString reads a text property such as "<path>/type".
	ReadString(ctx context.Context, path string) (string, error)

	// ReadPages reads the memory pages of a DS2438.
	ReadPages(ctx context.Context, id sensor.ID) (sensor.PageBuffer, error)
}

// Classification is what a device reports about itself.
type Classification struct {
	Type   sensor.Type
	Vendor string

	// AssociatedIDs are the ids of sensors the device declares as its own
	// sub-sensors.
	AssociatedIDs []string
}

// Classifier classifies devices through a DeviceReader.
type Classifier struct {
	reader DeviceReader
}

// New creates a Classifier.
func New(reader DeviceReader) *Classifier {
	return &Classifier{reader: reader}
}

// Classify reads the type of id and, for DS2438 and EDS devices, the details
// that refine it.
func (c *Classifier) Classify(ctx context.Context, id sensor.ID) (Classification, error) {
	raw, err := c.reader.ReadString(ctx, id.FullPath()+"/type")
	if err != nil {
		return Classification{}, fmt.Errorf("read type of %s: %w", id.ID(), err)
	}
	typ, err := sensor.ParseType(raw)
	if err != nil {
		return Classification{}, err
	}

	switch typ {
	case sensor.TypeDS2438:
		pages, err := c.reader.ReadPages(ctx, id)
		if err != nil {
			return Classification{}, fmt.Errorf("read pages of %s: %w", id.ID(), err)
		}
		return DecodeDS2438(pages), nil

	case sensor.TypeEDS:
		raw, err := c.reader.ReadString(ctx, id.FullPath()+"/device_type")
		if err != nil {
			return Classification{}, fmt.Errorf("read device_type of %s: %w", id.ID(), err)
		}
		edsType, err := sensor.ParseType(raw)
		if err != nil {
			return Classification{}, err
		}
		switch edsType {
		case sensor.TypeEDS0064, sensor.TypeEDS0065, sensor.TypeEDS0066, sensor.TypeEDS0067, sensor.TypeEDS0068:
		default:
			return Classification{}, fmt.Errorf("%w: EDS device_type %q", sensor.ErrUnknownType, raw)
		}
		return Classification{Type: edsType, Vendor: sensor.VendorEmbeddedDataSystems}, nil

	default:
		return Classification{Type: typ, Vendor: sensor.VendorMaxim}, nil
	}
}
