package discovery

import (
	"fmt"
	"strconv"
	"time"

	"github.com/owbinding/onewire-go/pkg/sensor"
)

// Property keys of a Result.
const (
	PropertyModelID           = "modelId"
	PropertyVendor            = "vendor"
	PropertySensorCount       = "sensorCount"
	PropertyID                = "id"
	PropertyTemperatureSensor = "temperatureSensor"
	PropertyLightSensor       = "lightSensor"
)

// Result is a discovered thing as handed to the registry.
type Result struct {
	// ThingUID is the stable key of the result (bridge + normalized id).
	ThingUID     string
	ThingTypeUID string
	BridgeUID    string
	Label        string

	// Properties map property keys to string values.
	Properties map[string]any

	Timestamp time.Time
}

// Property returns a property as string, or "" if it is not set.
func (r Result) Property(key string) string {
	v, ok := r.Properties[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// buildResult finalizes the type of it and converts it into a Result for the
// given bridge.
func buildResult(bridgeID string, it *Item, now time.Time) (Result, error) {
	it.Type = sensor.MultisensorType(it.Type, it.AssociatedTypes())

	tt, ok := sensor.ThingTypeFor(it.Type)
	if !ok {
		return Result{}, &BuildError{ID: it.ID.ID(), Err: fmt.Errorf("%w: %s", ErrUnsupportedType, it.Type)}
	}

	props := map[string]any{
		PropertyModelID:     it.Type.String(),
		PropertyVendor:      it.Vendor,
		PropertySensorCount: strconv.Itoa(len(it.Associated)),
		PropertyID:          it.ID.FullPath(),
	}

	var required []sensor.Type
	switch tt {
	case sensor.ThingTypeBMS:
		required = []sensor.Type{sensor.TypeDS18B20}
	case sensor.ThingTypeAMS:
		required = []sensor.Type{sensor.TypeDS18B20, sensor.TypeMSTV, sensor.TypeDS2413}
	}
	for i, t := range required {
		sub := it.AssociatedOfType(t)
		if len(sub) == 0 {
			return Result{}, &BuildError{ID: it.ID.ID(), Err: fmt.Errorf("%w: %s needs a %s", ErrMissingSubSensor, it.Type, t)}
		}
		props[PropertyID+strconv.Itoa(i+1)] = sub[0].ID.FullPath()
	}
	if len(required) > 0 {
		props[PropertyTemperatureSensor] = sensor.TypeDS18B20.String()
		props[PropertyLightSensor] = strconv.FormatBool(it.Type.HasLightSensor())
	}

	return Result{
		ThingUID:     sensor.ThingUID(tt, bridgeID, it.ID.Normalized()),
		ThingTypeUID: tt.UID(),
		BridgeUID:    sensor.BridgeUID(bridgeID),
		Label:        tt.Label(),
		Properties:   props,
		Timestamp:    now,
	}, nil
}
