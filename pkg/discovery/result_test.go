package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owbinding/onewire-go/pkg/sensor"
)

var buildTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func item(path string, typ sensor.Type, children ...*Item) *Item {
	return &Item{
		ID:         sensor.MustParseID(path),
		Type:       typ,
		Vendor:     sensor.VendorMaxim,
		Associated: children,
	}
}

func TestBuildResultPlainSensor(t *testing.T) {
	res, err := buildResult("bus1", item("/1F.0000000000CC/main/28.0000000000DD", sensor.TypeDS18B20), buildTime)
	require.NoError(t, err)

	assert.Equal(t, "onewire:temperature:bus1:28_0000000000DD", res.ThingUID)
	assert.Equal(t, "onewire:temperature", res.ThingTypeUID)
	assert.Equal(t, "onewire:owserver:bus1", res.BridgeUID)
	assert.Equal(t, "Temperature sensor", res.Label)
	assert.Equal(t, buildTime, res.Timestamp)
	assert.Equal(t, map[string]any{
		PropertyModelID:     "DS18B20",
		PropertyVendor:      sensor.VendorMaxim,
		PropertySensorCount: "0",
		PropertyID:          "/1F.0000000000CC/main/28.0000000000DD",
	}, res.Properties)
}

func TestBuildResultBMS(t *testing.T) {
	main := item("26.A00", sensor.TypeMSTHS, item("28.C00", sensor.TypeDS18B20))
	main.Vendor = sensor.VendorElaboratedNetworks

	res, err := buildResult("bus1", main, buildTime)
	require.NoError(t, err)

	assert.Equal(t, sensor.TypeBMSS, main.Type)
	assert.Equal(t, "onewire:bms:bus1:26_A00", res.ThingUID)
	assert.Equal(t, "BMS_S", res.Property(PropertyModelID))
	assert.Equal(t, sensor.VendorElaboratedNetworks, res.Property(PropertyVendor))
	assert.Equal(t, "1", res.Property(PropertySensorCount))
	assert.Equal(t, "/26.A00", res.Property("id"))
	assert.Equal(t, "/28.C00", res.Property("id1"))
	assert.Equal(t, "DS18B20", res.Property(PropertyTemperatureSensor))
	assert.Equal(t, "true", res.Property(PropertyLightSensor))
}

func TestBuildResultAMS(t *testing.T) {
	main := item("26.A00", sensor.TypeMSTH,
		item("3A.D00", sensor.TypeDS2413),
		item("26.B00", sensor.TypeMSTV),
		item("28.C00", sensor.TypeDS18B20),
	)

	res, err := buildResult("bus1", main, buildTime)
	require.NoError(t, err)

	assert.Equal(t, "onewire:ams:bus1:26_A00", res.ThingUID)
	assert.Equal(t, "AMS", res.Property(PropertyModelID))
	assert.Equal(t, "3", res.Property(PropertySensorCount))
	assert.Equal(t, "/28.C00", res.Property("id1"))
	assert.Equal(t, "/26.B00", res.Property("id2"))
	assert.Equal(t, "/3A.D00", res.Property("id3"))
	assert.Equal(t, "false", res.Property(PropertyLightSensor))
}

func TestBuildResultMissingSubSensor(t *testing.T) {
	// a device that reports itself as BMS keeps that type and must carry a
	// DS18B20
	main := item("26.A00", sensor.TypeBMS, item("3A.D00", sensor.TypeDS2413))

	_, err := buildResult("bus1", main, buildTime)
	assert.ErrorIs(t, err, ErrMissingSubSensor)

	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "26.A00", be.ID)
}

func TestBuildResultUnsupported(t *testing.T) {
	tests := []struct {
		name string
		it   *Item
	}{
		{"generic EDS", item("7E.001", sensor.TypeEDS)},
		{"unknown combination", item("26.A00", sensor.TypeMSTH, item("3A.D00", sensor.TypeDS2413))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildResult("bus1", tt.it, buildTime)
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestResultPropertyNonString(t *testing.T) {
	r := Result{Properties: map[string]any{"n": 3}}
	assert.Equal(t, "3", r.Property("n"))
	assert.Equal(t, "", r.Property("missing"))
}
