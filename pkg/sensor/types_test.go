package sensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"DS18B20", TypeDS18B20},
		{"ds2409", TypeDS2409},
		{" DS2438\n", TypeDS2438},
		{"EDS", TypeEDS},
		{"EDS0065", TypeEDS0065},
		{"MS_TH_S", TypeMSTHS},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if err != nil {
			t.Errorf("ParseType(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTypeUnknown(t *testing.T) {
	for _, in := range []string{"", "DS9999", "UNKNOWN"} {
		if _, err := ParseType(in); !errors.Is(err, ErrUnknownType) {
			t.Errorf("ParseType(%q) error = %v, want ErrUnknownType", in, err)
		}
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	for typ, name := range typeNames {
		if typ == TypeUnknown {
			continue
		}
		assert.Equal(t, name, typ.String())
		parsed, err := ParseType(name)
		assert.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
	assert.Equal(t, "UNKNOWN", Type(250).String())
}

func TestMultisensorType(t *testing.T) {
	tests := []struct {
		name       string
		main       Type
		associated []Type
		want       Type
	}{
		{"NoAssociations", TypeMSTH, nil, TypeMSTH},
		{"BMS", TypeMSTH, []Type{TypeDS18B20}, TypeBMS},
		{"BMSWithLight", TypeMSTHS, []Type{TypeDS18B20}, TypeBMSS},
		{"AMS", TypeMSTH, []Type{TypeDS2413, TypeDS18B20, TypeMSTV}, TypeAMS},
		{"AMSWithLight", TypeMSTHS, []Type{TypeMSTV, TypeDS18B20, TypeDS2413}, TypeAMSS},
		{"WrongSingle", TypeMSTH, []Type{TypeDS2413}, TypeUnknown},
		{"WrongTriple", TypeMSTH, []Type{TypeDS18B20, TypeDS18B20, TypeDS2413}, TypeUnknown},
		{"TwoAssociations", TypeMSTHS, []Type{TypeDS18B20, TypeMSTV}, TypeUnknown},
		{"OtherMainKeepsType", TypeMSTV, []Type{TypeDS18B20}, TypeMSTV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MultisensorType(tt.main, tt.associated))
		})
	}
}

func TestTypeFlags(t *testing.T) {
	assert.True(t, TypeDS2409.IsHub())
	assert.False(t, TypeDS2438.IsHub())

	assert.True(t, TypeBMSS.HasLightSensor())
	assert.True(t, TypeAMSS.HasLightSensor())
	assert.False(t, TypeAMS.HasLightSensor())
}

func TestThingTypeFor(t *testing.T) {
	tt, ok := ThingTypeFor(TypeDS18B20)
	assert.True(t, ok)
	assert.Equal(t, ThingTypeTemperature, tt)
	assert.Equal(t, "onewire:temperature", tt.UID())
	assert.Equal(t, "Temperature sensor", tt.Label())

	for _, unsupported := range []Type{TypeDS2409, TypeEDS, TypeUnknown} {
		_, ok := ThingTypeFor(unsupported)
		assert.False(t, ok, "%v should have no thing type", unsupported)
	}
}

func TestUIDs(t *testing.T) {
	assert.Equal(t, "onewire:owserver:bus1", BridgeUID("bus1"))
	assert.Equal(t, "onewire:bms:bus1:26_0123456789AB", ThingUID(ThingTypeBMS, "bus1", "26_0123456789AB"))
}

func TestPageBuffer(t *testing.T) {
	var pages PageBuffer

	assert.NoError(t, pages.SetPage(3, []byte{0xF1, 0x02}))
	assert.Equal(t, byte(0xF1), pages.Byte(3, 0))
	assert.Equal(t, byte(0x02), pages.Byte(3, 1))
	assert.Equal(t, byte(0x00), pages.Byte(3, 7))
	assert.Equal(t, byte(0x00), pages.Byte(9, 0))
	assert.Len(t, pages.Page(3), PageSize)

	assert.ErrorIs(t, pages.SetPage(8, nil), ErrPageOutOfRange)
	assert.ErrorIs(t, pages.SetPage(0, make([]byte, 9)), ErrPageOutOfRange)
}
