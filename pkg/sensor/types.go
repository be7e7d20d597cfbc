package sensor

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownType is returned when a type string is not a supported device type.
var ErrUnknownType = errors.New("unknown sensor type")

// Type is a 1-Wire device type.
type Type uint8

const (
	// TypeUnknown is an unsupported or unresolvable device.
	TypeUnknown Type = iota

	// Physical chips as reported by owserver.
	TypeDS1420
	TypeDS18B20
	TypeDS18S20
	TypeDS1822
	TypeDS1923
	TypeDS2401
	TypeDS2405
	TypeDS2406
	TypeDS2408
	TypeDS2409
	TypeDS2413
	TypeDS2423
	TypeDS2438

	// EDS is the generic Embedded Data Systems type, refined by device_type.
	TypeEDS
	TypeEDS0064
	TypeEDS0065
	TypeEDS0066
	TypeEDS0067
	TypeEDS0068

	// DS2438 based multisensors, identified by page 3.
	TypeMSTC
	TypeMSTH
	TypeMSTHS
	TypeMSTL
	TypeMSTV

	// Composite modules built from several chips.
	TypeBMS
	TypeBMSS
	TypeAMS
	TypeAMSS
)

var typeNames = map[Type]string{
	TypeUnknown: "UNKNOWN",
	TypeDS1420:  "DS1420",
	TypeDS18B20: "DS18B20",
	TypeDS18S20: "DS18S20",
	TypeDS1822:  "DS1822",
	TypeDS1923:  "DS1923",
	TypeDS2401:  "DS2401",
	TypeDS2405:  "DS2405",
	TypeDS2406:  "DS2406",
	TypeDS2408:  "DS2408",
	TypeDS2409:  "DS2409",
	TypeDS2413:  "DS2413",
	TypeDS2423:  "DS2423",
	TypeDS2438:  "DS2438",
	TypeEDS:     "EDS",
	TypeEDS0064: "EDS0064",
	TypeEDS0065: "EDS0065",
	TypeEDS0066: "EDS0066",
	TypeEDS0067: "EDS0067",
	TypeEDS0068: "EDS0068",
	TypeMSTC:    "MS_TC",
	TypeMSTH:    "MS_TH",
	TypeMSTHS:   "MS_TH_S",
	TypeMSTL:    "MS_TL",
	TypeMSTV:    "MS_TV",
	TypeBMS:     "BMS",
	TypeBMSS:    "BMS_S",
	TypeAMS:     "AMS",
	TypeAMSS:    "AMS_S",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String returns the type name as used for the modelId property.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseType maps an owserver type string (e.g. "DS18B20") to a Type.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseType(s string) (Type, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	t, ok := typesByName[name]
	if !ok || t == TypeUnknown {
		return TypeUnknown, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// IsHub reports whether the device is a branching device that is traversed
// instead of discovered.
func (t Type) IsHub() bool {
	return t == TypeDS2409
}

// HasLightSensor reports whether a multisensor type carries the optional
// light sensor.
func (t Type) HasLightSensor() bool {
	switch t {
	case TypeMSTHS, TypeBMSS, TypeAMSS:
		return true
	default:
		return false
	}
}

// MultisensorType returns the final type of a main sensor once its associated
// sensors are known. Sensors without associations keep their type. A
// MS_TH/MS_TH_S main sensor with one DS18B20 becomes a BMS, with DS18B20,
// MS_TV and DS2413 it becomes an AMS. Any other combination is unknown.
func MultisensorType(main Type, associated []Type) Type {
	if len(associated) == 0 {
		return main
	}

	switch main {
	case TypeMSTH, TypeMSTHS:
	default:
		return main
	}

	light := main == TypeMSTHS
	switch len(associated) {
	case 1:
		if slices.Contains(associated, TypeDS18B20) {
			if light {
				return TypeBMSS
			}
			return TypeBMS
		}
	case 3:
		if slices.Contains(associated, TypeDS18B20) && slices.Contains(associated, TypeMSTV) && slices.Contains(associated, TypeDS2413) {
			if light {
				return TypeAMSS
			}
			return TypeAMS
		}
	}
	return TypeUnknown
}
