package sensor

import "fmt"

// BindingID is the first segment of every uid produced by the binding.
const BindingID = "onewire"

// ThingType identifies the kind of registry thing a device is discovered as.
type ThingType string

// Thing types.
const (
	ThingTypeOwserver    ThingType = "owserver"
	ThingTypeTemperature ThingType = "temperature"
	ThingTypeIButton     ThingType = "ibutton"
	ThingTypeDigitalIO   ThingType = "digitalio"
	ThingTypeDigitalIO2  ThingType = "digitalio2"
	ThingTypeDigitalIO8  ThingType = "digitalio8"
	ThingTypeCounter2    ThingType = "counter2"
	ThingTypeMSTH        ThingType = "ms_th"
	ThingTypeMSTV        ThingType = "ms_tv"
	ThingTypeBMS         ThingType = "bms"
	ThingTypeAMS         ThingType = "ams"
	ThingTypeEDSEnv      ThingType = "edsenv"
)

// Vendors reported in the vendor property.
const (
	VendorMaxim               = "Dallas/Maxim"
	VendorElaboratedNetworks  = "Elaborated Networks"
	VendorEmbeddedDataSystems = "Embedded Data Systems"
)

var thingTypes = map[Type]ThingType{
	TypeDS1420:  ThingTypeIButton,
	TypeDS2401:  ThingTypeIButton,
	TypeDS18B20: ThingTypeTemperature,
	TypeDS18S20: ThingTypeTemperature,
	TypeDS1822:  ThingTypeTemperature,
	TypeDS2405:  ThingTypeDigitalIO,
	TypeDS2406:  ThingTypeDigitalIO2,
	TypeDS2413:  ThingTypeDigitalIO2,
	TypeDS2408:  ThingTypeDigitalIO8,
	TypeDS2423:  ThingTypeCounter2,
	TypeDS1923:  ThingTypeMSTH,
	TypeMSTC:    ThingTypeMSTH,
	TypeMSTH:    ThingTypeMSTH,
	TypeMSTHS:   ThingTypeMSTH,
	TypeMSTL:    ThingTypeMSTH,
	TypeMSTV:    ThingTypeMSTV,
	TypeDS2438:  ThingTypeMSTV,
	TypeBMS:     ThingTypeBMS,
	TypeBMSS:    ThingTypeBMS,
	TypeAMS:     ThingTypeAMS,
	TypeAMSS:    ThingTypeAMS,
	TypeEDS0064: ThingTypeEDSEnv,
	TypeEDS0065: ThingTypeEDSEnv,
	TypeEDS0066: ThingTypeEDSEnv,
	TypeEDS0067: ThingTypeEDSEnv,
	TypeEDS0068: ThingTypeEDSEnv,
}

var thingLabels = map[ThingType]string{
	ThingTypeOwserver:    "OWServer",
	ThingTypeTemperature: "Temperature sensor",
	ThingTypeIButton:     "iButton",
	ThingTypeDigitalIO:   "Digital I/O",
	ThingTypeDigitalIO2:  "Dual Digital I/O",
	ThingTypeDigitalIO8:  "Octal Digital I/O",
	ThingTypeCounter2:    "Dual Counter",
	ThingTypeMSTH:        "Multisensor",
	ThingTypeMSTV:        "Multisensor (voltage)",
	ThingTypeBMS:         "Elaborated Networks BMS",
	ThingTypeAMS:         "Elaborated Networks AMS",
	ThingTypeEDSEnv:      "EDS Environmental Sensor",
}

// ThingTypeFor returns the thing type a device of type t is discovered as.
// Returns false for hubs, generic EDS devices and unknown types.
func ThingTypeFor(t Type) (ThingType, bool) {
	tt, ok := thingTypes[t]
	return tt, ok
}

// Label returns the human readable label of the thing type.
func (tt ThingType) Label() string {
	if label, ok := thingLabels[tt]; ok {
		return label
	}
	return string(tt)
}

// UID returns the thing type uid, e.g. "onewire:temperature".
func (tt ThingType) UID() string {
	return BindingID + ":" + string(tt)
}

// BridgeUID returns the uid of the owserver bridge with the given id.
func BridgeUID(bridgeID string) string {
	return fmt.Sprintf("%s:%s:%s", BindingID, ThingTypeOwserver, bridgeID)
}

// ThingUID returns the uid of a thing of type tt below the given bridge.
func ThingUID(tt ThingType, bridgeID, normalizedID string) string {
	return fmt.Sprintf("%s:%s:%s:%s", BindingID, tt, bridgeID, normalizedID)
}
