// Package sensor defines the identity and type model of 1-Wire devices.
//
// # Sensor IDs
//
// Every device on the bus has a 64-bit ROM id rendered by owserver as
// "<family>.<serial>", e.g. "28.0123456789AB". Devices behind a DS2409
// microlan coupler are addressed through the coupler's branch directories:
//
//	/1F.0123456789AB/main/28.0123456789AB
//	/1F.0123456789AB/aux/10.A1B2C3D4E5F6
//
// An ID carries the full path; ID() returns the last segment only, which is
// what associations and discovery results are keyed by.
//
// # Types
//
// Type is a closed enumeration. Raw owserver type strings are mapped with
// ParseType; composite multisensor types (BMS, AMS) are never reported by the
// bus and are derived with MultisensorType once associated chips are known.
//
// # Thing Types
//
// ThingTypeFor maps a Type to the registry thing type the discovery result is
// created for. Hubs and unknown devices have no thing type.
package sensor
