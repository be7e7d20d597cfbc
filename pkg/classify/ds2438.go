package classify

import (
	"fmt"

	"github.com/owbinding/onewire-go/pkg/sensor"
)

// Page 3 byte 0 markers of DS2438 based multisensors.
const (
	markerMSTH  byte = 0x19
	markerMSTV  byte = 0x1A
	markerMSTL  byte = 0x1B
	markerMSTC  byte = 0x1C
	markerENTH  byte = 0xF1 // Elaborated Networks, humidity
	markerENTHS byte = 0xF3 // Elaborated Networks, humidity + light
)

// Pages holding the ROM ids of associated sensors on Elaborated Networks
// modules.
const (
	firstAssociationPage = 5
	lastAssociationPage  = 7
)

// DecodeDS2438 derives the multisensor type and associated ids from the memory
// pages of a DS2438.
func DecodeDS2438(pages sensor.PageBuffer) Classification {
	c := Classification{Type: sensor.TypeDS2438, Vendor: sensor.VendorMaxim}

	switch pages.Byte(3, 0) {
	case markerMSTH:
		c.Type = sensor.TypeMSTH
	case markerMSTV:
		c.Type = sensor.TypeMSTV
	case markerMSTL:
		c.Type = sensor.TypeMSTL
	case markerMSTC:
		c.Type = sensor.TypeMSTC
	case markerENTH:
		c.Type = sensor.TypeMSTH
		c.Vendor = sensor.VendorElaboratedNetworks
		c.AssociatedIDs = associatedIDs(pages)
	case markerENTHS:
		c.Type = sensor.TypeMSTHS
		c.Vendor = sensor.VendorElaboratedNetworks
		c.AssociatedIDs = associatedIDs(pages)
	}
	return c
}

func associatedIDs(pages sensor.PageBuffer) []string {
	var ids []string
	for n := firstAssociationPage; n <= lastAssociationPage; n++ {
		rom := pages.Page(n)
		if rom[0] == 0x00 || rom[0] == 0xFF {
			continue
		}
		ids = append(ids, fmt.Sprintf("%02X.%02X%02X%02X%02X%02X%02X",
			rom[0], rom[1], rom[2], rom[3], rom[4], rom[5], rom[6]))
	}
	return ids
}

// EncodeAssociation writes the ROM id of an associated sensor into page n in
// the layout DecodeDS2438 expects. Used to build simulated buses.
func EncodeAssociation(pages *sensor.PageBuffer, n int, id string) error {
	if n < firstAssociationPage || n > lastAssociationPage {
		return fmt.Errorf("%w: association page %d", sensor.ErrPageOutOfRange, n)
	}
	var rom [7]byte
	if _, err := fmt.Sscanf(id, "%02X.%02X%02X%02X%02X%02X%02X",
		&rom[0], &rom[1], &rom[2], &rom[3], &rom[4], &rom[5], &rom[6]); err != nil {
		return fmt.Errorf("%w: %q", sensor.ErrInvalidID, id)
	}
	return pages.SetPage(n, rom[:])
}
