package discovery

import (
	"slices"

	"github.com/owbinding/onewire-go/pkg/sensor"
)

// Resolution is the outcome of one association entry.
type Resolution struct {
	AssociatedID string
	OwnerID      string

	// Pass is 1 for regular sub-sensors and 2 for DS2438s.
	Pass uint8

	// Transferred counts the sub-sensors a DS2438 handed over to its owner.
	Transferred int

	// Err is an *AssociationError when the entry could not be resolved.
	Err error
}

// resolveAssociations merges associated items into their owners and empties
// associations. Entries are processed in key order so the outcome does not
// depend on map iteration.
//
// Pass 1 consumes every entry whose associated id is not a DS2438. Pass 2
// merges the DS2438s; a DS2438 that already owns sub-sensors from pass 1
// hands them to its owner first, leaving a single level below the owner.
func resolveAssociations(items map[string]*Item, associations map[string]string) []Resolution {
	keys := make([]string, 0, len(associations))
	for k := range associations {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var out []Resolution
	var deferred []string
	for _, assocID := range keys {
		if sensor.HasFamily(assocID, sensor.FamilyDS2438) {
			deferred = append(deferred, assocID)
			continue
		}
		out = append(out, resolveOne(items, assocID, associations[assocID], 1))
	}
	for _, assocID := range deferred {
		out = append(out, resolveOne(items, assocID, associations[assocID], 2))
	}

	clear(associations)
	return out
}

func resolveOne(items map[string]*Item, assocID, ownerID string, pass uint8) Resolution {
	res := Resolution{AssociatedID: assocID, OwnerID: ownerID, Pass: pass}

	assoc, okAssoc := items[assocID]
	owner, okOwner := items[ownerID]
	if !okAssoc || !okOwner || assoc == owner {
		res.Err = &AssociationError{AssociatedID: assocID, OwnerID: ownerID}
		return res
	}

	if pass == 2 {
		res.Transferred = owner.adoptChildren(assoc)
	}
	owner.moveInto(items, assoc)
	return res
}
