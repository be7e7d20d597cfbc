package discovery

import (
	"github.com/owbinding/onewire-go/pkg/sensor"
)

// Item is the working record of one discovered device.
type Item struct {
	ID     sensor.ID
	Type   sensor.Type
	Vendor string

	// AssociatedIDs are the sub-sensor ids the device declares.
	AssociatedIDs []string

	// Associated are the items merged into this one. An item is owned by at
	// most one parent.
	Associated []*Item
}

// moveInto transfers ownership of child from items to it.
func (it *Item) moveInto(items map[string]*Item, child *Item) {
	it.Associated = append(it.Associated, child)
	delete(items, child.ID.ID())
}

// adoptChildren takes over the associated items of other and clears its list.
// Returns the number of items taken over.
func (it *Item) adoptChildren(other *Item) int {
	n := len(other.Associated)
	it.Associated = append(it.Associated, other.Associated...)
	other.Associated = nil
	return n
}

// AssociatedTypes returns the types of the owned items in order.
func (it *Item) AssociatedTypes() []sensor.Type {
	types := make([]sensor.Type, len(it.Associated))
	for i, a := range it.Associated {
		types[i] = a.Type
	}
	return types
}

// AssociatedOfType returns the owned items of type t.
func (it *Item) AssociatedOfType(t sensor.Type) []*Item {
	var out []*Item
	for _, a := range it.Associated {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}
