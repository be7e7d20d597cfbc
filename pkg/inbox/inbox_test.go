package inbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owbinding/onewire-go/pkg/discovery"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func result(uid, bridge string, ts time.Time) discovery.Result {
	return discovery.Result{
		ThingUID:   uid,
		BridgeUID:  bridge,
		Label:      "Temperature sensor",
		Properties: map[string]any{"id": "/" + uid},
		Timestamp:  ts,
	}
}

func TestThingDiscoveredDeduplicates(t *testing.T) {
	in := New(nil)
	var events []Event
	in.Subscribe(func(e Event) { events = append(events, e) })

	in.ThingDiscovered(result("a", "b1", t0))
	in.ThingDiscovered(result("a", "b1", t0.Add(time.Minute)))

	assert.Equal(t, 1, in.Len())
	got, ok := in.Get("a")
	require.True(t, ok)
	assert.Equal(t, t0.Add(time.Minute), got.Timestamp)

	require.Len(t, events, 2)
	assert.Equal(t, EventAdded, events[0].Type)
	assert.Equal(t, EventUpdated, events[1].Type)
}

func TestRemoveOlderResults(t *testing.T) {
	in := New(nil)
	in.ThingDiscovered(result("old", "b1", t0))
	in.ThingDiscovered(result("fresh", "b1", t0.Add(time.Hour)))
	in.ThingDiscovered(result("other", "b2", t0))

	var removed []string
	in.Subscribe(func(e Event) {
		if e.Type == EventRemoved {
			removed = append(removed, e.Result.ThingUID)
		}
	})

	in.RemoveOlderResults("b1", t0.Add(time.Hour))

	assert.Equal(t, []string{"old"}, removed)
	uids := []string{}
	for _, r := range in.List() {
		uids = append(uids, r.ThingUID)
	}
	assert.Equal(t, []string{"fresh", "other"}, uids)
}

func TestRemoveOlderResultsKeepsSameTimestamp(t *testing.T) {
	in := New(nil)
	in.ThingDiscovered(result("a", "b1", t0))
	in.RemoveOlderResults("b1", t0)
	assert.Equal(t, 1, in.Len())
}

func TestUnsubscribe(t *testing.T) {
	in := New(nil)
	calls := 0
	unsubscribe := in.Subscribe(func(Event) { calls++ })

	in.ThingDiscovered(result("a", "b1", t0))
	unsubscribe()
	in.ThingDiscovered(result("b", "b1", t0))

	assert.Equal(t, 1, calls)
}

func TestListOrdered(t *testing.T) {
	in := New(nil)
	in.ThingDiscovered(result("c", "b1", t0))
	in.ThingDiscovered(result("a", "b1", t0))
	in.ThingDiscovered(result("b", "b1", t0))

	list := in.List()
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ThingUID)
	assert.Equal(t, "c", list[2].ThingUID)
}
