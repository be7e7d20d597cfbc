// Package inbox keeps the discovery results of all bridges until they are
// removed, and notifies listeners about changes.
package inbox

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/owbinding/onewire-go/pkg/discovery"
)

// EventType is the kind of change reported to listeners.
type EventType string

const (
	EventAdded   EventType = "added"
	EventUpdated EventType = "updated"
	EventRemoved EventType = "removed"
)

// Event is a change of one inbox entry.
type Event struct {
	Type   EventType
	Result discovery.Result
}

// Listener is called for every change. Listeners run synchronously and must
// not call back into the Inbox.
type Listener func(Event)

// Inbox is an in-memory registry of discovery results keyed by thing uid.
// It implements discovery.ResultSink.
type Inbox struct {
	logger *slog.Logger

	mu        sync.RWMutex
	results   map[string]discovery.Result
	listeners map[int]Listener
	nextID    int
}

// New creates an empty Inbox. logger may be nil.
func New(logger *slog.Logger) *Inbox {
	return &Inbox{
		logger:    logger,
		results:   make(map[string]discovery.Result),
		listeners: make(map[int]Listener),
	}
}

// ThingDiscovered adds a result, or refreshes the timestamp and properties of
// a result with the same thing uid.
func (in *Inbox) ThingDiscovered(result discovery.Result) {
	in.mu.Lock()
	defer in.mu.Unlock()

	typ := EventAdded
	if _, exists := in.results[result.ThingUID]; exists {
		typ = EventUpdated
	}
	in.results[result.ThingUID] = result
	in.debugLog("thing "+string(typ), "thing_uid", result.ThingUID)
	in.notify(Event{Type: typ, Result: result})
}

// RemoveOlderResults removes the results of bridgeUID whose timestamp is
// before the given time.
func (in *Inbox) RemoveOlderResults(bridgeUID string, before time.Time) {
	in.mu.Lock()
	defer in.mu.Unlock()

	for _, uid := range in.sortedUIDs() {
		r := in.results[uid]
		if r.BridgeUID != bridgeUID || !r.Timestamp.Before(before) {
			continue
		}
		delete(in.results, uid)
		in.debugLog("thing removed", "thing_uid", uid)
		in.notify(Event{Type: EventRemoved, Result: r})
	}
}

// Get returns the result with the given thing uid.
func (in *Inbox) Get(thingUID string) (discovery.Result, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	r, ok := in.results[thingUID]
	return r, ok
}

// List returns all results ordered by thing uid.
func (in *Inbox) List() []discovery.Result {
	in.mu.RLock()
	defer in.mu.RUnlock()

	out := make([]discovery.Result, 0, len(in.results))
	for _, uid := range in.sortedUIDs() {
		out = append(out, in.results[uid])
	}
	return out
}

// Len returns the number of results.
func (in *Inbox) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.results)
}

// Subscribe registers l and returns a function that removes it.
func (in *Inbox) Subscribe(l Listener) (unsubscribe func()) {
	in.mu.Lock()
	defer in.mu.Unlock()

	id := in.nextID
	in.nextID++
	in.listeners[id] = l

	return func() {
		in.mu.Lock()
		defer in.mu.Unlock()
		delete(in.listeners, id)
	}
}

// snapshot returns the current results and registers l atomically, so l sees
// every change after the snapshot.
func (in *Inbox) snapshot(l Listener) ([]discovery.Result, func()) {
	in.mu.Lock()
	out := make([]discovery.Result, 0, len(in.results))
	for _, uid := range in.sortedUIDs() {
		out = append(out, in.results[uid])
	}
	id := in.nextID
	in.nextID++
	in.listeners[id] = l
	in.mu.Unlock()

	return out, func() {
		in.mu.Lock()
		defer in.mu.Unlock()
		delete(in.listeners, id)
	}
}

func (in *Inbox) notify(e Event) {
	ids := make([]int, 0, len(in.listeners))
	for id := range in.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		in.listeners[id](e)
	}
}

func (in *Inbox) sortedUIDs() []string {
	uids := make([]string, 0, len(in.results))
	for uid := range in.results {
		uids = append(uids, uid)
	}
	slices.SortFunc(uids, strings.Compare)
	return uids
}

func (in *Inbox) debugLog(msg string, args ...any) {
	if in.logger != nil {
		in.logger.Debug(msg, args...)
	}
}

var _ discovery.ResultSink = (*Inbox)(nil)
