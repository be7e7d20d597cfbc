package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/owbinding/onewire-go/pkg/discovery"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ErrUnsupportedVersion is returned for state files written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported state file version")

// InboxState is the persisted content of the inbox.
type InboxState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	Results []StoredResult `json:"results,omitempty"`
}

// StoredResult is a discovery result as written to disk. Property values are
// stored as strings.
type StoredResult struct {
	ThingUID     string            `json:"thing_uid"`
	ThingTypeUID string            `json:"thing_type_uid"`
	BridgeUID    string            `json:"bridge_uid"`
	Label        string            `json:"label,omitempty"`
	Properties   map[string]string `json:"properties,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// FromResults converts inbox results for storage.
func FromResults(results []discovery.Result) []StoredResult {
	stored := make([]StoredResult, 0, len(results))
	for _, r := range results {
		props := make(map[string]string, len(r.Properties))
		for k := range r.Properties {
			props[k] = r.Property(k)
		}
		stored = append(stored, StoredResult{
			ThingUID:     r.ThingUID,
			ThingTypeUID: r.ThingTypeUID,
			BridgeUID:    r.BridgeUID,
			Label:        r.Label,
			Properties:   props,
			Timestamp:    r.Timestamp,
		})
	}
	return stored
}

// Result converts the stored form back into a discovery result.
func (s StoredResult) Result() discovery.Result {
	props := make(map[string]any, len(s.Properties))
	for k, v := range s.Properties {
		props[k] = v
	}
	return discovery.Result{
		ThingUID:     s.ThingUID,
		ThingTypeUID: s.ThingTypeUID,
		BridgeUID:    s.BridgeUID,
		Label:        s.Label,
		Properties:   props,
		Timestamp:    s.Timestamp,
	}
}

// StateStore manages persistence of the inbox to a JSON file.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a store for the file at path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the state file path.
func (s *StateStore) Path() string {
	return s.path
}

// Save writes results to disk. The file is replaced atomically.
func (s *StateStore) Save(results []discovery.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	state := InboxState{
		Version: StateVersion,
		SavedAt: time.Now(),
		Results: FromResults(results),
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".inbox-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Load reads the stored results.
// Returns nil, nil if the file doesn't exist.
func (s *StateStore) Load() ([]discovery.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state InboxState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if state.Version > StateVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, state.Version)
	}

	results := make([]discovery.Result, 0, len(state.Results))
	for _, r := range state.Results {
		results = append(results, r.Result())
	}
	return results, nil
}

// Clear removes the state file.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
