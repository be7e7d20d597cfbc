package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logOne(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSlogAdapterErrorEvent(t *testing.T) {
	entry := logOne(t, Event{
		ScanID:   "scan-1",
		BridgeID: "bus1",
		Stage:    StageAssociation,
		Category: CategoryError,
		SensorID: "28.000000000001",
		Error:    &ErrorEventData{Stage: StageAssociation, Message: "owner not found", Context: "pass 1"},
	})

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "scan-1", entry["scan_id"])
	assert.Equal(t, "ASSOCIATION", entry["stage"])
	assert.Equal(t, "owner not found", entry["error"])
	assert.Equal(t, "pass 1", entry["context"])
	assert.Equal(t, "28.000000000001", entry["sensor"])
}

func TestSlogAdapterScanEvent(t *testing.T) {
	d := 2 * time.Second
	entry := logOne(t, Event{
		ScanID:   "scan-1",
		Stage:    StageScan,
		Category: CategoryLifecycle,
		Scan:     &ScanEvent{State: ScanFinished, Results: 4, Errors: 2, Duration: &d},
	})

	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "FINISHED", entry["state"])
	assert.EqualValues(t, 4, entry["results"])
	assert.EqualValues(t, 2, entry["errors"])
	assert.Contains(t, entry, "duration")
}

func TestSlogAdapterAssociationEvent(t *testing.T) {
	entry := logOne(t, Event{
		Stage:       StageAssociation,
		Category:    CategoryResolved,
		Association: &AssociationEvent{AssociatedID: "26.B", OwnerID: "26.A", Pass: 2, Transferred: 2},
	})

	assert.Equal(t, "26.B", entry["associated"])
	assert.Equal(t, "26.A", entry["owner"])
	assert.EqualValues(t, 2, entry["pass"])
	assert.EqualValues(t, 2, entry["transferred"])
}

func TestSlogAdapterSensorAndResultEvents(t *testing.T) {
	entry := logOne(t, Event{
		Stage:    StageClassification,
		Category: CategoryFound,
		Sensor:   &SensorEvent{Type: "DS2409", Hub: true},
	})
	assert.Equal(t, "DS2409", entry["type"])
	assert.Equal(t, true, entry["hub"])

	entry = logOne(t, Event{
		Stage:    StageResult,
		Category: CategoryFound,
		Result:   &ResultEvent{ThingUID: "onewire:temperature:bus1:28_A", ThingTypeUID: "onewire:temperature"},
	})
	assert.Equal(t, "onewire:temperature:bus1:28_A", entry["thing_uid"])
}
