package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeEvent(t *testing.T) {
	d := 1500 * time.Millisecond
	events := []Event{
		{
			Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
			ScanID:    "scan-1",
			BridgeID:  "bus1",
			Stage:     StageScan,
			Category:  CategoryLifecycle,
			Scan:      &ScanEvent{State: ScanFinished, Results: 3, Errors: 1, Duration: &d},
		},
		{
			Timestamp: time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC),
			ScanID:    "scan-1",
			BridgeID:  "bus1",
			Stage:     StageClassification,
			Category:  CategoryFound,
			Path:      "/26.000000000001",
			SensorID:  "26.000000000001",
			Sensor: &SensorEvent{
				Type:          "MS_TH",
				Vendor:        "Elaborated Networks",
				AssociatedIDs: []string{"28.000000000002"},
			},
		},
		{
			Timestamp:   time.Date(2026, 3, 1, 12, 0, 2, 0, time.UTC),
			ScanID:      "scan-1",
			Stage:       StageAssociation,
			Category:    CategoryResolved,
			Association: &AssociationEvent{AssociatedID: "26.B", OwnerID: "26.A", Pass: 2, Transferred: 1},
		},
	}

	for _, want := range events {
		data, err := EncodeEvent(want)
		if err != nil {
			t.Fatalf("EncodeEvent failed: %v", err)
		}
		got, err := DecodeEvent(data)
		if err != nil {
			t.Fatalf("DecodeEvent failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("event mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestStreamingDecoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 0; i < 3; i++ {
		if err := enc.Encode(Event{ScanID: "s", Stage: StageTraversal}); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	count := 0
	for {
		var e Event
		if err := dec.Decode(&e); err != nil {
			break
		}
		count++
	}
	if count != 3 {
		t.Errorf("decoded %d events, want 3", count)
	}
}

func TestDecodeEventGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error decoding garbage")
	}
}

func TestDecodeEventUnknownStage(t *testing.T) {
	data, err := EncodeEvent(Event{ScanID: "s", Stage: StageResult + 1})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if _, err := DecodeEvent(data); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("DecodeEvent error = %v, want ErrUnknownStage", err)
	}
}
