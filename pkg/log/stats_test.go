package log

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base.Add(time.Second), ScanID: "s1", Stage: StageScan},
		{Timestamp: base, ScanID: "s1", Stage: StageTraversal, Error: &ErrorEventData{Stage: StageTraversal}},
		{Timestamp: base.Add(3 * time.Second), ScanID: "s2", Stage: StageResult, Result: &ResultEvent{}},
		{Timestamp: base.Add(2 * time.Second), ScanID: "s2", Stage: StageAssociation, Error: &ErrorEventData{Stage: StageAssociation}},
	}

	s := Summarize(events)
	assert.Equal(t, 4, s.Events)
	assert.Equal(t, 2, s.Scans)
	assert.Equal(t, 1, s.Results)
	assert.Equal(t, 2, s.Errors)
	assert.Equal(t, 1, s.ErrorStage[StageTraversal])
	assert.Equal(t, 1, s.ByStage[StageResult])
	assert.True(t, s.First.Equal(base))
	assert.True(t, s.Last.Equal(base.Add(3*time.Second)))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Events)
	assert.True(t, s.First.IsZero())
}
