package log

import "time"

// Stats summarizes an event stream.
type Stats struct {
	Events     int
	Scans      int
	Results    int
	Errors     int
	ByStage    map[Stage]int
	ErrorStage map[Stage]int
	First      time.Time
	Last       time.Time
}

// Summarize computes statistics over events.
func Summarize(events []Event) Stats {
	s := Stats{
		ByStage:    make(map[Stage]int),
		ErrorStage: make(map[Stage]int),
	}
	scans := make(map[string]struct{})

	for _, e := range events {
		s.Events++
		s.ByStage[e.Stage]++
		if e.ScanID != "" {
			scans[e.ScanID] = struct{}{}
		}
		if e.Result != nil {
			s.Results++
		}
		if e.Error != nil {
			s.Errors++
			s.ErrorStage[e.Error.Stage]++
		}
		if s.First.IsZero() || e.Timestamp.Before(s.First) {
			s.First = e.Timestamp
		}
		if e.Timestamp.After(s.Last) {
			s.Last = e.Timestamp
		}
	}
	s.Scans = len(scans)
	return s
}
