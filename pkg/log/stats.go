package log

import (
	"io"
	"time"
)

// Stats summarizes the events of a log.
type Stats struct {
	Events     int
	Sessions   int
	First      time.Time
	Last       time.Time
	ByLayer    map[Layer]int
	ByCategory map[Category]int
	Unknown    int // records no field claimed
	Errors     []string
}

// Summarize drains r and aggregates its events.
func Summarize(r *Reader) (*Stats, error) {
	s := &Stats{
		ByLayer:    make(map[Layer]int),
		ByCategory: make(map[Category]int),
	}
	sessions := make(map[string]struct{})
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return s, err
		}
		s.Events++
		if s.First.IsZero() || ev.Timestamp.Before(s.First) {
			s.First = ev.Timestamp
		}
		if ev.Timestamp.After(s.Last) {
			s.Last = ev.Timestamp
		}
		sessions[ev.SessionID] = struct{}{}
		s.ByLayer[ev.Layer]++
		s.ByCategory[ev.Category]++
		if ev.Record != nil && !ev.Record.Known {
			s.Unknown++
		}
		if ev.Error != nil {
			s.Errors = append(s.Errors, ev.Error.Message)
		}
	}
	s.Sessions = len(sessions)
	return s, nil
}
