// Package logview renders, filters, exports and summarizes .tlog event
// files written by log.FileLogger.
package logview

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ieee1451/teds-go/pkg/log"
)

// TimeFormat is the timestamp layout used in views and exports.
const TimeFormat = "2006-01-02T15:04:05.000000Z"

// View writes every event of the log at path that matches filter.
// It returns the number of events written.
func View(w io.Writer, path string, filter log.Filter) (int, error) {
	r, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer r.Close()

	n := 0
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("failed to read event: %w", err)
		}
		FormatEvent(w, ev)
		n++
	}
}

// FormatEvent writes a human-readable rendering of ev followed by a blank
// line. The header is "timestamp [sess:id] DIR LAYER Type".
func FormatEvent(w io.Writer, ev log.Event) {
	ts := ev.Timestamp.UTC().Format(TimeFormat)
	fmt.Fprintf(w, "%s [sess:%s] %-3s %s %s\n",
		ts, shortID(ev.SessionID), ev.Direction, ev.Layer, EventType(ev))
	if ev.Schema != "" || ev.File != "" {
		fmt.Fprintf(w, "  Schema: %s", ev.Schema)
		if ev.File != "" {
			fmt.Fprintf(w, "  File: %s", ev.File)
		}
		fmt.Fprintln(w)
	}

	switch {
	case ev.Frame != nil:
		formatFrame(w, ev.Frame)
	case ev.Record != nil:
		formatRecord(w, ev.Record)
	case ev.Field != nil:
		formatField(w, ev.Field)
	case ev.StateChange != nil:
		formatStateChange(w, ev.StateChange)
	case ev.Error != nil:
		formatError(w, ev.Error)
	}
	fmt.Fprintln(w)
}

// EventType names the payload carried by ev.
func EventType(ev log.Event) string {
	switch {
	case ev.Frame != nil:
		return "Frame"
	case ev.Record != nil:
		return "Record"
	case ev.Field != nil:
		return "Field"
	case ev.StateChange != nil:
		return "State"
	case ev.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatFrame(w io.Writer, f *log.FrameEvent) {
	fmt.Fprintf(w, "  Size: %d bytes  Checksum: 0x%04x\n", f.Size, f.Checksum)
	if len(f.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(f.Data))
		if f.Truncated {
			fmt.Fprint(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func formatRecord(w io.Writer, r *log.RecordEvent) {
	state := "known"
	if !r.Known {
		state = "unknown"
	}
	fmt.Fprintf(w, "  %s: type %d, %d octets (%s)\n", r.Path, r.Type, r.Length, state)
}

func formatField(w io.Writer, f *log.FieldEvent) {
	fmt.Fprintf(w, "  %s [%d]: %s -> %s", f.Path, f.Tag, f.OldValue, f.NewValue)
	if !f.Included {
		fmt.Fprint(w, " (excluded)")
	}
	fmt.Fprintln(w)
}

func formatStateChange(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity)
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatError(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", e.Layer)
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
}

// FilterOptions holds the textual filter flags shared by view, filter
// and export.
type FilterOptions struct {
	SessionID string
	Schema    string
	Layer     string
	Direction string
	Category  string
	TimeStart string
	TimeEnd   string
}

// Build converts the options into a log.Filter. Names are
// case-insensitive; times are RFC 3339.
func (o FilterOptions) Build() (log.Filter, error) {
	f := log.Filter{SessionID: o.SessionID, Schema: o.Schema}
	if o.Layer != "" {
		l, ok := log.ParseLayer(strings.ToUpper(o.Layer))
		if !ok {
			return f, fmt.Errorf("invalid layer: %s (must be frame, record, or field)", o.Layer)
		}
		f.Layer = &l
	}
	if o.Direction != "" {
		d, err := ParseDirection(o.Direction)
		if err != nil {
			return f, err
		}
		f.Direction = &d
	}
	if o.Category != "" {
		c, ok := log.ParseCategory(strings.ToUpper(o.Category))
		if !ok {
			return f, fmt.Errorf("invalid category: %s (must be codec, edit, state, or error)", o.Category)
		}
		f.Category = &c
	}
	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return f, fmt.Errorf("invalid time-start format: %w", err)
		}
		f.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return f, fmt.Errorf("invalid time-end format: %w", err)
		}
		f.TimeEnd = &t
	}
	return f, nil
}

// ParseDirection parses "in" or "out", ignoring case.
func ParseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}
