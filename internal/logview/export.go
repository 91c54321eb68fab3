package logview

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ieee1451/teds-go/pkg/log"
)

// Export formats.
const (
	ExportJSONL = "jsonl"
	ExportCSV   = "csv"
)

// Export writes the matching events of the log at path to w as JSON
// lines or CSV.
func Export(w io.Writer, path, format string, filter log.Filter) error {
	r, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer r.Close()

	switch format {
	case ExportJSONL:
		return exportJSONL(r, w)
	case ExportCSV:
		return exportCSV(r, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(r *log.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	return each(r, func(ev log.Event) error {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		return nil
	})
}

var csvHeader = []string{"timestamp", "session_id", "direction", "layer", "category", "schema", "type", "path", "detail"}

func exportCSV(r *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	err := each(r, func(ev log.Event) error {
		path, detail := csvDetail(ev)
		row := []string{
			ev.Timestamp.UTC().Format(TimeFormat),
			ev.SessionID,
			ev.Direction.String(),
			ev.Layer.String(),
			ev.Category.String(),
			ev.Schema,
			EventType(ev),
			path,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	})
	cw.Flush()
	if err != nil {
		return err
	}
	return cw.Error()
}

func csvDetail(ev log.Event) (path, detail string) {
	switch {
	case ev.Frame != nil:
		return ev.File, strconv.Itoa(ev.Frame.Size)
	case ev.Record != nil:
		return ev.Record.Path, strconv.Itoa(int(ev.Record.Type))
	case ev.Field != nil:
		return ev.Field.Path, ev.Field.NewValue
	case ev.StateChange != nil:
		return ev.StateChange.Entity.String(), ev.StateChange.NewState
	case ev.Error != nil:
		return ev.Error.Context, ev.Error.Message
	}
	return "", ""
}

func each(r *log.Reader, fn func(log.Event) error) error {
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}
