package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logOne(t *testing.T, ev Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(ev)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsFrameEvent(t *testing.T) {
	entry := logOne(t, Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Direction: DirectionOut,
		Layer:     LayerFrame,
		Category:  CategoryCodec,
		Schema:    "meta",
		Frame:     &FrameEvent{Size: 40, Data: []byte{0x01, 0x02}, Checksum: 0xF00F},
	})

	if entry["session_id"] != "sess-123" {
		t.Errorf("session_id: got %v", entry["session_id"])
	}
	if entry["direction"] != "OUT" {
		t.Errorf("direction: got %v, want OUT", entry["direction"])
	}
	if entry["layer"] != "FRAME" {
		t.Errorf("layer: got %v, want FRAME", entry["layer"])
	}
	if entry["schema"] != "meta" {
		t.Errorf("schema: got %v, want meta", entry["schema"])
	}
	if entry["frame_size"] != float64(40) {
		t.Errorf("frame_size: got %v, want 40", entry["frame_size"])
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level: got %v, want DEBUG", entry["level"])
	}
}

func TestSlogAdapterLogsFieldEvent(t *testing.T) {
	entry := logOne(t, Event{
		Layer:    LayerField,
		Category: CategoryEdit,
		Field:    &FieldEvent{Path: "MetaTEDS/MaxChan", Tag: 13, OldValue: "0", NewValue: "4", Included: true},
	})
	if entry["path"] != "MetaTEDS/MaxChan" || entry["new"] != "4" || entry["tag"] != float64(13) {
		t.Errorf("field attrs = %v", entry)
	}
}

func TestSlogAdapterLogsRecordEvent(t *testing.T) {
	entry := logOne(t, Event{
		Layer:  LayerRecord,
		Record: &RecordEvent{Path: "ChannelTEDS", Type: 99, Length: 2},
	})
	if entry["known"] != false || entry["type"] != float64(99) {
		t.Errorf("record attrs = %v", entry)
	}
}

func TestSlogAdapterLogsStateChange(t *testing.T) {
	entry := logOne(t, Event{
		Category: CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   StateEntityBlock,
			OldState: "UNPOPULATED",
			NewState: "PARTIALLY_POPULATED",
			Reason:   "set",
		},
	})
	if entry["entity"] != "BLOCK" || entry["new_state"] != "PARTIALLY_POPULATED" || entry["reason"] != "set" {
		t.Errorf("state attrs = %v", entry)
	}
}

func TestSlogAdapterLogsErrorAtWarn(t *testing.T) {
	entry := logOne(t, Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Layer: LayerFrame, Message: "checksum mismatch", Context: "load"},
	})
	if entry["level"] != "WARN" {
		t.Errorf("level: got %v, want WARN", entry["level"])
	}
	if entry["error_msg"] != "checksum mismatch" || entry["error_layer"] != "FRAME" {
		t.Errorf("error attrs = %v", entry)
	}
}
