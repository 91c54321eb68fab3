package log

import (
	"testing"
	"time"
)

// mockLogger records events for testing
type mockLogger struct {
	events []Event
}

func (m *mockLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	mock1 := &mockLogger{}
	mock2 := &mockLogger{}
	mock3 := &mockLogger{}

	multi := NewMultiLogger(mock1, mock2, mock3)

	multi.Log(Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Direction: DirectionIn,
		Layer:     LayerFrame,
		Category:  CategoryCodec,
	})

	for i, mock := range []*mockLogger{mock1, mock2, mock3} {
		if len(mock.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(mock.events))
			continue
		}
		if mock.events[0].SessionID != "sess-123" {
			t.Errorf("logger %d: SessionID = %q", i, mock.events[0].SessionID)
		}
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	multi := NewMultiLogger()
	multi.Log(Event{SessionID: "x"})
}

func TestMultiLoggerWithNoop(t *testing.T) {
	mock := &mockLogger{}
	multi := NewMultiLogger(NoopLogger{}, mock)
	multi.Log(Event{SessionID: "x"})
	multi.Log(Event{SessionID: "y"})
	if len(mock.events) != 2 {
		t.Errorf("got %d events, want 2", len(mock.events))
	}
}

func TestMultiLoggerDropsNil(t *testing.T) {
	mock := &mockLogger{}
	multi := NewMultiLogger(nil, mock, nil)
	if len(multi) != 1 {
		t.Fatalf("len = %d, want 1", len(multi))
	}
	multi.Log(Event{SessionID: "x"})
	if len(mock.events) != 1 {
		t.Errorf("got %d events, want 1", len(mock.events))
	}
}
