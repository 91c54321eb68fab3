package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(Event{
		Timestamp: time.Now(),
		SessionID: "sess-123",
		Direction: DirectionOut,
		Layer:     LayerFrame,
		Category:  CategoryCodec,
		Frame:     &FrameEvent{Size: 100, Data: []byte{1, 2, 3}},
	})
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if decoded.SessionID != "sess-123" {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, "sess-123")
	}
	if decoded.Frame == nil || decoded.Frame.Size != 100 {
		t.Errorf("Frame: got %+v", decoded.Frame)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "append.tlog")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{SessionID: "s", Timestamp: time.Now()})
		logger.Close()
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	stats, err := Summarize(reader)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if stats.Events != 2 {
		t.Errorf("events = %d, want 2", stats.Events)
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "close.tlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	// Logging after close is ignored.
	logger.Log(Event{SessionID: "late"})
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concurrent.tlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				logger.Log(Event{SessionID: "s", Timestamp: time.Now(), Record: &RecordEvent{Type: uint8(i)}})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()
	stats, err := Summarize(reader)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if stats.Events != 200 {
		t.Errorf("events = %d, want 200", stats.Events)
	}
}

func TestNewFileLoggerBadPath(t *testing.T) {
	if _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x.tlog")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFileLoggerCountsAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count.tlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if logger.Path() != path {
		t.Errorf("Path() = %q, want %q", logger.Path(), path)
	}
	for i := 0; i < 3; i++ {
		logger.Log(Event{SessionID: "s", Layer: LayerField, Category: CategoryEdit})
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	logger.Log(Event{SessionID: "late"})

	written, failed := logger.Counts()
	if written != 3 || failed != 0 {
		t.Errorf("Counts() = %d, %d; want 3, 0", written, failed)
	}
}
