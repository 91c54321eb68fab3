package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends events to a .tlog file as a stream of CBOR items.
// Sessions sharing one FileLogger may log from different goroutines.
type FileLogger struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	enc     *cbor.Encoder
	written int
	failed  int
	closed  bool
}

// NewFileLogger opens path for appending, creating it if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{path: path, file: f, enc: NewEncoder(f)}, nil
}

// Path returns the file the logger writes to.
func (l *FileLogger) Path() string { return l.path }

// Log encodes event to the file. Events logged after Close are dropped.
// Encoding failures are counted, never returned.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if err := l.enc.Encode(event); err != nil {
		l.failed++
		return
	}
	l.written++
}

// Counts reports how many events were written and how many failed to encode.
func (l *FileLogger) Counts() (written, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written, l.failed
}

// Close syncs and closes the file. Repeated calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.file.Sync(); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
