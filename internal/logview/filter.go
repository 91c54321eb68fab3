package logview

import (
	"errors"
	"fmt"
	"io"

	"github.com/ieee1451/teds-go/pkg/log"
)

// Filter copies the events of the log at path that match filter into a
// new log at output and returns how many were copied.
func Filter(path, output string, filter log.Filter) (int, error) {
	r, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer r.Close()

	out, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer out.Close()

	n := 0
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("failed to read event: %w", err)
		}
		out.Log(ev)
		n++
	}
}
