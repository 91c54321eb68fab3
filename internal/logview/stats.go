package logview

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ieee1451/teds-go/internal/cli/output"
	"github.com/ieee1451/teds-go/pkg/log"
)

// Stats summarizes the log at path.
func Stats(path string) (*log.Stats, error) {
	r, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer r.Close()
	return log.Summarize(r)
}

// PrintStats writes s as key/value tables.
func PrintStats(w io.Writer, s *log.Stats) error {
	fmt.Fprintln(w, "=== TEDS Event Log Statistics ===")
	fmt.Fprintln(w)

	pairs := [][2]string{
		{"Events", fmt.Sprint(s.Events)},
		{"Sessions", fmt.Sprint(s.Sessions)},
		{"Unknown records", fmt.Sprint(s.Unknown)},
		{"Errors", fmt.Sprint(len(s.Errors))},
	}
	if s.Events > 0 {
		pairs = append(pairs,
			[2]string{"First", s.First.Format(time.RFC3339)},
			[2]string{"Last", s.Last.Format(time.RFC3339)},
			[2]string{"Duration", s.Last.Sub(s.First).String()},
		)
	}
	if err := output.SimpleTable(w, pairs); err != nil {
		return err
	}

	fmt.Fprintln(w)
	byLayer := output.NewTableData("Layer", "Events")
	for _, l := range sortedKeys(s.ByLayer) {
		byLayer.AddRow(l.String(), fmt.Sprint(s.ByLayer[l]))
	}
	if err := output.PrintTable(w, byLayer); err != nil {
		return err
	}

	fmt.Fprintln(w)
	byCat := output.NewTableData("Category", "Events")
	for _, c := range sortedKeys(s.ByCategory) {
		byCat.AddRow(c.String(), fmt.Sprint(s.ByCategory[c]))
	}
	if err := output.PrintTable(w, byCat); err != nil {
		return err
	}

	if len(s.Errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors:")
		for _, msg := range s.Errors {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
	return nil
}

func sortedKeys[K ~uint8](m map[K]int) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
