// Package inspect provides field inspection and editing utilities for TEDS
// data blocks.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "PhyUnits/Meters" or "12/53")
//   - Resolving field names, type tags and indices
//   - Reading and writing field values as text
//   - Formatting output for display
package inspect

import (
	"errors"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
)

// Path represents a parsed field path. Each segment selects a field of the
// block reached so far; every segment but the last must name a nested field.
//
// A segment is a field name (case-insensitive), a decimal or 0x-hex type
// tag, or "#" followed by a field index.
type Path struct {
	Segments []string

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(input, "/")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" || parts[i] == "#" {
			return nil, ErrInvalidPath
		}
	}
	return &Path{Segments: parts, Raw: input}, nil
}

// Parent returns the path without its last segment, or nil for a
// single-segment path.
func (p *Path) Parent() *Path {
	if len(p.Segments) < 2 {
		return nil
	}
	segs := p.Segments[:len(p.Segments)-1]
	return &Path{Segments: segs, Raw: strings.Join(segs, "/")}
}

// Last returns the final segment.
func (p *Path) Last() string {
	return p.Segments[len(p.Segments)-1]
}

// String returns the path as a string.
func (p *Path) String() string {
	return strings.Join(p.Segments, "/")
}
