package inspect

import (
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{name: "single name", input: "MaxChan", want: []string{"MaxChan"}},
		{name: "nested names", input: "PhyUnits/Meters", want: []string{"PhyUnits", "Meters"}},
		{name: "tags", input: "12/0x35", want: []string{"12", "0x35"}},
		{name: "index", input: "#3", want: []string{"#3"}},
		{name: "spaces trimmed", input: "  DataSet / SUnits ", want: []string{"DataSet", "SUnits"}},
		{name: "empty", input: "   ", wantErr: ErrEmptyPath},
		{name: "leading slash", input: "/MaxChan", wantErr: ErrInvalidPath},
		{name: "trailing slash", input: "PhyUnits/", wantErr: ErrInvalidPath},
		{name: "double slash", input: "PhyUnits//Meters", wantErr: ErrInvalidPath},
		{name: "bare hash", input: "#", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParsePath(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) unexpected error: %v", tt.input, err)
			}
			if len(got.Segments) != len(tt.want) {
				t.Fatalf("Segments = %v, want %v", got.Segments, tt.want)
			}
			for i := range tt.want {
				if got.Segments[i] != tt.want[i] {
					t.Errorf("Segments[%d] = %q, want %q", i, got.Segments[i], tt.want[i])
				}
			}
		})
	}
}

func TestPathParentAndLast(t *testing.T) {
	p, err := ParsePath("DataSet/SUnits/Meters")
	if err != nil {
		t.Fatal(err)
	}
	if p.Last() != "Meters" {
		t.Errorf("Last() = %q", p.Last())
	}
	parent := p.Parent()
	if parent == nil || parent.String() != "DataSet/SUnits" {
		t.Errorf("Parent() = %v", parent)
	}
	if parent.Parent().Parent() != nil {
		t.Error("single-segment path should have no parent")
	}
}
