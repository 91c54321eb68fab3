package log

import (
	"bytes"
	"testing"
)

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirectionIn, "IN"},
		{DirectionOut, "OUT"},
		{Direction(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.dir.String()
		if got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerFrame, "FRAME"},
		{LayerRecord, "RECORD"},
		{LayerField, "FIELD"},
		{Layer(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.layer.String()
		if got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
		if tt.want == "UNKNOWN" {
			continue
		}
		if l, ok := ParseLayer(tt.want); !ok || l != tt.layer {
			t.Errorf("ParseLayer(%q) = %v, %v", tt.want, l, ok)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryCodec, "CODEC"},
		{CategoryEdit, "EDIT"},
		{CategoryState, "STATE"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
		if tt.want == "UNKNOWN" {
			continue
		}
		if c, ok := ParseCategory(tt.want); !ok || c != tt.cat {
			t.Errorf("ParseCategory(%q) = %v, %v", tt.want, c, ok)
		}
	}
	if _, ok := ParseCategory("nope"); ok {
		t.Error("ParseCategory accepted an unknown name")
	}
}

func TestStateEntityString(t *testing.T) {
	if StateEntityBlock.String() != "BLOCK" || StateEntitySession.String() != "SESSION" {
		t.Error("unexpected state entity names")
	}
	if StateEntity(9).String() != "UNKNOWN" {
		t.Error("unknown entity should render UNKNOWN")
	}
}

func TestNewFrameEventTruncates(t *testing.T) {
	small := []byte{0, 0, 0, 2, 0xFF, 0xFF}
	ev := NewFrameEvent(small, 0xFFFF)
	if ev.Truncated || !bytes.Equal(ev.Data, small) || ev.Size != 6 {
		t.Errorf("small frame = %+v", ev)
	}

	big := make([]byte, MaxFrameData+10)
	ev = NewFrameEvent(big, 0)
	if !ev.Truncated {
		t.Error("large frame not marked truncated")
	}
	if len(ev.Data) != MaxFrameData {
		t.Errorf("len(Data) = %d, want %d", len(ev.Data), MaxFrameData)
	}
	if ev.Size != len(big) {
		t.Errorf("Size = %d, want %d", ev.Size, len(big))
	}

	small[0] = 9
	if ev := NewFrameEvent(small, 0); &ev.Data[0] == &small[0] {
		t.Error("frame data aliases caller buffer")
	}
}
