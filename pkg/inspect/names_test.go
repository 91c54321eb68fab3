package inspect

import (
	"testing"

	"github.com/ieee1451/teds-go/pkg/records"
)

func TestResolveField(t *testing.T) {
	b := records.NewMetaTEDS()
	tests := []struct {
		segment string
		want    int
	}{
		{"#0", 0},
		{"3", 0},
		{"0x04", b.IndexOf(records.TagMetaUUID)},
		{"uuid", b.IndexOf(records.TagMetaUUID)},
		{"MaxChan", b.IndexOf(records.TagMetaMaxChan)},
		{"13", b.IndexOf(records.TagMetaMaxChan)},
	}
	for _, tt := range tests {
		got, err := ResolveField(b, tt.segment)
		if err != nil {
			t.Errorf("ResolveField(%q) error: %v", tt.segment, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveField(%q) = %d, want %d", tt.segment, got, tt.want)
		}
	}

	for _, bad := range []string{"#-1", "#100", "250", "Bogus"} {
		if _, err := ResolveField(b, bad); err == nil {
			t.Errorf("ResolveField(%q) expected error", bad)
		}
	}
}

func TestFieldName(t *testing.T) {
	b := records.NewMetaTEDS()
	if got := FieldName(b, records.TagMetaTestTime); got != "TestTime" {
		t.Errorf("FieldName = %q, want TestTime", got)
	}
	if got := FieldName(b, 200); got != "type_200" {
		t.Errorf("FieldName = %q, want type_200", got)
	}
}
