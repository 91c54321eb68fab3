package specparse

import (
	"strings"
	"testing"
)

func TestParseRecordDef_Minimal(t *testing.T) {
	yaml := `
schema: meta
name: MetaTEDS
class: MetaTEDS
description: "Meta-TEDS"
fields:
  - tag: 4
    name: UUID
    type: bytes
    length: 10
    description: "Globally Unique Identifier"
  - tag: 11
    name: SHoldOff
    type: float32
    length: 4
    optional: true
  - tag: 14
    name: CGroup
    type: block
    block: cgroup
    optional: true
`
	def, err := ParseRecordDef([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseRecordDef failed: %v", err)
	}
	if def.Schema != "meta" || def.Name != "MetaTEDS" || def.Class != "MetaTEDS" {
		t.Errorf("header = %q/%q/%q", def.Schema, def.Name, def.Class)
	}
	if len(def.Fields) != 3 {
		t.Fatalf("len(fields) = %d, want 3", len(def.Fields))
	}

	uuid := def.Fields[0]
	if uuid.Tag != 4 || uuid.Type != "bytes" || uuid.Length != 10 {
		t.Errorf("uuid = %+v", uuid)
	}
	if !def.Fields[1].Optional {
		t.Error("SHoldOff optional = false, want true")
	}
	if def.Fields[2].Block != "cgroup" {
		t.Errorf("CGroup block = %q, want cgroup", def.Fields[2].Block)
	}
}

func TestParseRecordDef_Default(t *testing.T) {
	yaml := `
schema: units
fields:
  - { tag: 51, name: Radians, type: uint8, length: 1, default: 128 }
`
	def, err := ParseRecordDef([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseRecordDef failed: %v", err)
	}
	if def.Fields[0].Default != 128 {
		t.Errorf("default = %#v, want 128", def.Fields[0].Default)
	}
}

func TestParseRecordDef_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing schema", "name: X\n", "missing schema"},
		{"missing field name", "schema: x\nfields:\n  - { tag: 1, type: uint8 }\n", "missing name"},
		{"missing type", "schema: x\nfields:\n  - { tag: 1, name: A }\n", "missing type"},
		{"duplicate tag", "schema: x\nfields:\n  - { tag: 1, name: A, type: uint8 }\n  - { tag: 1, name: B, type: uint8 }\n", "already used"},
		{"duplicate name", "schema: x\nfields:\n  - { tag: 1, name: A, type: uint8 }\n  - { tag: 2, name: A, type: uint8 }\n", "duplicate name"},
		{"block without schema", "schema: x\nfields:\n  - { tag: 1, name: A, type: block }\n", "without block schema"},
		{"bad yaml", "schema: [x\n", "parsing record def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecordDef([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}
