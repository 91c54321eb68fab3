package specparse

import (
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"
)

// defsDir returns the absolute path to pkg/records/defs relative to this test file.
func defsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "records", "defs")
}

func TestParseSharedTypes(t *testing.T) {
	yaml := `
version: "1.0"
enums:
  - name: UnitType
    type: uint8
    description: "Physical units interpretation"
    values:
      - { name: PUI_SI_UNITS, value: 0 }
      - { name: PUI_RATIO_SI_UNITS, value: 1 }
      - { name: PUI_ARBITRARY, value: 5 }
  - name: ChanType
    type: uint8
    values:
      - { name: SENSOR, value: 0x00 }
      - { name: ACTUATOR, value: 0x01 }
`
	shared, err := ParseSharedTypes([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseSharedTypes failed: %v", err)
	}
	if shared.Version != "1.0" {
		t.Errorf("version = %q, want 1.0", shared.Version)
	}
	if len(shared.Enums) != 2 {
		t.Fatalf("len(enums) = %d, want 2", len(shared.Enums))
	}
	if shared.Enums[0].Name != "UnitType" || len(shared.Enums[0].Values) != 3 {
		t.Errorf("enums[0] = %+v, want UnitType with 3 values", shared.Enums[0])
	}
	if shared.Enums[0].Values[2].Value != 5 {
		t.Errorf("PUI_ARBITRARY = %d, want 5", shared.Enums[0].Values[2].Value)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"enums.yaml": {Data: []byte("version: \"1.0\"\nenums:\n  - name: E\n    values:\n      - { name: A, value: 1 }\n")},
		"b.yaml":     {Data: []byte("schema: b\nfields:\n  - { tag: 1, name: X, type: uint8, length: 1 }\n")},
		"a.yaml":     {Data: []byte("schema: a\nname: A\nfields: []\n")},
		"notes.txt":  {Data: []byte("ignored")},
	}
	defs, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}
	if len(defs.Shared.Enums) != 1 {
		t.Errorf("len(shared enums) = %d, want 1", len(defs.Shared.Enums))
	}
	if len(defs.Records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(defs.Records))
	}
	if defs.Records[0].Schema != "a" || defs.Records[1].Schema != "b" {
		t.Errorf("records not sorted by file name: %s, %s", defs.Records[0].Schema, defs.Records[1].Schema)
	}
	if defs.Records[1].Name != "b" {
		t.Errorf("name defaults to schema, got %q", defs.Records[1].Name)
	}
}

func TestLoadFSBadRecord(t *testing.T) {
	fsys := fstest.MapFS{
		"x.yaml": {Data: []byte("name: NoSchema\n")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatal("expected error for record without schema")
	}
}

func TestLoadDirShippedDefinitions(t *testing.T) {
	defs, err := LoadDir(defsDir(t))
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	schemas := make(map[string]*RawRecordDef)
	for _, r := range defs.Records {
		schemas[r.Schema] = r
	}
	for _, want := range []string{"meta", "channel", "units", "sample", "dataset", "sampling", "cgroup", "vgroup", "geoloc", "proxy"} {
		if _, ok := schemas[want]; !ok {
			t.Errorf("missing record definition %q", want)
		}
	}
	if meta := schemas["meta"]; meta != nil && meta.Class != "MetaTEDS" {
		t.Errorf("meta class = %q, want MetaTEDS", meta.Class)
	}
	if len(defs.Shared.Enums) == 0 {
		t.Error("no shared enums loaded")
	}
}
