package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ieee1451/teds-go/pkg/specparse"
)

func testDefs() *specparse.RawDefinitions {
	return &specparse.RawDefinitions{
		Shared: &specparse.RawSharedTypes{},
		Records: []*specparse.RawRecordDef{
			{
				Schema: "meta",
				Name:   "MetaTEDS",
				Class:  "MetaTEDS",
				Fields: []specparse.RawFieldDef{
					{Tag: 4, Name: "UUID", Type: "bytes", Length: 10},
					{Tag: 13, Name: "MaxChan", Type: "uint16", Length: 2},
				},
			},
			{
				Schema: "units",
				Name:   "Units",
				Fields: []specparse.RawFieldDef{
					{Tag: 50, Name: "UnitType", Type: "uint8", Length: 1},
				},
			},
			{Schema: "empty", Name: "Empty"},
		},
	}
}

func mustContain(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Errorf("output missing %q\n--- output ---\n%s", want, output)
	}
}

func TestGenerateSchemaConstants(t *testing.T) {
	output, err := Generate(testDefs(), "records")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mustContain(t, output, "// Code generated by teds-defgen. DO NOT EDIT.")
	mustContain(t, output, "package records")
	mustContain(t, output, `SchemaMeta = "meta"`)
	mustContain(t, output, `SchemaUnits = "units"`)
	mustContain(t, output, `SchemaEmpty = "empty"`)
}

func TestGenerateTagConstants(t *testing.T) {
	output, err := Generate(testDefs(), "records")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mustContain(t, output, "// MetaTEDS (meta) field type tags.")
	mustContain(t, output, "TagMetaUUID uint8 = 4")
	mustContain(t, output, "TagMetaMaxChan uint8 = 13")
	mustContain(t, output, "TagUnitsUnitType uint8 = 50")

	if strings.Contains(output, "Empty (empty) field type tags") {
		t.Error("schema without fields should not get a tag block")
	}
}

func TestGenerateRejectsCollisions(t *testing.T) {
	defs := testDefs()
	defs.Records = append(defs.Records, &specparse.RawRecordDef{Schema: "Meta"})
	if _, err := Generate(defs, "records"); err == nil {
		t.Fatal("expected error for colliding schema constant")
	}
}

func TestRunWritesFormattedFile(t *testing.T) {
	dir := t.TempDir()
	defsDir := filepath.Join(dir, "defs")
	if err := os.MkdirAll(defsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	def := "schema: sampling\nname: Sampling\nfields:\n  - { tag: 48, name: SampMode, type: uint8, length: 1 }\n  - { tag: 49, name: SDefault, type: uint8, length: 1 }\n"
	if err := os.WriteFile(filepath.Join(defsDir, "sampling.yaml"), []byte(def), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "gen", "tags_gen.go")
	if err := run(defsDir, out, "records"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	got := string(data)
	mustContain(t, got, "\tTagSamplingSampMode uint8 = 48\n")
	mustContain(t, got, "\tTagSamplingSDefault uint8 = 49\n")
	mustContain(t, got, "\tSchemaSampling = \"sampling\"\n")
}

func TestGeneratedFileIsCurrent(t *testing.T) {
	defs, err := specparse.LoadDir(filepath.Join("..", "..", "pkg", "records", "defs"))
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	code, err := Generate(defs, "records")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, rec := range defs.Records {
		for _, f := range rec.Fields {
			if !strings.Contains(code, specparse.TagConstName(rec.Schema, f.Name)) {
				t.Errorf("missing constant for %s.%s", rec.Schema, f.Name)
			}
		}
	}

	current, err := os.ReadFile(filepath.Join("..", "..", "pkg", "records", "tags_gen.go"))
	if err != nil {
		t.Fatalf("reading tags_gen.go: %v", err)
	}
	for _, rec := range defs.Records {
		mustContain(t, string(current), specparse.SchemaConstName(rec.Schema))
	}
}
