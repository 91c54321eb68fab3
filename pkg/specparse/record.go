// Package specparse provides the YAML types and parsers for TEDS record
// definition files. The records registry and teds-defgen both import it.
package specparse

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawRecordDef represents one TEDS record schema loaded from YAML.
type RawRecordDef struct {
	Schema      string        `yaml:"schema"`      // stable identifier, e.g. "meta"
	Name        string        `yaml:"name"`        // display name, e.g. "MetaTEDS"
	Class       string        `yaml:"class"`       // access code name; empty for sub-blocks
	Description string        `yaml:"description"`
	Enums       []RawEnumDef  `yaml:"enums"`
	Fields      []RawFieldDef `yaml:"fields"`
}

// RawFieldDef represents a field definition.
type RawFieldDef struct {
	Tag         uint8  `yaml:"tag"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`   // "uint8" ... "float32", "bytes", "block"
	Length      uint8  `yaml:"length"` // octets; 0 or omitted for variable
	Block       string `yaml:"block"`  // schema of a nested block
	Enum        string `yaml:"enum"`   // optional: references enum name
	Optional    bool   `yaml:"optional"`
	ReadOnly    bool   `yaml:"readOnly"`
	Default     any    `yaml:"default"`
	Description string `yaml:"description"`
}

// ParseRecordDef parses a record definition from YAML bytes.
func ParseRecordDef(data []byte) (*RawRecordDef, error) {
	var def RawRecordDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing record def: %w", err)
	}
	if def.Schema == "" {
		return nil, fmt.Errorf("record definition missing schema")
	}
	if def.Name == "" {
		def.Name = def.Schema
	}
	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("record %s: %w", def.Schema, err)
	}
	return &def, nil
}

// LoadRecordDef loads and parses a record definition from a file.
func LoadRecordDef(path string) (*RawRecordDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseRecordDef(data)
}

// validate checks what can be checked without the other definitions.
func (d *RawRecordDef) validate() error {
	seenTag := make(map[uint8]string, len(d.Fields))
	seenName := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: missing name", i)
		}
		if f.Type == "" {
			return fmt.Errorf("field %s: missing type", f.Name)
		}
		if prev, dup := seenTag[f.Tag]; dup {
			return fmt.Errorf("field %s: tag %d already used by %s", f.Name, f.Tag, prev)
		}
		if seenName[f.Name] {
			return fmt.Errorf("field %s: duplicate name", f.Name)
		}
		if f.Type == "block" && f.Block == "" {
			return fmt.Errorf("field %s: block type without block schema", f.Name)
		}
		seenTag[f.Tag] = f.Name
		seenName[f.Name] = true
	}
	return nil
}
