package specparse

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

// SharedTypesFile is the definitions file holding enums shared by records.
const SharedTypesFile = "enums.yaml"

// RawSharedTypes represents shared type definitions loaded from YAML.
type RawSharedTypes struct {
	Version string       `yaml:"version"`
	Enums   []RawEnumDef `yaml:"enums"`
}

// RawEnumDef represents an enum type definition.
type RawEnumDef struct {
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"` // "uint8"
	Description string         `yaml:"description"`
	Values      []RawEnumValue `yaml:"values"`
}

// RawEnumValue represents a single enum value.
type RawEnumValue struct {
	Name        string `yaml:"name"`
	Value       int    `yaml:"value"`
	Description string `yaml:"description"`
}

// ParseSharedTypes parses shared type definitions from YAML bytes.
func ParseSharedTypes(data []byte) (*RawSharedTypes, error) {
	var shared RawSharedTypes
	if err := yaml.Unmarshal(data, &shared); err != nil {
		return nil, fmt.Errorf("parsing shared types: %w", err)
	}
	return &shared, nil
}

// LoadSharedTypes loads and parses shared types from a file.
func LoadSharedTypes(path string) (*RawSharedTypes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseSharedTypes(data)
}

// RawDefinitions is a full set of definition files.
type RawDefinitions struct {
	Shared  *RawSharedTypes
	Records []*RawRecordDef // sorted by file name
}

// LoadFS reads SharedTypesFile (if present) and every other *.yaml file
// at the root of fsys as a record definition.
func LoadFS(fsys fs.FS) (*RawDefinitions, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing definitions: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	defs := &RawDefinitions{Shared: &RawSharedTypes{}}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if name == SharedTypesFile {
			if defs.Shared, err = ParseSharedTypes(data); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			continue
		}
		rec, err := ParseRecordDef(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defs.Records = append(defs.Records, rec)
	}
	return defs, nil
}

// LoadDir is LoadFS over a directory on disk.
func LoadDir(dir string) (*RawDefinitions, error) {
	return LoadFS(os.DirFS(dir))
}
