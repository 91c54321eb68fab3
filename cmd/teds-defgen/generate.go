package main

import (
	"fmt"
	"strings"

	"github.com/ieee1451/teds-go/pkg/specparse"
)

// Generate renders the constants file for defs. Constant names must be
// unique across schemas.
func Generate(defs *specparse.RawDefinitions, pkg string) (string, error) {
	seen := make(map[string]string)
	claim := func(name, owner string) error {
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("constant %s generated for both %s and %s", name, prev, owner)
		}
		seen[name] = owner
		return nil
	}
	for _, rec := range defs.Records {
		if err := claim(specparse.SchemaConstName(rec.Schema), rec.Schema); err != nil {
			return "", err
		}
		for _, f := range rec.Fields {
			if err := claim(specparse.TagConstName(rec.Schema, f.Name), rec.Schema+"."+f.Name); err != nil {
				return "", err
			}
		}
	}

	var b strings.Builder
	renderTemplate(&b, "file", fileData{Package: pkg, Records: defs.Records})
	return b.String(), nil
}
