package specparse

import (
	"strings"
	"unicode"
)

// ExportedName converts a schema identifier such as "meta" or "data-set"
// to an exported Go identifier fragment ("Meta", "DataSet").
func ExportedName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '-' || r == '_' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TagConstName returns the generated constant name for a field tag,
// e.g. ("meta", "UUID") -> "TagMetaUUID".
func TagConstName(schema, field string) string {
	return "Tag" + ExportedName(schema) + ExportedName(field)
}

// SchemaConstName returns the generated constant name for a schema,
// e.g. "channel" -> "SchemaChannel".
func SchemaConstName(schema string) string {
	return "Schema" + ExportedName(schema)
}
