package main

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ieee1451/teds-go/pkg/specparse"
)

var funcMap = template.FuncMap{
	"schemaConst": specparse.SchemaConstName,
	"tagConst":    specparse.TagConstName,
	"quote":       func(s string) string { return fmt.Sprintf("%q", s) },
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(fileTmpl))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

type fileData struct {
	Package string
	Records []*specparse.RawRecordDef
}

const fileTmpl = `{{define "file"}}// Code generated by teds-defgen. DO NOT EDIT.

package {{.Package}}

// Schema identifiers.
const (
{{- range .Records}}
{{schemaConst .Schema}} = {{quote .Schema}}
{{- end}}
)
{{range .Records}}
{{- if .Fields}}
{{- $schema := .Schema}}
// {{.Name}} ({{.Schema}}) field type tags.
const (
{{- range .Fields}}
{{tagConst $schema .Name}} uint8 = {{.Tag}}
{{- end}}
)
{{end}}
{{- end}}
{{- end}}`
