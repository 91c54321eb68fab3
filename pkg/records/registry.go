// Package records holds the standard TEDS record schemas and builds
// default-populated teds.Blocks from them.
//
// Schemas are defined in YAML under defs/ and embedded at build time.
// Tag and schema constants in tags_gen.go are generated from the same
// files by teds-defgen.
package records

//go:generate go run ../../cmd/teds-defgen -defs defs -output tags_gen.go

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/ieee1451/teds-go/pkg/specparse"
	"github.com/ieee1451/teds-go/pkg/teds"
)

//go:embed defs/*.yaml
var defsFS embed.FS

// Registry errors.
var (
	ErrUnknownSchema    = errors.New("unknown schema")
	ErrUnsupportedClass = errors.New("no schema for TEDS class")
	ErrSchemaCycle      = errors.New("schema nests itself")
)

// Registry resolves schema identifiers to record definitions.
type Registry struct {
	defs    map[string]*specparse.RawRecordDef
	enums   map[string]*teds.Enumeration
	classes map[teds.AccessCode]string
	order   []string
}

// Load builds a registry from the definition files at the root of fsys
// and verifies that every schema can be constructed.
func Load(fsys fs.FS) (*Registry, error) {
	raw, err := specparse.LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	return FromDefinitions(raw)
}

// FromDefinitions builds a registry from parsed definitions.
func FromDefinitions(raw *specparse.RawDefinitions) (*Registry, error) {
	r := &Registry{
		defs:    make(map[string]*specparse.RawRecordDef, len(raw.Records)),
		enums:   make(map[string]*teds.Enumeration),
		classes: make(map[teds.AccessCode]string),
	}
	if raw.Shared != nil {
		for _, e := range raw.Shared.Enums {
			r.addEnum(e)
		}
	}
	for _, def := range raw.Records {
		if _, dup := r.defs[def.Schema]; dup {
			return nil, fmt.Errorf("schema %s defined twice", def.Schema)
		}
		for _, e := range def.Enums {
			r.addEnum(e)
		}
		if def.Class != "" {
			class, err := teds.ParseAccessCode(def.Class)
			if err != nil {
				return nil, fmt.Errorf("schema %s: %w", def.Schema, err)
			}
			if prev, dup := r.classes[class]; dup {
				return nil, fmt.Errorf("schema %s: class %s already bound to %s", def.Schema, class, prev)
			}
			r.classes[class] = def.Schema
		}
		r.defs[def.Schema] = def
		r.order = append(r.order, def.Schema)
	}
	for _, schema := range r.order {
		if _, err := r.New(schema); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) addEnum(e specparse.RawEnumDef) {
	en := &teds.Enumeration{Name: e.Name, Members: make([]teds.EnumMember, len(e.Values))}
	for i, v := range e.Values {
		en.Members[i] = teds.EnumMember{Value: int64(v.Value), Name: v.Name, Description: v.Description}
	}
	r.enums[e.Name] = en
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry of the embedded standard schemas.
// It panics if the embedded definitions are invalid.
func Default() *Registry {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(defsFS, "defs")
		if err != nil {
			panic(fmt.Sprintf("records: %v", err))
		}
		reg, err := Load(sub)
		if err != nil {
			panic(fmt.Sprintf("records: loading embedded definitions: %v", err))
		}
		defaultReg = reg
	})
	return defaultReg
}

// Schemas returns all schema identifiers in definition file order.
func (r *Registry) Schemas() []string {
	return append([]string(nil), r.order...)
}

// TopLevel returns the schemas bound to an access code, ordered by code.
func (r *Registry) TopLevel() []string {
	codes := make([]int, 0, len(r.classes))
	for c := range r.classes {
		codes = append(codes, int(c))
	}
	sort.Ints(codes)
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = r.classes[teds.AccessCode(c)]
	}
	return out
}

// Def returns the raw definition of schema.
func (r *Registry) Def(schema string) (*specparse.RawRecordDef, bool) {
	d, ok := r.defs[schema]
	return d, ok
}

// Enum returns a named enumeration.
func (r *Registry) Enum(name string) (*teds.Enumeration, bool) {
	e, ok := r.enums[name]
	return e, ok
}

// SchemaFor returns the schema bound to an access code.
func (r *Registry) SchemaFor(class teds.AccessCode) (string, bool) {
	s, ok := r.classes[class]
	return s, ok
}

// Detect reads the identifier of an unframed payload and returns the
// schema that decodes it.
func (r *Registry) Detect(payload []byte) (string, error) {
	class, _, err := teds.ReadIdentifier(payload)
	if err != nil {
		return "", err
	}
	schema, ok := r.SchemaFor(class)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedClass, class)
	}
	return schema, nil
}

// New builds a block of schema with every field at its default value.
func (r *Registry) New(schema string) (*teds.Block, error) {
	return r.build(schema, nil)
}

func (r *Registry) build(schema string, stack []string) (*teds.Block, error) {
	def, ok := r.defs[schema]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}
	for _, s := range stack {
		if s == schema {
			return nil, fmt.Errorf("%w: %v -> %s", ErrSchemaCycle, stack, schema)
		}
	}
	stack = append(stack, schema)

	var class teds.AccessCode
	if def.Class != "" {
		c, err := teds.ParseAccessCode(def.Class)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", schema, err)
		}
		class = c
	}

	fields := make([]*teds.Field, 0, len(def.Fields))
	for _, fd := range def.Fields {
		f, err := r.field(schema, fd, stack)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return teds.NewBlock(teds.BlockSpec{
		Schema: def.Schema,
		Name:   def.Name,
		Class:  class,
		Fields: fields,
	})
}

func (r *Registry) field(schema string, fd specparse.RawFieldDef, stack []string) (*teds.Field, error) {
	ft, err := teds.ParseFieldType(fd.Type, fd.Block)
	if err != nil {
		return nil, fmt.Errorf("schema %s field %s: %w", schema, fd.Name, err)
	}
	spec := teds.FieldSpec{
		Tag:         fd.Tag,
		Name:        fd.Name,
		Description: fd.Description,
		Type:        ft,
		Length:      fd.Length,
		Optional:    fd.Optional,
		ReadOnly:    fd.ReadOnly,
		Default:     fd.Default,
	}
	if fd.Enum != "" {
		e, ok := r.enums[fd.Enum]
		if !ok {
			return nil, fmt.Errorf("schema %s field %s: unknown enum %q", schema, fd.Name, fd.Enum)
		}
		spec.Domain = e
	}
	if ft.IsBlock() {
		nested, err := r.build(ft.Schema, stack)
		if err != nil {
			return nil, fmt.Errorf("schema %s field %s: %w", schema, fd.Name, err)
		}
		spec.Block = nested
	}
	f, err := teds.NewField(spec)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema, err)
	}
	return f, nil
}

// New builds a default block of schema from the embedded definitions.
func New(schema string) (*teds.Block, error) { return Default().New(schema) }

// MustNew is like New but panics on an unknown schema.
func MustNew(schema string) *teds.Block {
	b, err := New(schema)
	if err != nil {
		panic(err)
	}
	return b
}

// Detect returns the embedded schema that decodes payload.
func Detect(payload []byte) (string, error) { return Default().Detect(payload) }

// NewMetaTEDS returns a default Meta-TEDS block.
func NewMetaTEDS() *teds.Block { return MustNew(SchemaMeta) }

// NewChannelTEDS returns a default TransducerChannel TEDS block.
func NewChannelTEDS() *teds.Block { return MustNew(SchemaChannel) }

// NewUnits returns a default physical units sub-block.
func NewUnits() *teds.Block { return MustNew(SchemaUnits) }

// NewSample returns a default sample definition sub-block.
func NewSample() *teds.Block { return MustNew(SchemaSample) }

// NewDataSet returns a default data set definition sub-block.
func NewDataSet() *teds.Block { return MustNew(SchemaDataset) }

// NewSampling returns a default sampling attribute sub-block.
func NewSampling() *teds.Block { return MustNew(SchemaSampling) }
