package teds

import (
	"fmt"
	"strings"

	"github.com/ieee1451/teds-go/pkg/tlv"
)

// BlockSpec describes a block to construct with NewBlock.
type BlockSpec struct {
	// Schema is the stable schema identifier, e.g. "meta" or "units".
	Schema string

	// Name is the display name, e.g. "MetaTEDS".
	Name string

	// Class is the access code of a top-level TEDS. When set, the block
	// leads with a read-only identifier structure. Sub-blocks leave it zero.
	Class AccessCode

	Fields []*Field
}

// Block is an ordered collection of fields forming one TEDS record.
// Declaration order is encoding order. A Block is not safe for
// concurrent use.
type Block struct {
	schema string
	name   string
	class  AccessCode
	fields []*Field
	index  map[uint8]int
}

// NewBlock builds a block from spec. Fields are owned by the block from
// then on and must not be shared with another block.
func NewBlock(spec BlockSpec) (*Block, error) {
	b := &Block{
		schema: spec.Schema,
		name:   spec.Name,
		class:  spec.Class,
		index:  make(map[uint8]int, len(spec.Fields)+1),
	}
	if b.name == "" {
		b.name = spec.Schema
	}
	if spec.Class != 0 {
		if !spec.Class.Valid() {
			return nil, fmt.Errorf("block %s: invalid access code %d", b.name, spec.Class)
		}
		b.add(NewIdentifier(spec.Class))
	}
	for _, f := range spec.Fields {
		if f == nil {
			return nil, fmt.Errorf("block %s: nil field", b.name)
		}
		if _, dup := b.index[f.tag]; dup {
			return nil, fmt.Errorf("block %s: %w: %d (%s)", b.name, ErrDuplicateTag, f.tag, f.name)
		}
		b.add(f)
	}
	return b, nil
}

func (b *Block) add(f *Field) {
	b.index[f.tag] = len(b.fields)
	b.fields = append(b.fields, f)
}

// Schema returns the schema identifier.
func (b *Block) Schema() string { return b.schema }

// Name returns the display name.
func (b *Block) Name() string { return b.name }

// Class returns the access code, or zero for a sub-block.
func (b *Block) Class() AccessCode { return b.class }

// Len returns the number of fields.
func (b *Block) Len() int { return len(b.fields) }

// Field returns the field at index i, or nil when i is out of range.
func (b *Block) Field(i int) *Field {
	if i < 0 || i >= len(b.fields) {
		return nil
	}
	return b.fields[i]
}

// Fields returns the fields in declaration order.
func (b *Block) Fields() []*Field {
	return append([]*Field(nil), b.fields...)
}

// Lookup returns the field with type tag tag.
func (b *Block) Lookup(tag uint8) (*Field, bool) {
	i, ok := b.index[tag]
	if !ok {
		return nil, false
	}
	return b.fields[i], true
}

// IndexOf returns the position of the field with type tag tag, or -1.
func (b *Block) IndexOf(tag uint8) int {
	if i, ok := b.index[tag]; ok {
		return i
	}
	return -1
}

// FieldByName returns the field named name, ignoring case.
func (b *Block) FieldByName(name string) (*Field, bool) {
	for _, f := range b.fields {
		if strings.EqualFold(f.name, name) {
			return f, true
		}
	}
	return nil, false
}

// Identifier returns the identifier field, or nil for a sub-block.
func (b *Block) Identifier() *Field {
	if b.class == 0 || len(b.fields) == 0 {
		return nil
	}
	return b.fields[0]
}

// Records returns the records of every included field in order.
func (b *Block) Records() ([]tlv.Record, error) {
	records := make([]tlv.Record, 0, len(b.fields))
	for _, f := range b.fields {
		if !f.Included() {
			continue
		}
		r, err := f.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", b.name, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// EncodeAll concatenates the records of every included field.
func (b *Block) EncodeAll() ([]byte, error) {
	records, err := b.Records()
	if err != nil {
		return nil, err
	}
	return tlv.EncodeAll(records)
}

// DecodeAll decodes buf with DecodeStrict.
func (b *Block) DecodeAll(buf []byte) error {
	_, err := b.Decode(buf, DecodeStrict)
	return err
}

// Decode assigns each record in buf to the field with the matching type
// tag, in whatever order the records appear, and marks it included.
// Blocks with an access code require the identifier as the first record.
//
// Decoding is destructive: when it fails, fields assigned before the
// failure keep their new values. Decode into a fresh block and swap on
// success when that matters.
func (b *Block) Decode(buf []byte, policy DecodePolicy) (DecodeReport, error) {
	return b.decode(buf, policy, b.name)
}

func (b *Block) decode(buf []byte, policy DecodePolicy, path string) (DecodeReport, error) {
	var report DecodeReport
	// A block with an access code must lead with its identifier.
	needID := b.class != 0
	err := tlv.Walk(buf, func(r tlv.Record) error {
		if needID {
			if r.Type != TagIdentifier {
				return fmt.Errorf("%w: %s starts with type %d", ErrIdentifierMismatch, path, r.Type)
			}
			needID = false
		}
		f, ok := b.Lookup(r.Type)
		if !ok {
			if policy == DecodeSkipUnknown {
				report.Unknown = append(report.Unknown, UnknownRecord{Path: path, Record: r})
				return nil
			}
			return fmt.Errorf("%w: type %d in %s", ErrUnknownFieldType, r.Type, path)
		}
		if f.ident {
			if err := checkIdentifier(r.Value, b.class); err != nil {
				return f.wrap(err)
			}
		}
		nested, err := f.decodeValue(r.Value, policy, path+"/"+f.name)
		report.merge(nested)
		if err != nil {
			return f.wrap(err)
		}
		f.included = true
		report.Decoded++
		return nil
	})
	if err != nil {
		return report, err
	}
	if needID {
		return report, fmt.Errorf("%w: %s has no identifier", ErrIdentifierMismatch, path)
	}
	return report, nil
}

// State reports how many fields have been populated since construction.
type State uint8

const (
	Unpopulated State = iota
	PartiallyPopulated
	FullyPopulated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unpopulated:
		return "UNPOPULATED"
	case PartiallyPopulated:
		return "PARTIALLY_POPULATED"
	case FullyPopulated:
		return "FULLY_POPULATED"
	default:
		return "UNKNOWN"
	}
}

// State derives the population state from the fields. The identifier
// does not count.
func (b *Block) State() State {
	total, set := 0, 0
	for _, f := range b.fields {
		if f.ident {
			continue
		}
		total++
		if f.Populated() {
			set++
		}
	}
	switch {
	case set == 0:
		return Unpopulated
	case set == total:
		return FullyPopulated
	default:
		return PartiallyPopulated
	}
}

// Clone returns a deep copy of b sharing no fields.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := &Block{
		schema: b.schema,
		name:   b.name,
		class:  b.class,
		fields: make([]*Field, len(b.fields)),
		index:  make(map[uint8]int, len(b.index)),
	}
	for i, f := range b.fields {
		c.fields[i] = f.Clone()
		c.index[f.tag] = i
	}
	return c
}

// Equal reports whether b and o share a schema and would encode the same
// fields with the same values. Excluded optional fields are ignored.
func (b *Block) Equal(o *Block) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.schema != o.schema || b.class != o.class || len(b.fields) != len(o.fields) {
		return false
	}
	for i, f := range b.fields {
		g := o.fields[i]
		if f.tag != g.tag || f.Included() != g.Included() {
			return false
		}
		if f.Included() && !f.valueEqual(g) {
			return false
		}
	}
	return true
}

// String renders b as "Name{Field(tag)=value, ...}".
func (b *Block) String() string {
	parts := make([]string, len(b.fields))
	for i, f := range b.fields {
		parts[i] = f.String()
	}
	return b.name + "{" + strings.Join(parts, ", ") + "}"
}
