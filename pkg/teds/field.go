package teds

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ieee1451/teds-go/pkg/codec"
	"github.com/ieee1451/teds-go/pkg/tlv"
)

// FieldSpec describes a field to construct with NewField.
type FieldSpec struct {
	Tag         uint8
	Name        string
	Description string
	Type        FieldType

	// Length is the value size in octets. Zero means variable: a numeric
	// field then holds an array of any count, and a nested block's length
	// is computed at encode time.
	Length uint8

	Domain   *Enumeration
	Optional bool
	ReadOnly bool

	// Block is the default nested block for KindBlock fields. It is cloned.
	Block *Block

	// Default is assigned at construction when non-nil.
	Default any
}

// Field is one named, typed unit of a TEDS data block.
type Field struct {
	tag         uint8
	name        string
	description string
	typ         FieldType
	length      uint8
	domain      *Enumeration
	optional    bool
	included    bool
	readOnly    bool
	ident       bool
	populated   bool

	num   codec.Value
	raw   []byte
	block *Block
	proto *Block
}

// NewField validates spec and returns a field holding its default value.
func NewField(spec FieldSpec) (*Field, error) {
	f := &Field{
		tag:         spec.Tag,
		name:        spec.Name,
		description: spec.Description,
		typ:         spec.Type,
		length:      spec.Length,
		domain:      spec.Domain,
		optional:    spec.Optional,
		readOnly:    spec.ReadOnly,
	}
	if !spec.Type.Valid() {
		return nil, f.wrap(fmt.Errorf("%w: %s", ErrUnknownFieldType, spec.Type))
	}

	switch {
	case spec.Type.IsNumeric():
		s, _ := spec.Type.Scalar()
		if int(spec.Length)%s.Width() != 0 {
			return nil, f.wrap(fmt.Errorf("%w: %d octets is not a multiple of %s width %d",
				ErrLengthMismatch, spec.Length, s, s.Width()))
		}
		if spec.Domain != nil && !s.IsInteger() {
			return nil, f.wrap(fmt.Errorf("%w: enumerated domain on %s", ErrTypeMismatch, s))
		}
		f.num = codec.Zero(s, f.Count())
		if d := spec.Domain; d != nil && len(d.Members) > 0 && !d.Contains(0) {
			first := make([]int64, f.Count())
			for i := range first {
				first[i] = d.Members[0].Value
			}
			if v, err := codec.FromNative(first, s); err == nil {
				f.num = v
			}
		}
	case spec.Type.Kind == KindBytes:
		f.raw = make([]byte, spec.Length)
	case spec.Type.IsBlock():
		if spec.Block == nil {
			return nil, f.wrap(fmt.Errorf("%w: no %s block supplied", ErrSchemaMismatch, spec.Type.Schema))
		}
		if spec.Block.Schema() != spec.Type.Schema {
			return nil, f.wrap(fmt.Errorf("%w: got %s, want %s",
				ErrSchemaMismatch, spec.Block.Schema(), spec.Type.Schema))
		}
		f.length = 0
		f.proto = spec.Block.Clone()
		f.block = spec.Block.Clone()
	}

	if spec.Default != nil {
		if err := f.assign(spec.Default); err != nil {
			return nil, f.wrap(fmt.Errorf("default: %w", err))
		}
		f.populated = false
	}
	return f, nil
}

// Tag returns the wire type tag.
func (f *Field) Tag() uint8 { return f.tag }

// Name returns the field's short name.
func (f *Field) Name() string { return f.name }

// Description returns the field's human-readable description.
func (f *Field) Description() string { return f.description }

// Type returns the declared type.
func (f *Field) Type() FieldType { return f.typ }

// Length returns the declared value length in octets (0 for variable).
func (f *Field) Length() uint8 { return f.length }

// Domain returns the enumerated domain, or nil.
func (f *Field) Domain() *Enumeration { return f.domain }

// Optional reports whether the field may be omitted from encoding.
func (f *Field) Optional() bool { return f.optional }

// Included reports whether an optional field will be encoded.
// Mandatory fields are always included.
func (f *Field) Included() bool { return !f.optional || f.included }

// SetIncluded selects whether an optional field is encoded. It has no
// effect on mandatory fields.
func (f *Field) SetIncluded(v bool) {
	if f.optional {
		f.included = v
	}
}

// ReadOnly reports whether editors may assign the field.
func (f *Field) ReadOnly() bool { return f.readOnly }

// IsIdentifier reports whether f is a block's identifier structure.
func (f *Field) IsIdentifier() bool { return f.ident }

// Populated reports whether the value was assigned or decoded since
// construction. A block field also counts as populated once any field of
// its nested block is.
func (f *Field) Populated() bool {
	if f.populated {
		return true
	}
	return f.block != nil && f.block.State() != Unpopulated
}

// IsNested reports whether the field holds a nested block.
func (f *Field) IsNested() bool { return f.typ.IsBlock() }

// Nested returns the nested block handle, or nil for other kinds.
// Mutations through the handle change this field's value.
func (f *Field) Nested() *Block { return f.block }

// IsArray reports whether a numeric field holds an array rather than a
// single scalar.
func (f *Field) IsArray() bool {
	w := f.typ.Width()
	return w != 0 && (f.length == 0 || int(f.length) > w)
}

// Count returns the fixed element count of a numeric field, or 0 when the
// field is variable-length or not numeric.
func (f *Field) Count() int {
	w := f.typ.Width()
	if w == 0 {
		return 0
	}
	return int(f.length) / w
}

// SetValue assigns v after coercing it to the declared type. On failure
// the previous value is kept.
func (f *Field) SetValue(v any) error {
	if f.readOnly {
		return f.wrap(ErrReadOnly)
	}
	return f.wrap(f.assign(v))
}

// SetValueFromBytes decodes b as the declared type and assigns it.
// Nested fields decode b as the concatenated records of their block.
func (f *Field) SetValueFromBytes(b []byte) error {
	if f.readOnly {
		return f.wrap(ErrReadOnly)
	}
	_, err := f.decodeValue(b, DecodeStrict, f.name)
	return f.wrap(err)
}

// SetValueFromString parses user-entered text and assigns it.
//
// Numeric fields accept decimal or 0x-hex literals and bracketed lists;
// enumerated fields also accept member names. Bytes fields accept hex
// octets. Nested fields accept the hex encoding of their records.
func (f *Field) SetValueFromString(text string) error {
	if f.readOnly {
		return f.wrap(ErrReadOnly)
	}
	text = strings.TrimSpace(text)
	switch {
	case f.typ.IsNumeric():
		s, _ := f.typ.Scalar()
		v, err := codec.Parse(f.resolveNames(text), s)
		if err != nil {
			return f.wrap(err)
		}
		return f.wrap(f.assign(v))
	case f.typ.Kind == KindBytes:
		b, err := parseOctets(text)
		if err != nil {
			return f.wrap(err)
		}
		return f.wrap(f.assign(b))
	default:
		b, err := parseOctets(text)
		if err != nil {
			return f.wrap(err)
		}
		_, err = f.decodeValue(b, DecodeStrict, f.name)
		return f.wrap(err)
	}
}

// resolveNames replaces enumeration member names with their values.
func (f *Field) resolveNames(text string) string {
	if f.domain == nil {
		return text
	}
	sub := func(item string) string {
		if m, ok := f.domain.Lookup(item); ok {
			return fmt.Sprint(m.Value)
		}
		return strings.TrimSpace(item)
	}
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		body := strings.TrimSpace(text[1 : len(text)-1])
		if body == "" {
			return text
		}
		items := strings.Split(body, ",")
		for i, item := range items {
			items[i] = sub(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return sub(text)
}

// parseOctets accepts "0a0b", "0x0a0b", "0a:0b", "0a 0b" or a bracketed
// list of octet values.
func parseOctets(text string) ([]byte, error) {
	if strings.HasPrefix(text, "[") {
		v, err := codec.Parse(text, codec.Uint8)
		if err != nil {
			return nil, err
		}
		return codec.Encode(v), nil
	}
	clean := strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	clean = strings.NewReplacer(":", "", " ", "", "-", "").Replace(clean)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not hex octets", ErrTypeMismatch, text)
	}
	return b, nil
}

// assign stores v without the read-only check.
func (f *Field) assign(v any) error {
	switch {
	case f.typ.IsNumeric():
		s, _ := f.typ.Scalar()
		val, err := codec.FromNative(v, s)
		if err != nil {
			return err
		}
		if err := f.checkNumeric(val); err != nil {
			return err
		}
		f.num = val
	case f.typ.Kind == KindBytes:
		var b []byte
		switch t := v.(type) {
		case []byte:
			b = append([]byte(nil), t...)
		case string:
			var err error
			if b, err = parseOctets(strings.TrimSpace(t)); err != nil {
				return err
			}
		default:
			val, err := codec.FromNative(v, codec.Uint8)
			if err != nil {
				return err
			}
			b = codec.Encode(val)
		}
		if err := f.checkOctets(len(b)); err != nil {
			return err
		}
		f.raw = b
	case f.typ.IsBlock():
		switch t := v.(type) {
		case *Block:
			if t == nil || t.Schema() != f.typ.Schema {
				return fmt.Errorf("%w: %w", ErrTypeMismatch, ErrSchemaMismatch)
			}
			f.block = t.Clone()
		case []byte:
			_, err := f.decodeValue(t, DecodeStrict, f.name)
			return err
		default:
			return fmt.Errorf("%w: cannot use %T as %s", ErrTypeMismatch, v, f.typ)
		}
	}
	f.populated = true
	return nil
}

func (f *Field) checkNumeric(v codec.Value) error {
	if n := f.Count(); n > 0 {
		if v.Len() != n {
			return fmt.Errorf("%w: %d elements, want %d", ErrLengthMismatch, v.Len(), n)
		}
	} else if v.ByteLen() > tlv.MaxValueLen {
		return fmt.Errorf("%w: %d octets", ErrValueTooLong, v.ByteLen())
	}
	if f.domain != nil {
		for i := 0; i < v.Len(); i++ {
			if !f.domain.Contains(v.Int(i)) {
				return fmt.Errorf("%w: %d not in %s", ErrDomainViolation, v.Int(i), f.domain.Name)
			}
		}
	}
	return nil
}

func (f *Field) checkOctets(n int) error {
	if f.length > 0 && n != int(f.length) {
		return fmt.Errorf("%w: %d octets, want %d", ErrLengthMismatch, n, f.length)
	}
	if n > tlv.MaxValueLen {
		return fmt.Errorf("%w: %d octets", ErrValueTooLong, n)
	}
	return nil
}

// decodeValue assigns the value octets of a record. Nested blocks decode
// into a fresh copy of their default block which replaces the current one
// only on success.
func (f *Field) decodeValue(b []byte, policy DecodePolicy, path string) (DecodeReport, error) {
	switch {
	case f.typ.IsNumeric():
		if f.length > 0 && len(b) != int(f.length) {
			return DecodeReport{}, fmt.Errorf("%w: %d octets, want %d", ErrLengthMismatch, len(b), f.length)
		}
		s, _ := f.typ.Scalar()
		v, err := codec.Decode(b, s)
		if err != nil {
			return DecodeReport{}, err
		}
		if err := f.checkNumeric(v); err != nil {
			return DecodeReport{}, err
		}
		f.num = v
	case f.typ.Kind == KindBytes:
		if err := f.checkOctets(len(b)); err != nil {
			return DecodeReport{}, err
		}
		f.raw = append([]byte(nil), b...)
	case f.typ.IsBlock():
		fresh := f.proto.Clone()
		rep, err := fresh.decode(b, policy, path)
		if err != nil {
			return rep, err
		}
		f.block = fresh
		f.populated = true
		return rep, nil
	}
	f.populated = true
	return DecodeReport{}, nil
}

// Value returns the current value: a Go scalar (uint8 ... float32) or
// typed slice for numeric fields, a copy of the octets for Bytes fields
// and the nested block handle for block fields.
func (f *Field) Value() any {
	switch {
	case f.typ.IsNumeric():
		if f.IsArray() {
			return f.num.Slice()
		}
		return f.num.Native()
	case f.typ.Kind == KindBytes:
		return append([]byte(nil), f.raw...)
	default:
		return f.block
	}
}

// ValueString renders the value for display. Enumerated values use member
// names; the result is accepted by SetValueFromString.
func (f *Field) ValueString() string {
	switch {
	case f.typ.IsNumeric():
		var text string
		if f.IsArray() {
			text = codec.FormatList(f.num)
		} else {
			text = codec.Format(f.num)
		}
		if f.domain == nil {
			return text
		}
		names := make([]string, f.num.Len())
		for i := range names {
			if name, ok := f.domain.NameOf(f.num.Int(i)); ok {
				names[i] = name
			} else {
				names[i] = fmt.Sprint(f.num.Int(i))
			}
		}
		if f.IsArray() {
			return "[" + strings.Join(names, ", ") + "]"
		}
		return strings.Join(names, "")
	case f.typ.Kind == KindBytes:
		return hex.EncodeToString(f.raw)
	default:
		return fmt.Sprintf("<%s: %d fields>", f.block.Name(), f.block.Len())
	}
}

// ValueBytes returns the canonical wire encoding of the value.
func (f *Field) ValueBytes() ([]byte, error) {
	switch {
	case f.typ.IsNumeric():
		if err := f.checkNumeric(f.num); err != nil {
			return nil, f.wrap(err)
		}
		return codec.Encode(f.num), nil
	case f.typ.Kind == KindBytes:
		if err := f.checkOctets(len(f.raw)); err != nil {
			return nil, f.wrap(err)
		}
		return append([]byte(nil), f.raw...), nil
	default:
		b, err := f.block.EncodeAll()
		return b, f.wrap(err)
	}
}

// Encode returns the field's record. Fixed-length fields declare their
// static length; nested and variable fields take the length of the value.
func (f *Field) Encode() (tlv.Record, error) {
	b, err := f.ValueBytes()
	if err != nil {
		return tlv.Record{}, err
	}
	if len(b) > tlv.MaxValueLen {
		return tlv.Record{}, f.wrap(fmt.Errorf("%w: %d octets", ErrValueTooLong, len(b)))
	}
	r := tlv.Record{Type: f.tag, Length: uint8(len(b)), Value: b}
	if f.length > 0 && !f.typ.IsBlock() {
		r.Length = f.length
	}
	if err := r.Validate(); err != nil {
		return tlv.Record{}, f.wrap(err)
	}
	return r, nil
}

// Clone returns a deep copy of f.
func (f *Field) Clone() *Field {
	c := *f
	c.num = f.num.Clone()
	if f.raw != nil {
		c.raw = append([]byte(nil), f.raw...)
	}
	if f.block != nil {
		c.block = f.block.Clone()
	}
	if f.proto != nil {
		c.proto = f.proto.Clone()
	}
	return &c
}

// valueEqual compares the values of two fields of the same declaration.
func (f *Field) valueEqual(o *Field) bool {
	switch {
	case f.typ.IsNumeric():
		return f.num.Equal(o.num)
	case f.typ.Kind == KindBytes:
		return bytes.Equal(f.raw, o.raw)
	default:
		return f.block.Equal(o.block)
	}
}

// String renders f as "Name(tag)=value".
func (f *Field) String() string {
	return fmt.Sprintf("%s(%d)=%s", f.name, f.tag, f.ValueString())
}
