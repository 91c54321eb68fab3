package teds

import (
	"fmt"
	"strings"

	"github.com/ieee1451/teds-go/pkg/codec"
)

// Kind is the variant of a FieldType.
type Kind uint8

const (
	KindUint8 Kind = iota + 1
	KindInt8
	KindUint16
	KindInt16
	KindUint32
	KindInt32
	KindFloat32
	KindBytes
	KindBlock
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "Bytes"
	case KindBlock:
		return "Block"
	}
	if s, ok := k.scalar(); ok {
		return s.String()
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) scalar() (codec.Scalar, bool) {
	switch k {
	case KindUint8:
		return codec.Uint8, true
	case KindInt8:
		return codec.Int8, true
	case KindUint16:
		return codec.Uint16, true
	case KindInt16:
		return codec.Int16, true
	case KindUint32:
		return codec.Uint32, true
	case KindInt32:
		return codec.Int32, true
	case KindFloat32:
		return codec.Float32, true
	default:
		return 0, false
	}
}

// FieldType is the declared type of a field. Schema is set only for
// KindBlock and names the nested block's schema.
type FieldType struct {
	Kind   Kind
	Schema string
}

// Predefined non-nested field types.
var (
	TypeUint8   = FieldType{Kind: KindUint8}
	TypeInt8    = FieldType{Kind: KindInt8}
	TypeUint16  = FieldType{Kind: KindUint16}
	TypeInt16   = FieldType{Kind: KindInt16}
	TypeUint32  = FieldType{Kind: KindUint32}
	TypeInt32   = FieldType{Kind: KindInt32}
	TypeFloat32 = FieldType{Kind: KindFloat32}
	TypeBytes   = FieldType{Kind: KindBytes}
)

// BlockOf returns the nested-block type for a schema.
func BlockOf(schema string) FieldType {
	return FieldType{Kind: KindBlock, Schema: schema}
}

// Scalar returns the numeric scalar of t and whether t is numeric.
func (t FieldType) Scalar() (codec.Scalar, bool) { return t.Kind.scalar() }

// IsNumeric reports whether t carries numeric scalars.
func (t FieldType) IsNumeric() bool {
	_, ok := t.Kind.scalar()
	return ok
}

// IsBlock reports whether t is a nested block.
func (t FieldType) IsBlock() bool { return t.Kind == KindBlock }

// Width returns the scalar width in octets, or 0 for variable kinds.
func (t FieldType) Width() int {
	if s, ok := t.Kind.scalar(); ok {
		return s.Width()
	}
	return 0
}

// Valid reports whether t is a well-formed type.
func (t FieldType) Valid() bool {
	switch {
	case t.Kind == KindBlock:
		return t.Schema != ""
	case t.Kind == KindBytes:
		return true
	default:
		return t.IsNumeric()
	}
}

// String returns a display name such as "Float32" or "Block(units)".
func (t FieldType) String() string {
	if t.Kind == KindBlock {
		return "Block(" + t.Schema + ")"
	}
	return t.Kind.String()
}

// ParseFieldType resolves a definition type name. Numeric names follow
// codec.ParseScalar, "bytes" is an octet string and "block" requires schema.
func ParseFieldType(name, schema string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bytes":
		return TypeBytes, nil
	case "block":
		if schema == "" {
			return FieldType{}, fmt.Errorf("%w: block type without schema", ErrUnknownFieldType)
		}
		return BlockOf(schema), nil
	}
	s, err := codec.ParseScalar(name)
	if err != nil {
		return FieldType{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, name)
	}
	return FieldType{Kind: kindOf(s)}, nil
}

func kindOf(s codec.Scalar) Kind {
	switch s {
	case codec.Uint8:
		return KindUint8
	case codec.Int8:
		return KindInt8
	case codec.Uint16:
		return KindUint16
	case codec.Int16:
		return KindInt16
	case codec.Uint32:
		return KindUint32
	case codec.Int32:
		return KindInt32
	case codec.Float32:
		return KindFloat32
	default:
		return 0
	}
}
