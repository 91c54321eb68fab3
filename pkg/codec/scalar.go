// Package codec converts between big-endian octet sequences and the numeric
// scalar types carried by TEDS fields.
//
// Every scalar has a fixed wire width. A byte run whose length is a multiple
// of that width decodes to an array of count = len/width elements; a single
// element is simply an array of one.
package codec

import (
	"fmt"
	"strings"
)

// Scalar identifies a primitive numeric wire type.
type Scalar uint8

const (
	Uint8 Scalar = iota + 1
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Float32
)

// Width returns the scalar's size in octets, or 0 for an invalid scalar.
func (s Scalar) Width() int {
	switch s {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	default:
		return 0
	}
}

// Valid reports whether s is one of the defined scalars.
func (s Scalar) Valid() bool { return s.Width() != 0 }

// IsInteger reports whether s is an integer scalar.
func (s Scalar) IsInteger() bool { return s.Valid() && s != Float32 }

// IsSigned reports whether s can hold negative values.
func (s Scalar) IsSigned() bool {
	return s == Int8 || s == Int16 || s == Int32 || s == Float32
}

// bounds returns the inclusive integer range of s.
func (s Scalar) bounds() (lo, hi int64) {
	switch s {
	case Uint8:
		return 0, 0xFF
	case Int8:
		return -1 << 7, 1<<7 - 1
	case Uint16:
		return 0, 0xFFFF
	case Int16:
		return -1 << 15, 1<<15 - 1
	case Uint32:
		return 0, 0xFFFFFFFF
	case Int32:
		return -1 << 31, 1<<31 - 1
	default:
		return 0, 0
	}
}

// String returns the IEEE 1451.0 style type name.
func (s Scalar) String() string {
	switch s {
	case Uint8:
		return "UInt8"
	case Int8:
		return "Int8"
	case Uint16:
		return "UInt16"
	case Int16:
		return "Int16"
	case Uint32:
		return "UInt32"
	case Int32:
		return "Int32"
	case Float32:
		return "Float32"
	default:
		return fmt.Sprintf("Scalar(%d)", uint8(s))
	}
}

// ParseScalar resolves a type name such as "uint16" or "Float32".
func ParseScalar(name string) (Scalar, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uint8":
		return Uint8, nil
	case "int8":
		return Int8, nil
	case "uint16":
		return Uint16, nil
	case "int16":
		return Int16, nil
	case "uint32":
		return Uint32, nil
	case "int32":
		return Int32, nil
	case "float32", "float":
		return Float32, nil
	default:
		return 0, fmt.Errorf("%w: unknown scalar %q", ErrTypeMismatch, name)
	}
}
