package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Codec errors.
var (
	// ErrTypeMismatch is returned when a value cannot be coerced to a scalar.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrLengthMismatch is returned when a byte count is not a whole number
	// of scalar widths, or an element count disagrees with a declared length.
	ErrLengthMismatch = errors.New("length mismatch")
)

// Value is an ordered run of elements sharing one scalar type.
// Every element is held as float64, which represents all 32-bit integers
// and every float32 exactly.
type Value struct {
	scalar Scalar
	elems  []float64
}

// Scalar returns the element type.
func (v Value) Scalar() Scalar { return v.scalar }

// Len returns the number of elements.
func (v Value) Len() int { return len(v.elems) }

// ByteLen returns the encoded size in octets.
func (v Value) ByteLen() int { return len(v.elems) * v.scalar.Width() }

// IsZero reports whether v was never assigned a scalar.
func (v Value) IsZero() bool { return v.scalar == 0 }

// Int returns element i as an integer. Float elements are truncated.
func (v Value) Int(i int) int64 { return int64(v.elems[i]) }

// Float returns element i as a float32.
func (v Value) Float(i int) float32 { return float32(v.elems[i]) }

// Zero returns a value of n zero elements.
func Zero(s Scalar, n int) Value {
	return Value{scalar: s, elems: make([]float64, n)}
}

// Decode parses b as big-endian elements of scalar s.
func Decode(b []byte, s Scalar) (Value, error) {
	w := s.Width()
	if w == 0 {
		return Value{}, fmt.Errorf("%w: invalid scalar %d", ErrTypeMismatch, s)
	}
	if len(b)%w != 0 {
		return Value{}, fmt.Errorf("%w: %d octets is not a multiple of %s width %d",
			ErrLengthMismatch, len(b), s, w)
	}
	v := Value{scalar: s, elems: make([]float64, len(b)/w)}
	for i := range v.elems {
		chunk := b[i*w : (i+1)*w]
		switch s {
		case Uint8:
			v.elems[i] = float64(chunk[0])
		case Int8:
			v.elems[i] = float64(int8(chunk[0]))
		case Uint16:
			v.elems[i] = float64(binary.BigEndian.Uint16(chunk))
		case Int16:
			v.elems[i] = float64(int16(binary.BigEndian.Uint16(chunk)))
		case Uint32:
			v.elems[i] = float64(binary.BigEndian.Uint32(chunk))
		case Int32:
			v.elems[i] = float64(int32(binary.BigEndian.Uint32(chunk)))
		case Float32:
			v.elems[i] = float64(math.Float32frombits(binary.BigEndian.Uint32(chunk)))
		}
	}
	return v, nil
}

// Encode renders v in big-endian order.
func Encode(v Value) []byte {
	return v.AppendTo(make([]byte, 0, v.ByteLen()))
}

// AppendTo appends the big-endian encoding of v to dst.
func (v Value) AppendTo(dst []byte) []byte {
	for _, e := range v.elems {
		switch v.scalar {
		case Uint8:
			dst = append(dst, uint8(e))
		case Int8:
			dst = append(dst, uint8(int8(e)))
		case Uint16:
			dst = binary.BigEndian.AppendUint16(dst, uint16(e))
		case Int16:
			dst = binary.BigEndian.AppendUint16(dst, uint16(int16(e)))
		case Uint32:
			dst = binary.BigEndian.AppendUint32(dst, uint32(e))
		case Int32:
			dst = binary.BigEndian.AppendUint32(dst, uint32(int32(e)))
		case Float32:
			dst = binary.BigEndian.AppendUint32(dst, math.Float32bits(float32(e)))
		}
	}
	return dst
}

// Equal reports whether v and o hold the same scalar and elements.
// Float elements compare by bit pattern so NaN equals itself.
func (v Value) Equal(o Value) bool {
	if v.scalar != o.scalar || len(v.elems) != len(o.elems) {
		return false
	}
	for i := range v.elems {
		if v.scalar == Float32 {
			if math.Float32bits(float32(v.elems[i])) != math.Float32bits(float32(o.elems[i])) {
				return false
			}
			continue
		}
		if v.elems[i] != o.elems[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no storage with v.
func (v Value) Clone() Value {
	return Value{scalar: v.scalar, elems: append([]float64(nil), v.elems...)}
}

// Native returns the value as a Go scalar when it holds exactly one
// element and as a typed slice otherwise.
func (v Value) Native() any {
	if len(v.elems) == 1 {
		return v.elem(0)
	}
	return v.Slice()
}

// Slice returns the elements as a typed slice ([]uint8, []int16, ...).
func (v Value) Slice() any {
	switch v.scalar {
	case Uint8:
		return sliceOf[uint8](v.elems)
	case Int8:
		return sliceOf[int8](v.elems)
	case Uint16:
		return sliceOf[uint16](v.elems)
	case Int16:
		return sliceOf[int16](v.elems)
	case Uint32:
		return sliceOf[uint32](v.elems)
	case Int32:
		return sliceOf[int32](v.elems)
	case Float32:
		return sliceOf[float32](v.elems)
	default:
		return nil
	}
}

func (v Value) elem(i int) any {
	e := v.elems[i]
	switch v.scalar {
	case Uint8:
		return uint8(e)
	case Int8:
		return int8(e)
	case Uint16:
		return uint16(e)
	case Int16:
		return int16(e)
	case Uint32:
		return uint32(e)
	case Int32:
		return int32(e)
	case Float32:
		return float32(e)
	default:
		return nil
	}
}

type number interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~float32
}

func sliceOf[T number](elems []float64) []T {
	out := make([]T, len(elems))
	for i, e := range elems {
		out[i] = T(e)
	}
	return out
}
