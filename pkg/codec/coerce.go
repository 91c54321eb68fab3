package codec

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// FromNative coerces a Go value to elements of scalar s.
//
// Accepted inputs are the built-in integer and float kinds, slices and
// arrays of them, []any holding them, Value, and strings (parsed with
// Parse). Integer scalars reject fractional and out-of-range input.
func FromNative(x any, s Scalar) (Value, error) {
	if !s.Valid() {
		return Value{}, fmt.Errorf("%w: invalid scalar %d", ErrTypeMismatch, s)
	}
	switch t := x.(type) {
	case nil:
		return Value{}, fmt.Errorf("%w: nil value for %s", ErrTypeMismatch, s)
	case Value:
		return Convert(t, s)
	case string:
		return Parse(t, s)
	case []any:
		v := Value{scalar: s, elems: make([]float64, 0, len(t))}
		for i, item := range t {
			f, ok := toFloat(item)
			if !ok {
				return Value{}, fmt.Errorf("%w: element %d (%T) is not numeric", ErrTypeMismatch, i, item)
			}
			if err := check(f, s); err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			v.elems = append(v.elems, round(f, s))
		}
		return v, nil
	}

	if f, ok := toFloat(x); ok {
		if err := check(f, s); err != nil {
			return Value{}, err
		}
		return Value{scalar: s, elems: []float64{round(f, s)}}, nil
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrTypeMismatch, x, s)
	}
	v := Value{scalar: s, elems: make([]float64, 0, rv.Len())}
	for i := 0; i < rv.Len(); i++ {
		f, ok := toFloat(rv.Index(i).Interface())
		if !ok {
			return Value{}, fmt.Errorf("%w: cannot use %T as %s array", ErrTypeMismatch, x, s)
		}
		if err := check(f, s); err != nil {
			return Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		v.elems = append(v.elems, round(f, s))
	}
	return v, nil
}

// Convert re-types v's elements as scalar s, applying the same range
// rules as FromNative.
func Convert(v Value, s Scalar) (Value, error) {
	if v.scalar == s {
		return v.Clone(), nil
	}
	out := Value{scalar: s, elems: make([]float64, len(v.elems))}
	for i, e := range v.elems {
		if err := check(e, s); err != nil {
			return Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		out.elems[i] = round(e, s)
	}
	return out, nil
}

// Parse reads user-entered text as scalar s. A bracketed, comma-separated
// list such as "[1, 2, 0x10]" yields an array; anything else is a single
// decimal or 0x-prefixed hexadecimal literal.
func Parse(text string, s Scalar) (Value, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "[") {
		if !strings.HasSuffix(text, "]") {
			return Value{}, fmt.Errorf("%w: unterminated list %q", ErrTypeMismatch, text)
		}
		body := strings.TrimSpace(text[1 : len(text)-1])
		v := Value{scalar: s}
		if body == "" {
			return v, nil
		}
		for i, item := range strings.Split(body, ",") {
			f, err := parseOne(strings.TrimSpace(item), s)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			v.elems = append(v.elems, round(f, s))
		}
		return v, nil
	}
	f, err := parseOne(text, s)
	if err != nil {
		return Value{}, err
	}
	return Value{scalar: s, elems: []float64{round(f, s)}}, nil
}

func parseOne(text string, s Scalar) (float64, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: empty %s literal", ErrTypeMismatch, s)
	}
	var f float64
	if s.IsInteger() {
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a valid %s", ErrTypeMismatch, text, s)
		}
		f = float64(n)
	} else {
		x, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a valid %s", ErrTypeMismatch, text, s)
		}
		f = x
	}
	if err := check(f, s); err != nil {
		return 0, err
	}
	return f, nil
}

// Format renders v as display text: a bare literal for one element,
// a bracketed list otherwise.
func Format(v Value) string {
	if len(v.elems) == 1 {
		return formatElem(v.elems[0], v.scalar)
	}
	return FormatList(v)
}

// FormatList renders v as a bracketed list regardless of length.
func FormatList(v Value) string {
	parts := make([]string, len(v.elems))
	for i, e := range v.elems {
		parts[i] = formatElem(e, v.scalar)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatElem(e float64, s Scalar) string {
	if s == Float32 {
		return strconv.FormatFloat(e, 'g', -1, 32)
	}
	return strconv.FormatInt(int64(e), 10)
}

// check reports whether f is representable as scalar s.
func check(f float64, s Scalar) error {
	if s == Float32 {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		if math.Abs(f) > math.MaxFloat32 {
			return fmt.Errorf("%w: %g overflows %s", ErrTypeMismatch, f, s)
		}
		return nil
	}
	if f != math.Trunc(f) || math.IsNaN(f) {
		return fmt.Errorf("%w: %g is not an integer", ErrTypeMismatch, f)
	}
	lo, hi := s.bounds()
	if f < float64(lo) || f > float64(hi) {
		return fmt.Errorf("%w: %g out of %s range [%d, %d]", ErrTypeMismatch, f, s, lo, hi)
	}
	return nil
}

// round narrows f to float32 precision for Float32 elements.
func round(f float64, s Scalar) float64 {
	if s == Float32 {
		return float64(float32(f))
	}
	return f
}

func toFloat(x any) (float64, bool) {
	switch n := x.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
