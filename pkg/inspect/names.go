package inspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ieee1451/teds-go/pkg/teds"
)

// ResolveField resolves one path segment to a field index of b.
//
// "#n" selects the n-th field. A decimal or 0x-hex number selects the field
// with that type tag. Anything else is matched against field names,
// ignoring case.
func ResolveField(b *teds.Block, segment string) (int, error) {
	segment = strings.TrimSpace(segment)
	if rest, ok := strings.CutPrefix(segment, "#"); ok {
		i, err := strconv.Atoi(rest)
		if err != nil {
			return -1, fmt.Errorf("%w: %q", ErrInvalidPath, segment)
		}
		if i < 0 || i >= b.Len() {
			return -1, fmt.Errorf("%w: %d of %d in %s", ErrIndexOutOfRange, i, b.Len(), b.Name())
		}
		return i, nil
	}
	if tag, err := parseTag(segment); err == nil {
		if i := b.IndexOf(tag); i >= 0 {
			return i, nil
		}
		return -1, fmt.Errorf("%w: type %d in %s", ErrFieldNotFound, tag, b.Name())
	}
	for i, f := range b.Fields() {
		if strings.EqualFold(f.Name(), segment) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q in %s", ErrFieldNotFound, segment, b.Name())
}

// FieldName returns the name of the field with tag in b, or "type_<tag>".
func FieldName(b *teds.Block, tag uint8) string {
	if f, ok := b.Lookup(tag); ok {
		return f.Name()
	}
	return "type_" + strconv.Itoa(int(tag))
}

// parseTag parses a uint8 from decimal or hex string.
func parseTag(s string) (uint8, error) {
	var v uint64
	var err error

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 8)
	} else {
		v, err = strconv.ParseUint(s, 10, 8)
	}
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}
