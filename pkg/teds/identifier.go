package teds

import "fmt"

// Identifier structure layout.
const (
	// TagIdentifier is the type tag of the identifier structure.
	TagIdentifier uint8 = 3

	// IdentifierLength is the value length of the identifier structure.
	IdentifierLength = 4

	// IdentifierFamily is the only family defined by IEEE 1451.0.
	IdentifierFamily uint8 = 0x00

	// IdentifierVersion is the TEDS version written by this package.
	IdentifierVersion uint8 = 0x01

	// IdentifierTuple is the default tuple length.
	IdentifierTuple uint8 = 0x01
)

// NewIdentifier returns the read-only identifier field for class.
func NewIdentifier(class AccessCode) *Field {
	f, err := NewField(FieldSpec{
		Tag:         TagIdentifier,
		Name:        "TEDSID",
		Description: "TEDS Identification Header",
		Type:        TypeUint8,
		Length:      IdentifierLength,
		ReadOnly:    true,
		Default:     []uint8{IdentifierFamily, uint8(class), IdentifierVersion, IdentifierTuple},
	})
	if err != nil {
		panic(fmt.Sprintf("teds: building identifier: %v", err))
	}
	f.ident = true
	f.populated = true
	return f
}

// checkIdentifier validates a decoded identifier value against class.
func checkIdentifier(v []byte, class AccessCode) error {
	if len(v) != IdentifierLength {
		return fmt.Errorf("%w: %d octets, want %d", ErrIdentifierMismatch, len(v), IdentifierLength)
	}
	if v[0] != IdentifierFamily {
		return fmt.Errorf("%w: family %d, want %d", ErrIdentifierMismatch, v[0], IdentifierFamily)
	}
	if AccessCode(v[1]) != class {
		return fmt.Errorf("%w: class %s, want %s", ErrIdentifierMismatch, AccessCode(v[1]), class)
	}
	if v[2] != IdentifierVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrIdentifierMismatch, v[2], IdentifierVersion)
	}
	return nil
}

// ReadIdentifier extracts the access code and version from the first
// record of an unframed payload without decoding the rest.
func ReadIdentifier(payload []byte) (class AccessCode, version uint8, err error) {
	if len(payload) < 2+IdentifierLength {
		return 0, 0, fmt.Errorf("%w: payload of %d octets", ErrTruncatedRecord, len(payload))
	}
	if payload[0] != TagIdentifier || payload[1] != IdentifierLength {
		return 0, 0, fmt.Errorf("%w: leading record type %d length %d",
			ErrIdentifierMismatch, payload[0], payload[1])
	}
	v := payload[2 : 2+IdentifierLength]
	if v[0] != IdentifierFamily {
		return 0, 0, fmt.Errorf("%w: family %d", ErrIdentifierMismatch, v[0])
	}
	return AccessCode(v[1]), v[2], nil
}
