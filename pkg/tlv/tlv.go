// Package tlv implements the one-octet type, one-octet length record
// framing used by TEDS data blocks.
//
// Wire format of a record:
//
//	+------+--------+----------------+
//	| type | length | value[length]  |
//	+------+--------+----------------+
//	  u8      u8
package tlv

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// HeaderSize is the number of octets preceding a record's value.
const HeaderSize = 2

// MaxValueLen is the largest value a single record can carry.
const MaxValueLen = 0xFF

// Errors returned by the record codec.
var (
	// ErrLengthMismatch is returned when a declared length disagrees with
	// the number of value octets supplied.
	ErrLengthMismatch = errors.New("encoding length mismatch")

	// ErrTruncatedRecord is returned when a buffer ends before the record
	// header or its declared value is complete.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrValueTooLong is returned when a value exceeds MaxValueLen octets.
	ErrValueTooLong = errors.New("value too long for record")
)

// Record is a single decoded type/length/value triple.
type Record struct {
	Type   uint8
	Length uint8
	Value  []byte
}

// New builds a record whose length is derived from value.
func New(typ uint8, value []byte) (Record, error) {
	if len(value) > MaxValueLen {
		return Record{}, fmt.Errorf("%w: type %d carries %d octets", ErrValueTooLong, typ, len(value))
	}
	return Record{Type: typ, Length: uint8(len(value)), Value: value}, nil
}

// Size returns the encoded size of r in octets.
func (r Record) Size() int { return HeaderSize + len(r.Value) }

// Validate checks that the declared length matches the value.
func (r Record) Validate() error {
	if int(r.Length) != len(r.Value) {
		return fmt.Errorf("%w: type %d declares %d octets, value has %d",
			ErrLengthMismatch, r.Type, r.Length, len(r.Value))
	}
	return nil
}

// AppendTo appends the wire form of r to dst.
func (r Record) AppendTo(dst []byte) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return dst, err
	}
	dst = append(dst, r.Type, r.Length)
	return append(dst, r.Value...), nil
}

// Bytes returns the wire form of r.
func (r Record) Bytes() ([]byte, error) {
	return r.AppendTo(make([]byte, 0, r.Size()))
}

// String renders r for diagnostics, e.g. "type=3 len=4 00010101".
func (r Record) String() string {
	return fmt.Sprintf("type=%d len=%d %s", r.Type, r.Length, hex.EncodeToString(r.Value))
}

// Encode renders a record of the given type with a length derived from value.
func Encode(typ uint8, value []byte) ([]byte, error) {
	r, err := New(typ, value)
	if err != nil {
		return nil, err
	}
	return r.Bytes()
}

// EncodeDeclared renders a record with a caller-declared length and fails
// if it disagrees with the value rather than truncating or padding.
func EncodeDeclared(typ, length uint8, value []byte) ([]byte, error) {
	if len(value) > MaxValueLen {
		return nil, fmt.Errorf("%w: type %d carries %d octets", ErrValueTooLong, typ, len(value))
	}
	return Record{Type: typ, Length: length, Value: value}.Bytes()
}

// Decode reads one record starting at offset and returns it together with
// the offset of the following record. The returned value is a copy.
func Decode(buf []byte, offset int) (Record, int, error) {
	if offset < 0 || offset > len(buf) {
		return Record{}, offset, fmt.Errorf("%w: offset %d outside buffer of %d octets",
			ErrTruncatedRecord, offset, len(buf))
	}
	if len(buf)-offset < HeaderSize {
		return Record{}, offset, fmt.Errorf("%w: %d octets left at offset %d, need header",
			ErrTruncatedRecord, len(buf)-offset, offset)
	}
	typ := buf[offset]
	length := buf[offset+1]
	start := offset + HeaderSize
	end := start + int(length)
	if end > len(buf) {
		return Record{}, offset, fmt.Errorf("%w: type %d declares %d octets, %d remain",
			ErrTruncatedRecord, typ, length, len(buf)-start)
	}
	value := make([]byte, length)
	copy(value, buf[start:end])
	return Record{Type: typ, Length: length, Value: value}, end, nil
}

// DecodeAll reads records until buf is exhausted.
func DecodeAll(buf []byte) ([]Record, error) {
	var records []Record
	err := Walk(buf, func(r Record) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Walk calls fn for each record in buf in order. Walking stops at the
// first decode error or the first error returned by fn.
func Walk(buf []byte, fn func(Record) error) error {
	offset := 0
	for offset < len(buf) {
		r, next, err := Decode(buf, offset)
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
		offset = next
	}
	return nil
}

// EncodeAll concatenates the wire form of records.
func EncodeAll(records []Record) ([]byte, error) {
	size := 0
	for _, r := range records {
		size += r.Size()
	}
	out := make([]byte, 0, size)
	var err error
	for _, r := range records {
		if out, err = r.AppendTo(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
