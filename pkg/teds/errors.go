package teds

import (
	"errors"
	"fmt"

	"github.com/ieee1451/teds-go/pkg/codec"
	"github.com/ieee1451/teds-go/pkg/tlv"
)

// Errors returned by field and block operations. Codec and record errors
// are re-exported so callers can match every failure against this package.
var (
	ErrTypeMismatch           = codec.ErrTypeMismatch
	ErrLengthMismatch         = codec.ErrLengthMismatch
	ErrEncodingLengthMismatch = tlv.ErrLengthMismatch
	ErrTruncatedRecord        = tlv.ErrTruncatedRecord
	ErrValueTooLong           = tlv.ErrValueTooLong

	ErrDomainViolation    = errors.New("value outside enumerated domain")
	ErrUnknownFieldType   = errors.New("unknown field type")
	ErrIdentifierMismatch = errors.New("identifier mismatch")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrFrameLength        = errors.New("frame length mismatch")
	ErrReadOnly           = errors.New("field is read-only")
	ErrDuplicateTag       = errors.New("duplicate field type tag")
	ErrSchemaMismatch     = errors.New("nested block schema mismatch")
)

// FieldError attributes a failure to one field of a block.
type FieldError struct {
	Tag  uint8
	Name string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s (type %d): %v", e.Name, e.Tag, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func (f *Field) wrap(err error) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if errors.As(err, &fe) && fe.Tag == f.tag && fe.Name == f.name {
		return err
	}
	return &FieldError{Tag: f.tag, Name: f.name, Err: err}
}
