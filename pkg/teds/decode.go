package teds

import (
	"fmt"
	"strings"

	"github.com/ieee1451/teds-go/pkg/tlv"
)

// DecodePolicy selects how a decode treats records whose type tag matches
// no field of the target block.
type DecodePolicy uint8

const (
	// DecodeStrict aborts with ErrUnknownFieldType at the first unmatched
	// record. Fields decoded before the failure keep their new values.
	DecodeStrict DecodePolicy = iota

	// DecodeSkipUnknown skips unmatched records and lists them in the
	// DecodeReport. Malformed records still abort.
	DecodeSkipUnknown
)

// String returns the policy name used in configuration.
func (p DecodePolicy) String() string {
	switch p {
	case DecodeStrict:
		return "strict"
	case DecodeSkipUnknown:
		return "skip"
	default:
		return fmt.Sprintf("DecodePolicy(%d)", uint8(p))
	}
}

// ParseDecodePolicy resolves "strict" or "skip".
func ParseDecodePolicy(name string) (DecodePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		return DecodeStrict, nil
	case "skip", "skip-unknown":
		return DecodeSkipUnknown, nil
	default:
		return 0, fmt.Errorf("unknown decode policy %q", name)
	}
}

// UnknownRecord is a record skipped under DecodeSkipUnknown.
type UnknownRecord struct {
	// Path names the block holding the record, e.g. "ChannelTEDS/PhyUnits".
	Path   string
	Record tlv.Record
}

// DecodeReport summarizes one decode.
type DecodeReport struct {
	// Decoded counts records assigned to fields, nested records included.
	Decoded int
	Unknown []UnknownRecord
}

// Clean reports whether every record matched a field.
func (r DecodeReport) Clean() bool { return len(r.Unknown) == 0 }

func (r *DecodeReport) merge(o DecodeReport) {
	r.Decoded += o.Decoded
	r.Unknown = append(r.Unknown, o.Unknown...)
}
