// Package snapshot renders data blocks as structured documents for export
// to JSON, YAML or CBOR.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/ieee1451/teds-go/pkg/teds"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format selects the snapshot encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CBOR Format = "cbor"
)

// ParseFormat resolves a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case JSON, YAML, CBOR:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Block is the snapshot of one data block.
type Block struct {
	Schema string  `json:"schema" yaml:"schema" cbor:"1,keyasint"`
	Name   string  `json:"name" yaml:"name" cbor:"2,keyasint"`
	Class  string  `json:"class,omitempty" yaml:"class,omitempty" cbor:"3,keyasint,omitempty"`
	State  string  `json:"state" yaml:"state" cbor:"4,keyasint"`
	Fields []Field `json:"fields" yaml:"fields" cbor:"5,keyasint"`
}

// Field is the snapshot of one field. Exactly one of Value and Block is set.
type Field struct {
	Tag      uint8  `json:"tag" yaml:"tag" cbor:"1,keyasint"`
	Name     string `json:"name" yaml:"name" cbor:"2,keyasint"`
	Type     string `json:"type" yaml:"type" cbor:"3,keyasint"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty" cbor:"4,keyasint,omitempty"`
	Included bool   `json:"included" yaml:"included" cbor:"5,keyasint"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty" cbor:"6,keyasint,omitempty"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty" cbor:"7,keyasint,omitempty"`
	Block    *Block `json:"block,omitempty" yaml:"block,omitempty" cbor:"8,keyasint,omitempty"`
}

// Take captures b. Excluded optional fields are listed with Included false
// so the snapshot shows the whole schema.
func Take(b *teds.Block) *Block {
	s := &Block{
		Schema: b.Schema(),
		Name:   b.Name(),
		State:  b.State().String(),
		Fields: make([]Field, 0, b.Len()),
	}
	if b.Class() != 0 {
		s.Class = b.Class().String()
	}
	for _, f := range b.Fields() {
		sf := Field{
			Tag:      f.Tag(),
			Name:     f.Name(),
			Type:     f.Type().String(),
			Optional: f.Optional(),
			Included: f.Included(),
		}
		switch {
		case f.IsNested():
			sf.Block = Take(f.Nested())
		case f.Type().Kind == teds.KindBytes:
			sf.Text = f.ValueString()
		default:
			sf.Value = f.Value()
			if f.Domain() != nil {
				sf.Text = f.ValueString()
			}
		}
		s.Fields = append(s.Fields, sf)
	}
	return s
}

// Marshal encodes the snapshot of b in format.
func Marshal(b *teds.Block, format Format) ([]byte, error) {
	s := Take(b)
	switch format {
	case JSON:
		return json.MarshalIndent(s, "", "  ")
	case YAML:
		return yaml.Marshal(s)
	case CBOR:
		return encMode.Marshal(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}
}
