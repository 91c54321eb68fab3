package inspect

import (
	"errors"
	"fmt"

	"github.com/ieee1451/teds-go/pkg/teds"
)

// Inspector errors.
var (
	ErrFieldNotFound   = errors.New("field not found")
	ErrIndexOutOfRange = errors.New("field index out of range")
	ErrNotNested       = errors.New("field is not a nested block")
	ErrNotWritable     = errors.New("field is not writable")
)

// Inspector provides inspection and mutation of one data block, addressing
// fields by index the way an editor lists them.
type Inspector struct {
	block *teds.Block
}

// NewInspector creates a new Inspector for the given block.
func NewInspector(block *teds.Block) *Inspector {
	return &Inspector{block: block}
}

// Block returns the underlying block.
func (i *Inspector) Block() *teds.Block {
	return i.block
}

// FieldInfo represents field information for display.
type FieldInfo struct {
	Index       int
	Tag         uint8
	Name        string
	Description string
	Type        string
	Length      uint8
	Domain      []string
	Optional    bool
	Included    bool
	ReadOnly    bool
	Nested      bool
	Populated   bool
	Value       string
}

// ListFields returns one entry per field in encoding order.
func (i *Inspector) ListFields() []FieldInfo {
	out := make([]FieldInfo, i.block.Len())
	for idx, f := range i.block.Fields() {
		out[idx] = fieldInfo(idx, f)
	}
	return out
}

// FieldInfo returns the entry for the field at index.
func (i *Inspector) FieldInfo(index int) (FieldInfo, error) {
	f, err := i.field(index)
	if err != nil {
		return FieldInfo{}, err
	}
	return fieldInfo(index, f), nil
}

func fieldInfo(index int, f *teds.Field) FieldInfo {
	info := FieldInfo{
		Index:       index,
		Tag:         f.Tag(),
		Name:        f.Name(),
		Description: f.Description(),
		Type:        f.Type().String(),
		Length:      f.Length(),
		Optional:    f.Optional(),
		Included:    f.Included(),
		ReadOnly:    f.ReadOnly(),
		Nested:      f.IsNested(),
		Populated:   f.Populated(),
		Value:       f.ValueString(),
	}
	if d := f.Domain(); d != nil {
		info.Domain = d.Names()
	}
	return info
}

func (i *Inspector) field(index int) (*teds.Field, error) {
	f := i.block.Field(index)
	if f == nil {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, i.block.Len())
	}
	return f, nil
}

// Get returns the display value of the field at index.
func (i *Inspector) Get(index int) (string, error) {
	f, err := i.field(index)
	if err != nil {
		return "", err
	}
	return f.ValueString(), nil
}

// Set parses text into the field at index. The identifier and other
// read-only fields are rejected with ErrNotWritable.
func (i *Inspector) Set(index int, text string) error {
	f, err := i.field(index)
	if err != nil {
		return err
	}
	if f.ReadOnly() {
		return fmt.Errorf("%w: %s", ErrNotWritable, f.Name())
	}
	return f.SetValueFromString(text)
}

// IsNested reports whether the field at index holds a nested block.
// Out-of-range indices report false.
func (i *Inspector) IsNested(index int) bool {
	f := i.block.Field(index)
	return f != nil && f.IsNested()
}

// Nested returns an Inspector over the nested block of the field at index.
func (i *Inspector) Nested(index int) (*Inspector, error) {
	f, err := i.field(index)
	if err != nil {
		return nil, err
	}
	if !f.IsNested() {
		return nil, fmt.Errorf("%w: %s", ErrNotNested, f.Name())
	}
	return NewInspector(f.Nested()), nil
}

// Resolve walks path and returns the block holding the final field and
// that field's index within it.
func (i *Inspector) Resolve(path *Path) (*teds.Block, int, error) {
	b := i.block
	for n, seg := range path.Segments {
		idx, err := ResolveField(b, seg)
		if err != nil {
			return nil, -1, err
		}
		if n == len(path.Segments)-1 {
			return b, idx, nil
		}
		f := b.Field(idx)
		if !f.IsNested() {
			return nil, -1, fmt.Errorf("%w: %s", ErrNotNested, f.Name())
		}
		b = f.Nested()
	}
	return nil, -1, ErrEmptyPath
}

// Lookup resolves path to its field.
func (i *Inspector) Lookup(path *Path) (*teds.Field, error) {
	b, idx, err := i.Resolve(path)
	if err != nil {
		return nil, err
	}
	return b.Field(idx), nil
}

// ReadPath returns the display value of the field at path.
func (i *Inspector) ReadPath(path *Path) (string, error) {
	f, err := i.Lookup(path)
	if err != nil {
		return "", err
	}
	return f.ValueString(), nil
}

// WritePath parses text into the field at path.
func (i *Inspector) WritePath(path *Path, text string) error {
	b, idx, err := i.Resolve(path)
	if err != nil {
		return err
	}
	return NewInspector(b).Set(idx, text)
}

// Include sets the inclusion flag of the optional field at path.
func (i *Inspector) Include(path *Path, included bool) error {
	f, err := i.Lookup(path)
	if err != nil {
		return err
	}
	if !f.Optional() {
		if included {
			return nil
		}
		return fmt.Errorf("%w: %s is mandatory", ErrNotWritable, f.Name())
	}
	f.SetIncluded(included)
	return nil
}
