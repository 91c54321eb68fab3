package inspect

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ieee1451/teds-go/pkg/teds"
	"github.com/ieee1451/teds-go/pkg/tlv"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes type, length and flags
	ShowMetadata bool

	// ShowTags includes the type tag alongside names
	ShowTags bool

	// ShowExcluded lists optional fields that are not included
	ShowExcluded bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowTags:     true,
		ShowExcluded: true,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatFlags renders the optional/included/read-only flags of a field.
func FormatFlags(info FieldInfo) string {
	var flags []string
	if info.ReadOnly {
		flags = append(flags, "read-only")
	}
	if info.Optional {
		if info.Included {
			flags = append(flags, "included")
		} else {
			flags = append(flags, "excluded")
		}
	}
	return strings.Join(flags, ",")
}

// FormatType renders a field type with its declared length.
func FormatType(info FieldInfo) string {
	if info.Nested || info.Length == 0 {
		return info.Type
	}
	return fmt.Sprintf("%s[%d]", info.Type, info.Length)
}

// FormatField renders one field as "[tag] Name = value (meta)".
func (f *Formatter) FormatField(info FieldInfo) string {
	var sb strings.Builder
	if f.ShowTags {
		fmt.Fprintf(&sb, "[%d] ", info.Tag)
	}
	fmt.Fprintf(&sb, "%s = %s", info.Name, info.Value)
	if f.ShowMetadata {
		meta := FormatType(info)
		if flags := FormatFlags(info); flags != "" {
			meta += ", " + flags
		}
		fmt.Fprintf(&sb, " (%s)", meta)
	}
	return sb.String()
}

// FormatFieldTable formats a list of fields, one per line.
func (f *Formatter) FormatFieldTable(rows []FieldInfo) string {
	if len(rows) == 0 {
		return "  (no fields)"
	}

	var sb strings.Builder
	for _, row := range rows {
		if !f.ShowExcluded && !row.Included {
			continue
		}
		sb.WriteString(f.Indent(1, fmt.Sprintf("%d: ", row.Index)+f.FormatField(row)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatTree renders b and its nested blocks as an indented tree.
func (f *Formatter) FormatTree(b *teds.Block) string {
	var sb strings.Builder
	header := b.Name()
	if b.Class() != 0 {
		header += fmt.Sprintf(" (%s)", b.Class())
	}
	sb.WriteString(header + " [" + b.State().String() + "]\n")
	f.formatBlock(&sb, b, 1)
	return sb.String()
}

func (f *Formatter) formatBlock(sb *strings.Builder, b *teds.Block, depth int) {
	for idx, field := range b.Fields() {
		info := fieldInfo(idx, field)
		if !f.ShowExcluded && !info.Included {
			continue
		}
		sb.WriteString(f.Indent(depth, f.FormatField(info)))
		sb.WriteString("\n")
		if field.IsNested() && info.Included {
			f.formatBlock(sb, field.Nested(), depth+1)
		}
	}
}

// FormatDump renders the records of an unframed payload with their offsets.
// When b is non-nil, records are named after b's fields and nested values
// are expanded.
func (f *Formatter) FormatDump(payload []byte, b *teds.Block) (string, error) {
	var sb strings.Builder
	err := f.dump(&sb, payload, b, 0, 0)
	return sb.String(), err
}

func (f *Formatter) dump(sb *strings.Builder, buf []byte, b *teds.Block, base, depth int) error {
	offset := 0
	for offset < len(buf) {
		r, next, err := tlv.Decode(buf, offset)
		if err != nil {
			return fmt.Errorf("offset %d: %w", base+offset, err)
		}
		name := fmt.Sprintf("type_%d", r.Type)
		var nested *teds.Block
		if b != nil {
			name = FieldName(b, r.Type)
			if field, ok := b.Lookup(r.Type); ok && field.IsNested() {
				nested = field.Nested()
			}
		}
		line := fmt.Sprintf("%04x  %02x %02x  %-10s", base+offset, r.Type, r.Length, name)
		if nested == nil {
			line += " " + hex.EncodeToString(r.Value)
		}
		sb.WriteString(f.Indent(depth, line))
		sb.WriteString("\n")
		if nested != nil {
			if err := f.dump(sb, r.Value, nested, base+offset+tlv.HeaderSize, depth+1); err != nil {
				return err
			}
		}
		offset = next
	}
	return nil
}
