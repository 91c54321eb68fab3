package teds

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUnitEnum = &Enumeration{
	Name: "UnitType",
	Members: []EnumMember{
		{Value: 0, Name: "PUI_SI_UNITS"},
		{Value: 1, Name: "PUI_RATIO_SI_UNITS"},
		{Value: 5, Name: "PUI_ARBITRARY"},
	},
}

func mustField(t *testing.T, spec FieldSpec) *Field {
	t.Helper()
	f, err := NewField(spec)
	require.NoError(t, err)
	return f
}

func TestNewFieldRejectsBadLength(t *testing.T) {
	_, err := NewField(FieldSpec{Tag: 10, Name: "Odd", Type: TypeFloat32, Length: 6})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, uint8(10), fe.Tag)
	assert.Equal(t, "Odd", fe.Name)
}

func TestNewFieldRejectsUnknownType(t *testing.T) {
	_, err := NewField(FieldSpec{Tag: 10, Name: "X", Type: FieldType{Kind: Kind(99)}})
	assert.ErrorIs(t, err, ErrUnknownFieldType)

	_, err = NewField(FieldSpec{Tag: 10, Name: "X", Type: BlockOf("")})
	assert.ErrorIs(t, err, ErrUnknownFieldType)
}

func TestNewFieldDefaults(t *testing.T) {
	f := mustField(t, FieldSpec{Tag: 10, Name: "OholdOff", Type: TypeFloat32, Length: 4})
	assert.Equal(t, float32(0), f.Value())
	assert.False(t, f.Populated())

	d := mustField(t, FieldSpec{Tag: 12, Name: "Radians", Type: TypeUint8, Length: 1, Default: 128})
	assert.Equal(t, uint8(128), d.Value())

	e := mustField(t, FieldSpec{
		Tag: 20, Name: "GrpType", Type: TypeUint8, Length: 1,
		Domain: &Enumeration{Name: "G", Members: []EnumMember{{Value: 2, Name: "B"}, {Value: 3, Name: "C"}}},
	})
	assert.Equal(t, uint8(2), e.Value())

	_, err := NewField(FieldSpec{Tag: 20, Name: "Bad", Type: TypeUint8, Length: 1, Default: 300})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestSetValueScalar(t *testing.T) {
	f := mustField(t, FieldSpec{Tag: 13, Name: "MaxChan", Type: TypeUint16, Length: 2})

	require.NoError(t, f.SetValue(4))
	assert.Equal(t, uint16(4), f.Value())
	assert.True(t, f.Populated())

	b, err := f.ValueBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x04}, b)

	err = f.SetValue(-1)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, uint16(4), f.Value())

	err = f.SetValue([]int{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, uint16(4), f.Value())
}

func TestDomainEnforcement(t *testing.T) {
	f := mustField(t, FieldSpec{Tag: 50, Name: "UnitType", Type: TypeUint8, Length: 1, Domain: testUnitEnum})
	require.NoError(t, f.SetValue(1))

	for _, bad := range []any{2, 3, 4, 200} {
		err := f.SetValue(bad)
		assert.ErrorIs(t, err, ErrDomainViolation, "value %v", bad)
		assert.Equal(t, uint8(1), f.Value(), "value %v", bad)
	}

	err := f.SetValueFromBytes([]byte{0x04})
	assert.ErrorIs(t, err, ErrDomainViolation)
	assert.Equal(t, uint8(1), f.Value())

	err = f.SetValueFromString("7")
	assert.ErrorIs(t, err, ErrDomainViolation)
	assert.Equal(t, uint8(1), f.Value())
}

func TestEnumNames(t *testing.T) {
	f := mustField(t, FieldSpec{Tag: 50, Name: "UnitType", Type: TypeUint8, Length: 1, Domain: testUnitEnum})

	require.NoError(t, f.SetValueFromString("pui_arbitrary"))
	assert.Equal(t, uint8(5), f.Value())
	assert.Equal(t, "PUI_ARBITRARY", f.ValueString())

	require.NoError(t, f.SetValueFromString(f.ValueString()))
	assert.Equal(t, uint8(5), f.Value())

	assert.Equal(t, "PUI_RATIO_SI_UNITS (1)", testUnitEnum.Label(1))
	assert.Equal(t, "9", testUnitEnum.Label(9))
	assert.Equal(t, []string{"PUI_SI_UNITS", "PUI_RATIO_SI_UNITS", "PUI_ARBITRARY"}, testUnitEnum.Names())
}

func TestArrayLengthDerivation(t *testing.T) {
	f := mustField(t, FieldSpec{Tag: 38, Name: "DAngles", Type: TypeFloat32, Length: 8})
	assert.True(t, f.IsArray())
	assert.Equal(t, 2, f.Count())

	require.NoError(t, f.SetValue([]float32{0.5, 1.5}))
	assert.Equal(t, []float32{0.5, 1.5}, f.Value())

	err := f.SetValue([]float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, []float32{0.5, 1.5}, f.Value())

	err = f.SetValueFromString("[1, 2, 3]")
	assert.ErrorIs(t, err, ErrLengthMismatch)

	require.NoError(t, f.SetValueFromString("[2.5, 3]"))
	assert.Equal(t, "[2.5, 3]", f.ValueString())

	r, err := f.Encode()
	require.NoError(t, err)
	assert.Equal(t, uint8(8), r.Length)
	assert.Len(t, r.Value, 8)
}

func TestVariableLengthArray(t *testing.T) {
	f := mustField(t, FieldSpec{Tag: 21, Name: "MemList", Type: TypeUint16})
	assert.True(t, f.IsArray())
	assert.Equal(t, 0, f.Count())

	r, err := f.Encode()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), r.Length)

	require.NoError(t, f.SetValue([]uint16{1, 2, 3}))
	r, err = f.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 0, 2, 0, 3}, r.Value)

	require.NoError(t, f.SetValueFromBytes([]byte{0, 9}))
	assert.Equal(t, []uint16{9}, f.Value())

	err = f.SetValueFromBytes([]byte{0, 9, 1})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	err = f.SetValue(make([]uint16, 128))
	assert.ErrorIs(t, err, ErrValueTooLong)
}

func TestBytesField(t *testing.T) {
	f := mustField(t, FieldSpec{Tag: 4, Name: "UUID", Type: TypeBytes, Length: 10})
	assert.Equal(t, make([]byte, 10), f.Value())

	id := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	require.NoError(t, f.SetValue(id))
	id[0] = 0xFF
	assert.Equal(t, byte(1), f.Value().([]byte)[0])
	assert.Equal(t, "0102030405060708090a", f.ValueString())

	require.NoError(t, f.SetValueFromString("0x0a:0b:0c:0d:0e:0f:10:11:12:13"))
	assert.Equal(t, "0a0b0c0d0e0f10111213", f.ValueString())

	err := f.SetValue([]byte{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	err = f.SetValueFromString("zz")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	err = f.SetValue(3.5)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestReadOnlyField(t *testing.T) {
	f := NewIdentifier(MetaTEDS)
	assert.True(t, f.ReadOnly())
	assert.True(t, f.IsIdentifier())
	assert.Equal(t, []uint8{0, 1, 1, 1}, f.Value())

	assert.ErrorIs(t, f.SetValue([]uint8{0, 2, 1, 1}), ErrReadOnly)
	assert.ErrorIs(t, f.SetValueFromBytes([]byte{0, 2, 1, 1}), ErrReadOnly)
	assert.ErrorIs(t, f.SetValueFromString("[0, 2, 1, 1]"), ErrReadOnly)
	assert.Equal(t, []uint8{0, 1, 1, 1}, f.Value())
}

func TestIncludedFlag(t *testing.T) {
	mandatory := mustField(t, FieldSpec{Tag: 10, Name: "A", Type: TypeUint8, Length: 1})
	mandatory.SetIncluded(false)
	assert.True(t, mandatory.Included())

	opt := mustField(t, FieldSpec{Tag: 11, Name: "B", Type: TypeUint8, Length: 1, Optional: true})
	assert.False(t, opt.Included())
	require.NoError(t, opt.SetValue(3))
	assert.False(t, opt.Included(), "assignment does not include")
	opt.SetIncluded(true)
	assert.True(t, opt.Included())
}

func TestFieldClone(t *testing.T) {
	f := mustField(t, FieldSpec{Tag: 21, Name: "MemList", Type: TypeUint16})
	require.NoError(t, f.SetValue([]int{1, 2}))

	c := f.Clone()
	require.NoError(t, c.SetValue([]int{3}))
	assert.Equal(t, []uint16{1, 2}, f.Value())
	assert.Equal(t, []uint16{3}, c.Value())
}

func TestParseFieldType(t *testing.T) {
	ft, err := ParseFieldType("float32", "")
	require.NoError(t, err)
	assert.Equal(t, TypeFloat32, ft)

	ft, err = ParseFieldType("block", "units")
	require.NoError(t, err)
	assert.Equal(t, BlockOf("units"), ft)
	assert.Equal(t, "Block(units)", ft.String())

	_, err = ParseFieldType("block", "")
	assert.ErrorIs(t, err, ErrUnknownFieldType)

	_, err = ParseFieldType("string", "")
	assert.ErrorIs(t, err, ErrUnknownFieldType)
}

func TestAccessCodes(t *testing.T) {
	assert.Equal(t, "MetaTEDS", MetaTEDS.String())
	assert.Equal(t, "UnitsExtension", UnitsExtension.String())
	assert.False(t, AccessCode(0).Valid())
	assert.False(t, AccessCode(16).Valid())

	c, err := ParseAccessCode("chanteds")
	require.NoError(t, err)
	assert.Equal(t, ChanTEDS, c)
}
