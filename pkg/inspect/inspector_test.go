package inspect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieee1451/teds-go/pkg/records"
	"github.com/ieee1451/teds-go/pkg/teds"
)

func mustPath(t *testing.T, s string) *Path {
	t.Helper()
	p, err := ParsePath(s)
	require.NoError(t, err)
	return p
}

func TestListFields(t *testing.T) {
	insp := NewInspector(records.NewMetaTEDS())
	fields := insp.ListFields()
	require.Len(t, fields, insp.Block().Len())

	id := fields[0]
	assert.Equal(t, teds.TagIdentifier, id.Tag)
	assert.True(t, id.ReadOnly)
	assert.True(t, id.Included)
	assert.Equal(t, "[0, 1, 1, 1]", id.Value)

	sh := fields[insp.Block().IndexOf(records.TagMetaSHoldOff)]
	assert.Equal(t, "SHoldOff", sh.Name)
	assert.True(t, sh.Optional)
	assert.False(t, sh.Included)
	assert.Equal(t, "Float32", sh.Type)

	cg := fields[insp.Block().IndexOf(records.TagMetaCGroup)]
	assert.True(t, cg.Nested)
}

func TestFieldInfoDomain(t *testing.T) {
	insp := NewInspector(records.NewChannelTEDS())
	idx := insp.Block().IndexOf(records.TagChannelChanType)
	info, err := insp.FieldInfo(idx)
	require.NoError(t, err)
	assert.Contains(t, info.Domain, "SENSOR")
	assert.Contains(t, info.Domain, "ACTUATOR")

	_, err = insp.FieldInfo(999)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestGetSetByIndex(t *testing.T) {
	insp := NewInspector(records.NewMetaTEDS())
	idx := insp.Block().IndexOf(records.TagMetaMaxChan)

	require.NoError(t, insp.Set(idx, "4"))
	got, err := insp.Get(idx)
	require.NoError(t, err)
	assert.Equal(t, "4", got)

	err = insp.Set(idx, "70000")
	assert.ErrorIs(t, err, teds.ErrTypeMismatch)
	got, _ = insp.Get(idx)
	assert.Equal(t, "4", got, "failed set must keep the previous value")

	err = insp.Set(0, "[0, 3, 1, 1]")
	assert.ErrorIs(t, err, ErrNotWritable)

	_, err = insp.Get(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSetEnumByName(t *testing.T) {
	insp := NewInspector(records.NewChannelTEDS())
	idx := insp.Block().IndexOf(records.TagChannelChanType)
	require.NoError(t, insp.Set(idx, "actuator"))
	got, _ := insp.Get(idx)
	assert.Equal(t, "ACTUATOR", got)

	err := insp.Set(idx, "7")
	assert.ErrorIs(t, err, teds.ErrDomainViolation)
}

func TestNestedByIndex(t *testing.T) {
	insp := NewInspector(records.NewChannelTEDS())
	idx := insp.Block().IndexOf(records.TagChannelPhyUnits)
	assert.True(t, insp.IsNested(idx))
	assert.False(t, insp.IsNested(0))
	assert.False(t, insp.IsNested(500))

	units, err := insp.Nested(idx)
	require.NoError(t, err)
	assert.Equal(t, records.SchemaUnits, units.Block().Schema())

	m := units.Block().IndexOf(records.TagUnitsMeters)
	require.NoError(t, units.Set(m, "130"))

	// The handle edits the channel's own sub-block.
	f, _ := insp.Block().Lookup(records.TagChannelPhyUnits)
	meters, _ := f.Nested().Lookup(records.TagUnitsMeters)
	assert.Equal(t, uint8(130), meters.Value())

	_, err = insp.Nested(0)
	assert.ErrorIs(t, err, ErrNotNested)
}

func TestPathAccess(t *testing.T) {
	insp := NewInspector(records.NewChannelTEDS())

	require.NoError(t, insp.WritePath(mustPath(t, "DataSet/SUnits/Seconds"), "126"))
	got, err := insp.ReadPath(mustPath(t, "19/46/55"))
	require.NoError(t, err)
	assert.Equal(t, "126", got)

	got, err = insp.ReadPath(mustPath(t, "phyunits/#0"))
	require.NoError(t, err)
	assert.Equal(t, "PUI_SI_UNITS", got)

	_, err = insp.ReadPath(mustPath(t, "LowRange/Meters"))
	assert.ErrorIs(t, err, ErrNotNested)

	_, err = insp.ReadPath(mustPath(t, "NoSuchField"))
	assert.ErrorIs(t, err, ErrFieldNotFound)

	_, err = insp.ReadPath(mustPath(t, "99"))
	assert.ErrorIs(t, err, ErrFieldNotFound)

	_, err = insp.ReadPath(mustPath(t, "#x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestInclude(t *testing.T) {
	insp := NewInspector(records.NewChannelTEDS())
	p := mustPath(t, "DAngles")

	require.NoError(t, insp.Include(p, true))
	f, err := insp.Lookup(p)
	require.NoError(t, err)
	assert.True(t, f.Included())

	require.NoError(t, insp.Include(p, false))
	assert.False(t, f.Included())

	require.NoError(t, insp.Include(mustPath(t, "LowRange"), true))
	err = insp.Include(mustPath(t, "LowRange"), false)
	assert.True(t, errors.Is(err, ErrNotWritable))
}
