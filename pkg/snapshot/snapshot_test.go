package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ieee1451/teds-go/pkg/records"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": JSON, "YAML": YAML, "yml": YAML, " cbor ": CBOR} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestTake(t *testing.T) {
	ch := records.NewChannelTEDS()
	ct, _ := ch.Lookup(records.TagChannelChanType)
	require.NoError(t, ct.SetValueFromString("ACTUATOR"))

	s := Take(ch)
	assert.Equal(t, "channel", s.Schema)
	assert.Equal(t, "ChanTEDS", s.Class)
	assert.Equal(t, "PARTIALLY_POPULATED", s.State)
	require.Len(t, s.Fields, ch.Len())

	byTag := map[uint8]Field{}
	for _, f := range s.Fields {
		byTag[f.Tag] = f
	}
	assert.Equal(t, uint8(1), byTag[records.TagChannelChanType].Value)
	assert.Equal(t, "ACTUATOR", byTag[records.TagChannelChanType].Text)

	units := byTag[records.TagChannelPhyUnits]
	require.NotNil(t, units.Block)
	assert.Nil(t, units.Value)
	assert.Equal(t, "units", units.Block.Schema)

	da := byTag[records.TagChannelDAngles]
	assert.True(t, da.Optional)
	assert.False(t, da.Included)
	assert.Equal(t, []float32{0, 0}, da.Value)
}

func TestMarshalFormats(t *testing.T) {
	meta := records.NewMetaTEDS()
	mc, _ := meta.Lookup(records.TagMetaMaxChan)
	require.NoError(t, mc.SetValue(4))

	data, err := Marshal(meta, JSON)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "meta", doc["schema"])
	assert.Equal(t, "MetaTEDS", doc["class"])

	data, err = Marshal(meta, YAML)
	require.NoError(t, err)
	var ydoc Block
	require.NoError(t, yaml.Unmarshal(data, &ydoc))
	assert.Equal(t, "MetaTEDS", ydoc.Name)
	assert.Len(t, ydoc.Fields, meta.Len())

	data, err = Marshal(meta, CBOR)
	require.NoError(t, err)
	var cdoc Block
	require.NoError(t, cbor.Unmarshal(data, &cdoc))
	assert.Equal(t, "meta", cdoc.Schema)
	assert.Equal(t, "UUID", cdoc.Fields[1].Name)
	assert.Equal(t, "00000000000000000000", cdoc.Fields[1].Text)

	_, err = Marshal(meta, Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
