package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableData(t *testing.T) {
	table := NewTableData("Tag", "Name", "Value")
	assert.Equal(t, []string{"Tag", "Name", "Value"}, table.Headers())
	assert.Empty(t, table.Rows())

	table.AddRow("13", "MaxChan", "1")
	table.AddRow("10", "OholdOff", "0")
	require.Len(t, table.Rows(), 2)
	assert.Equal(t, []string{"10", "OholdOff", "0"}, table.Rows()[1])
}

func TestPrintTable(t *testing.T) {
	table := NewTableData("Tag", "Name")
	table.AddRow("4", "UUID")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, table))
	out := buf.String()
	assert.Contains(t, out, "TAG")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "UUID")
}

func TestSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, [][2]string{{"Schema", "meta"}, {"State", "UNPOPULATED"}}))
	out := buf.String()
	assert.Contains(t, out, "Schema")
	assert.Contains(t, out, "UNPOPULATED")
}
