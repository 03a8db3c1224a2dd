package xltable

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xltable-go/pkg/xltable/parser"
	"github.com/ukaji3/xltable-go/pkg/xltable/table"
)

var inventoryXLS = filepath.Join("testdata", "inventory.xls")

func TestExtractXLS(t *testing.T) {
	opts := ExtractOptions{Anchor: Equal("Item"), SkipFoot: 1}

	tbl, err := Extract(context.Background(), FromPath(inventoryXLS), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "Qty"}, tbl.Names())
	assert.Equal(t, []any{"Pen", "Ink 墨"}, column(t, tbl, "Item"))
	assert.Equal(t, []any{"3", "12.5"}, column(t, tbl, "Qty"))

	opts.InferTypes = true
	opts.Sheet = SheetName("Data")
	tbl, err = Extract(context.Background(), FromPath(inventoryXLS), opts)
	require.NoError(t, err)
	assert.Equal(t, []table.Type{table.Text, table.Decimal}, tbl.Types())
}

func TestExtractXLSFromReader(t *testing.T) {
	data, err := os.ReadFile(inventoryXLS)
	require.NoError(t, err)
	assert.Equal(t, parser.FormatXLS, sniffFormat(data))

	tbl, err := Extract(context.Background(), FromReader(bytes.NewReader(data)), ExtractOptions{Anchor: Equal("Item")})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []any{"Pen", "Ink 墨", "Total"}, column(t, tbl, "Item"))
}

func TestSniffFormatXLSX(t *testing.T) {
	var buf bytes.Buffer
	_, err := ExportWriter(context.Background(), &buf, sampleTable(t), ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, parser.FormatXLSX, sniffFormat(buf.Bytes()))
}

func TestInspectXLS(t *testing.T) {
	info, err := Inspect(context.Background(), FromPath(inventoryXLS))
	require.NoError(t, err)
	assert.Equal(t, "inventory.xls", info.BookName)
	assert.Equal(t, "xls", info.Format)
	require.Len(t, info.Sheets, 1)
	assert.Equal(t, "Data", info.Sheets[0].Name)
	assert.Equal(t, 6, info.Sheets[0].Rows)
	assert.Equal(t, []string{"A1:C6"}, info.Sheets[0].TableCandidates)
	assert.Empty(t, info.Sheets[0].PrintAreas)
}

func TestExtractXLSMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xls")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x42}, 2048), 0o644))

	_, err := Extract(context.Background(), FromPath(path), ExtractOptions{})
	assert.ErrorIs(t, err, ErrOpen)
	assert.ErrorIs(t, err, ErrIO)
}
