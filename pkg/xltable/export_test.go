package xltable

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xltable-go/pkg/xltable/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		[]string{"Name", "Age"},
		[]table.Type{table.Text, table.Text},
		[][]any{{"Ann", "30"}, {"Bob", "40"}},
	)
	require.NoError(t, err)
	return tbl
}

func TestExportRoundTrip(t *testing.T) {
	src := writeBook(t, fixture{"Raw", [][]interface{}{
		{"Quarterly report"},
		{},
		{nil, "Item  Name", "Qty", "Unit price"},
		{nil, "Pen", 3, 1.25},
		{nil, "Ink", 12, 0.5},
		{nil, "Paper", 500, 0.01},
		{nil, "Total", nil, nil},
	}})
	opts := ExtractOptions{Anchor: Equal("Item  Name"), SkipFoot: 1, Columns: Match("Item|Qty")}

	first, err := Extract(context.Background(), FromPath(src), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Item Name", "Qty"}, first.Names())
	assert.Equal(t, 3, first.Len())

	dest := filepath.Join(t.TempDir(), "out.xlsx")
	got, err := Export(context.Background(), dest, first, ExportOptions{SheetName: "Clean"})
	require.NoError(t, err)
	assert.Same(t, first, got)

	second, err := Extract(context.Background(), FromPath(dest), ExtractOptions{Sheet: SheetName("Clean")})
	require.NoError(t, err)
	assert.Equal(t, first.Names(), second.Names())
	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, column(t, first, "Qty"), column(t, second, "Qty"))
}

func TestExportConflictPolicies(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.xlsx")
	tbl := sampleTable(t)
	_, err := Export(context.Background(), dest, tbl, DefaultExportOptions())
	require.NoError(t, err)
	before, err := os.ReadFile(dest)
	require.NoError(t, err)

	_, err = Export(context.Background(), dest, tbl, ExportOptions{IfExists: Assert})
	require.ErrorIs(t, err, ErrSheetExists)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), DefaultSheetName)

	got, err := Export(context.Background(), dest, tbl, ExportOptions{IfExists: Skip})
	require.NoError(t, err)
	assert.Same(t, tbl, got)

	after, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(before, after), "document changed")

	_, err = Export(context.Background(), dest, tbl, ExportOptions{IfExists: "merge"})
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	assert.ErrorIs(t, err, ErrUsage)

	// Overwrite keeps a single sheet with the new content.
	smaller, err := table.New([]string{"X"}, []table.Type{table.Text}, [][]any{{"only"}})
	require.NoError(t, err)
	_, err = Export(context.Background(), dest, smaller, ExportOptions{IfExists: Overwrite})
	require.NoError(t, err)

	back, err := Extract(context.Background(), FromPath(dest), ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, back.Names())
	assert.Equal(t, 1, back.Len())
}

func TestExportKeepsOtherSheets(t *testing.T) {
	dest := writeBook(t, fixture{"Existing", [][]interface{}{{"A"}, {"1"}}})
	_, err := Export(context.Background(), dest, sampleTable(t), ExportOptions{SheetName: "New"})
	require.NoError(t, err)

	info, err := Inspect(context.Background(), FromPath(dest))
	require.NoError(t, err)
	require.Len(t, info.Sheets, 2)
	assert.Equal(t, "Existing", info.Sheets[0].Name)
	assert.Equal(t, "New", info.Sheets[1].Name)
}

func TestExportUsageErrors(t *testing.T) {
	dir := t.TempDir()
	for _, dest := range []string{filepath.Join(dir, "out.xls"), filepath.Join(dir, "out.csv"), filepath.Join(dir, "out")} {
		_, err := Export(context.Background(), dest, sampleTable(t), ExportOptions{})
		assert.ErrorIs(t, err, ErrInvalidFormat, dest)
		assert.ErrorIs(t, err, ErrUsage, dest)
		_, statErr := os.Stat(dest)
		assert.True(t, os.IsNotExist(statErr), "document created for %s", dest)
	}

	_, err := Export(context.Background(), filepath.Join(dir, "out.xlsx"), nil, ExportOptions{})
	assert.ErrorIs(t, err, ErrUsage)

	_, err = Export(context.Background(), filepath.Join(dir, "bad.xlsx"), sampleTable(t), ExportOptions{SheetName: "a:b"})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestExportSaveFailure(t *testing.T) {
	// A regular file in place of the parent directory makes the destination unusable.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	dest := filepath.Join(blocker, "out.xlsx")
	_, err := Export(context.Background(), dest, sampleTable(t), ExportOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.Contains(t, err.Error(), dest)
}

func TestExportEmptyTable(t *testing.T) {
	empty, err := table.New([]string{"A", "B"}, []table.Type{table.Text, table.Text}, nil)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "empty.xlsx")
	_, err = Export(context.Background(), dest, empty, ExportOptions{})
	require.NoError(t, err)

	info, err := Inspect(context.Background(), FromPath(dest))
	require.NoError(t, err)
	require.Len(t, info.Sheets, 1)
	assert.Equal(t, 0, info.Sheets[0].Rows)
}

func TestExportWriter(t *testing.T) {
	var buf bytes.Buffer
	tbl := sampleTable(t)
	got, err := ExportWriter(context.Background(), &buf, tbl, ExportOptions{SheetName: "S"})
	require.NoError(t, err)
	assert.Same(t, tbl, got)

	back, err := Extract(context.Background(), FromReader(&buf), ExtractOptions{Sheet: SheetName("S")})
	require.NoError(t, err)
	assert.Equal(t, tbl.Names(), back.Names())
	assert.Equal(t, 2, back.Len())
}

func TestExportDateRoundTrip(t *testing.T) {
	due := []any{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}
	tbl, err := table.New([]string{"Due"}, []table.Type{table.Date}, [][]any{{due[0]}, {due[1]}})
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "dates.xlsx")
	_, err = Export(context.Background(), dest, tbl, ExportOptions{})
	require.NoError(t, err)

	text, err := Extract(context.Background(), FromPath(dest), ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, []any{"2024-01-02", "2024-03-04"}, column(t, text, "Due"))

	typed, err := Extract(context.Background(), FromPath(dest), ExtractOptions{InferTypes: true})
	require.NoError(t, err)
	assert.Equal(t, []table.Type{table.Date}, typed.Types())
	assert.Equal(t, due, column(t, typed, "Due"))
}
