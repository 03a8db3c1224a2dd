package writer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	apd "github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xltable-go/pkg/xltable/table"
	"github.com/xuri/excelize/v2"
)

func people(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		[]string{"Name", "Age"},
		[]table.Type{table.Text, table.Int},
		[][]any{{"Ann", int64(30)}, {"Bob", nil}},
	)
	require.NoError(t, err)
	return tbl
}

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func sheetList(t *testing.T, path string) []string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	return f.GetSheetList()
}

// existingBook creates a document with a "Keep" sheet and a "Data" sheet.
func existingBook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Keep"))
	require.NoError(t, f.SetCellValue("Keep", "A1", "untouched"))
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Data", "A1", "old"))
	require.NoError(t, f.SetCellValue("Data", "A5", "stale"))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWriteFileCreatesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	res, err := WriteFile(context.Background(), path, people(t), Options{})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, DefaultSheetName, res.Sheet)

	assert.Equal(t, []string{DefaultSheetName}, sheetList(t, path))
	assert.Equal(t, [][]string{{"Name", "Age"}, {"Ann", "30"}, {"Bob"}}, readSheet(t, path, DefaultSheetName))
}

func TestWriteFileOverwrite(t *testing.T) {
	path := existingBook(t)

	res, err := WriteFile(context.Background(), path, people(t), Options{SheetName: "Data"})
	require.NoError(t, err)
	assert.False(t, res.Created)

	assert.ElementsMatch(t, []string{"Keep", "Data"}, sheetList(t, path))
	assert.Equal(t, [][]string{{"untouched"}}, readSheet(t, path, "Keep"))
	// Stale content of the old sheet is gone.
	assert.Equal(t, [][]string{{"Name", "Age"}, {"Ann", "30"}, {"Bob"}}, readSheet(t, path, "Data"))
}

func TestWriteFileOverwriteOnlySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.xlsx")
	_, err := WriteFile(context.Background(), path, people(t), Options{SheetName: "Only"})
	require.NoError(t, err)

	_, err = WriteFile(context.Background(), path, people(t), Options{SheetName: "Only", IfExists: Overwrite})
	require.NoError(t, err)
	assert.Equal(t, []string{"Only"}, sheetList(t, path))
	assert.Len(t, readSheet(t, path, "Only"), 3)
}

func TestWriteFileAssertAndSkipLeaveBytes(t *testing.T) {
	path := existingBook(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = WriteFile(context.Background(), path, people(t), Options{SheetName: "Data", IfExists: Assert})
	require.ErrorIs(t, err, ErrSheetExists)
	assert.Contains(t, err.Error(), "Data")

	res, err := WriteFile(context.Background(), path, people(t), Options{SheetName: "Data", IfExists: Skip})
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(before, after))
}

func TestWriteFileUnknownPolicyOnlyOnCollision(t *testing.T) {
	path := existingBook(t)

	_, err := WriteFile(context.Background(), path, people(t), Options{SheetName: "Fresh", IfExists: "replace"})
	require.NoError(t, err)

	_, err = WriteFile(context.Background(), path, people(t), Options{SheetName: "Fresh", IfExists: "replace"})
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestWriteFileEmptyTable(t *testing.T) {
	empty, err := table.New([]string{"A"}, []table.Type{table.Text}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	_, err = WriteFile(context.Background(), path, empty, Options{SheetName: "E"})
	require.NoError(t, err)
	assert.Empty(t, readSheet(t, path, "E"))
}

func TestWriteStream(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(context.Background(), &buf, people(t), Options{SheetName: "S"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"S"}, f.GetSheetList())
}

func TestWriteFileDateFormats(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)
	tbl, err := table.New(
		[]string{"When"},
		[]table.Type{table.Date},
		[][]any{{day}, {stamp}, {nil}},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dates.xlsx")
	_, err = WriteFile(context.Background(), path, tbl, Options{})
	require.NoError(t, err)

	rows := readSheet(t, path, DefaultSheetName)
	require.Len(t, rows, 3)
	assert.Equal(t, table.FormatValue(day), rows[1][0])
	assert.Equal(t, table.FormatValue(stamp), rows[2][0])
}

func TestCellValue(t *testing.T) {
	exact, _, _ := apd.NewFromString("1.25")
	long, _, _ := apd.NewFromString("12345678901234567890.123456789")

	assert.Equal(t, 1.25, cellValue(exact))
	assert.Equal(t, "12345678901234567890.123456789", cellValue(long))
	assert.Equal(t, "x", cellValue("x"))
	assert.Nil(t, cellValue(nil))
}
