package xltable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestInspect(t *testing.T) {
	path := writeBook(t,
		fixture{"Report", [][]interface{}{
			{"Title"},
			{},
			{nil, "Name", "Age"},
			{nil, "Ann", 30},
			{nil, "Bob", 40},
		}},
		fixture{"Empty", nil},
	)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: "Report!$B$3:$C$5",
		Scope:    "Report",
	}))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	info, err := Inspect(context.Background(), FromPath(path))
	require.NoError(t, err)

	assert.Equal(t, "book.xlsx", info.BookName)
	assert.Equal(t, "xlsx", info.Format)
	require.Len(t, info.Sheets, 2)

	report := info.Sheets[0]
	assert.Equal(t, 0, report.Index)
	assert.Equal(t, "Report", report.Name)
	assert.Equal(t, 5, report.Rows)
	assert.Equal(t, []string{"A1:C5"}, report.TableCandidates)
	require.Len(t, report.PrintAreas, 1)
	assert.Equal(t, 3, report.PrintAreas[0].R1)
	assert.Equal(t, 2, report.PrintAreas[0].C1)

	empty := info.Sheets[1]
	assert.Equal(t, "Empty", empty.Name)
	assert.Equal(t, 0, empty.Rows)
	assert.Empty(t, empty.TableCandidates)
}

func TestInspectUsageError(t *testing.T) {
	_, err := Inspect(context.Background(), FromPath("report.txt"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCheckEnvironment(t *testing.T) {
	assert.NoError(t, CheckEnvironment(context.Background()))

	formats := SupportedFormats()
	require.Len(t, formats, 2)
	assert.True(t, formats[0].Write)
	assert.False(t, formats[1].Write)
}
