package parser

import (
	"errors"
	"fmt"
)

// Format identifies the container format of a spreadsheet document.
type Format string

const (
	// FormatXLSX is the Office Open XML workbook format.
	FormatXLSX Format = "xlsx"
	// FormatXLS is the legacy BIFF8 workbook format.
	FormatXLS Format = "xls"
)

// ErrSheetNotFound is returned when a sheet selector matches no sheet.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is a read-only view over an opened spreadsheet document.
type Workbook interface {
	// Format returns the container format of the document.
	Format() Format
	// SheetNames returns the sheet names in document order.
	SheetNames() []string
	// Rows returns an iterator over the rows of the named sheet.
	Rows(sheet string) (RowIterator, error)
	Close() error
}

// RowIterator walks a sheet top to bottom. Every physical row is visited,
// including empty ones, so row positions match the sheet.
type RowIterator interface {
	Next() bool
	// Columns returns the cell values of the current row. Trailing empty
	// cells may be omitted.
	Columns() ([]string, error)
	// Err reports the error that stopped Next, if any.
	Err() error
	Close() error
}

// OpenOptions configures how cell values are read.
type OpenOptions struct {
	// RawValues reads unformatted cell values (xlsx only).
	RawValues bool
}

// ResolveSheet resolves a sheet either by zero-based index (when byName is
// false) or by exact name.
func ResolveSheet(wb Workbook, index int, name string, byName bool) (string, error) {
	names := wb.SheetNames()
	if byName {
		for _, n := range names {
			if n == name {
				return n, nil
			}
		}
		return "", fmt.Errorf("%w: %q (available: %v)", ErrSheetNotFound, name, names)
	}
	if index < 0 || index >= len(names) {
		return "", fmt.Errorf("%w: index %d out of range [0, %d)", ErrSheetNotFound, index, len(names))
	}
	return names[index], nil
}
