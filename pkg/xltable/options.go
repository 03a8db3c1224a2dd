// Package xltable converts between spreadsheet documents and typed tables.
package xltable

import (
	"log/slog"
	"strconv"

	"github.com/ukaji3/xltable-go/pkg/xltable/writer"
)

// SheetSelector picks one sheet of a workbook.
type SheetSelector struct {
	index  int
	name   string
	byName bool
}

// SheetIndex selects a sheet by zero-based position.
func SheetIndex(i int) SheetSelector {
	return SheetSelector{index: i}
}

// SheetName selects a sheet by exact name.
func SheetName(name string) SheetSelector {
	return SheetSelector{name: name, byName: true}
}

func (s SheetSelector) String() string {
	if s.byName {
		return strconv.Quote(s.name)
	}
	return "#" + strconv.Itoa(s.index)
}

// Policy decides what Export does when the target sheet already exists.
type Policy = writer.Policy

const (
	// Overwrite replaces the existing sheet (default).
	Overwrite = writer.Overwrite
	// Assert fails without touching the document.
	Assert = writer.Assert
	// Skip returns the table unchanged without writing.
	Skip = writer.Skip
)

// DefaultSheetName is the sheet Export writes to when none is given.
const DefaultSheetName = writer.DefaultSheetName

// ExtractOptions configures Extract.
type ExtractOptions struct {
	// Sheet selects the sheet to read. The zero value is the first sheet.
	Sheet SheetSelector
	// Anchor marks the top-left cell of the table. The zero value anchors
	// the table at the first cell of the first row after SkipTop.
	Anchor Predicate
	// SkipTop is the number of sheet rows ignored before scanning.
	SkipTop int
	// SkipFoot is the number of collected rows dropped from the end.
	// It must be smaller than the number of data rows.
	SkipFoot int
	// Columns selects header fields to keep. The zero value keeps every
	// column from the anchor column onward.
	Columns Predicate
	// RawValues reads unformatted xlsx cell values instead of the text
	// Excel displays.
	RawValues bool
	// InferTypes narrows text columns to int, decimal, bool or date when
	// every value converts without loss.
	InferTypes bool
	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultExtractOptions returns options reading the whole first sheet.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{}
}

func (o ExtractOptions) validate() error {
	if o.SkipTop < 0 {
		return usageErrorf(ErrInvalidOption, "skip top must not be negative, got %d", o.SkipTop)
	}
	if o.SkipFoot < 0 {
		return usageErrorf(ErrInvalidOption, "skip foot must not be negative, got %d", o.SkipFoot)
	}
	if !o.Sheet.byName && o.Sheet.index < 0 {
		return usageErrorf(ErrInvalidOption, "sheet index must not be negative, got %d", o.Sheet.index)
	}
	if err := o.Anchor.validateAnchor(); err != nil {
		return err
	}
	return o.Columns.validateColumns()
}

// ExportOptions configures Export.
type ExportOptions struct {
	// SheetName is the target sheet. Empty means DefaultSheetName.
	SheetName string
	// IfExists is applied when SheetName already exists. Empty means
	// Overwrite. Unknown values are only rejected on a collision.
	IfExists Policy
	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultExportOptions returns options overwriting the default sheet.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{SheetName: DefaultSheetName, IfExists: Overwrite}
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
