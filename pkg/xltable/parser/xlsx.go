package parser

import (
	"io"

	"github.com/xuri/excelize/v2"
)

type xlsxWorkbook struct {
	f    *excelize.File
	opts excelize.Options
}

// OpenXLSX opens an xlsx document from disk.
func OpenXLSX(path string, opts OpenOptions) (Workbook, error) {
	xo := excelize.Options{RawCellValue: opts.RawValues}
	f, err := excelize.OpenFile(path, xo)
	if err != nil {
		return nil, err
	}
	return &xlsxWorkbook{f: f, opts: xo}, nil
}

// ReadXLSX opens an xlsx document from a stream.
func ReadXLSX(r io.Reader, opts OpenOptions) (Workbook, error) {
	xo := excelize.Options{RawCellValue: opts.RawValues}
	f, err := excelize.OpenReader(r, xo)
	if err != nil {
		return nil, err
	}
	return &xlsxWorkbook{f: f, opts: xo}, nil
}

// File exposes the underlying excelize document for xlsx-only features.
func (w *xlsxWorkbook) File() *excelize.File {
	return w.f
}

func (w *xlsxWorkbook) Format() Format {
	return FormatXLSX
}

func (w *xlsxWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *xlsxWorkbook) Rows(sheet string) (RowIterator, error) {
	rows, err := w.f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	return &xlsxRows{rows: rows, opts: w.opts}, nil
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}

type xlsxRows struct {
	rows *excelize.Rows
	opts excelize.Options
}

func (r *xlsxRows) Next() bool {
	return r.rows.Next()
}

func (r *xlsxRows) Columns() ([]string, error) {
	return r.rows.Columns(r.opts)
}

func (r *xlsxRows) Err() error {
	return r.rows.Error()
}

func (r *xlsxRows) Close() error {
	return r.rows.Close()
}
