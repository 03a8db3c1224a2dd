package parser

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/extrame/xls"
)

// ErrMalformedXLS is returned when a legacy document has no workbook stream
// or its records cannot be decoded.
var ErrMalformedXLS = errors.New("malformed xls document")

// xlsCharset is the charset used to decode legacy (non-unicode) strings.
const xlsCharset = "utf-8"

type xlsWorkbook struct {
	wb     *xls.WorkBook
	closer io.Closer
}

// OpenXLS opens a legacy xls document from disk.
func OpenXLS(path string) (Workbook, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	wb, err := readXLS(fh)
	if err != nil {
		fh.Close()
		return nil, err
	}
	return &xlsWorkbook{wb: wb, closer: fh}, nil
}

// ReadXLS opens a legacy xls document from a seekable stream.
func ReadXLS(r io.ReadSeeker) (Workbook, error) {
	wb, err := readXLS(r)
	if err != nil {
		return nil, err
	}
	return &xlsWorkbook{wb: wb}, nil
}

// readXLS decodes the workbook globals. The decoder indexes records without
// bounds checks, so a panic on a damaged document becomes ErrMalformedXLS.
func readXLS(r io.ReadSeeker) (wb *xls.WorkBook, err error) {
	defer func() {
		if p := recover(); p != nil {
			wb, err = nil, fmt.Errorf("%w: %v", ErrMalformedXLS, p)
		}
	}()
	wb, err = xls.OpenReader(r, xlsCharset)
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: no workbook stream", ErrMalformedXLS)
	}
	return wb, nil
}

func (w *xlsWorkbook) Format() Format {
	return FormatXLS
}

func (w *xlsWorkbook) SheetNames() []string {
	names := make([]string, 0, w.wb.NumSheets())
	for i := 0; i < w.wb.NumSheets(); i++ {
		if sheet, err := w.sheet(i); err == nil && sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names
}

func (w *xlsWorkbook) Rows(sheet string) (RowIterator, error) {
	for i := 0; i < w.wb.NumSheets(); i++ {
		ws, err := w.sheet(i)
		if err != nil {
			return nil, err
		}
		if ws != nil && ws.Name == sheet {
			return &xlsRows{sheet: ws, cur: -1}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
}

// sheet parses the i-th sheet on first access.
func (w *xlsWorkbook) sheet(i int) (ws *xls.WorkSheet, err error) {
	defer func() {
		if p := recover(); p != nil {
			ws, err = nil, fmt.Errorf("%w: sheet %d: %v", ErrMalformedXLS, i, p)
		}
	}()
	return w.wb.GetSheet(i), nil
}

func (w *xlsWorkbook) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

type xlsRows struct {
	sheet *xls.WorkSheet
	cur   int
}

func (r *xlsRows) Next() bool {
	if r.cur >= int(r.sheet.MaxRow) {
		return false
	}
	r.cur++
	return true
}

func (r *xlsRows) Columns() ([]string, error) {
	row := rowAt(r.sheet, r.cur)
	if row == nil {
		return nil, nil
	}
	cells := make([]string, 0, row.LastCol()+1)
	for c := 0; c <= row.LastCol(); c++ {
		cells = append(cells, row.Col(c))
	}
	return trimTrailingEmpty(cells), nil
}

func (r *xlsRows) Err() error {
	return nil
}

func (r *xlsRows) Close() error {
	return nil
}

// rowAt returns nil for rows the sheet holds no record for, where
// WorkSheet.Row dereferences the missing entry.
func rowAt(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

// trimTrailingEmpty drops empty cells at the end of a row so both backends
// report row widths the same way.
func trimTrailingEmpty(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
