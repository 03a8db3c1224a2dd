// Package writer writes typed tables into xlsx documents.
package writer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	apd "github.com/cockroachdb/apd/v3"
	"github.com/ukaji3/xltable-go/pkg/xltable/table"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is used when no sheet name is given.
const DefaultSheetName = "Sheet"

// Policy decides what happens when the target sheet already exists.
type Policy string

const (
	// Overwrite deletes the existing sheet and writes a fresh one.
	Overwrite Policy = "overwrite"
	// Assert fails without touching the document.
	Assert Policy = "assert"
	// Skip leaves the document untouched and reports success.
	Skip Policy = "skip"
)

var (
	// ErrSheetExists is returned by the Assert policy on a name collision.
	ErrSheetExists = errors.New("sheet already exists")
	// ErrUnknownPolicy is returned on a name collision when the policy is
	// not one of Overwrite, Assert or Skip.
	ErrUnknownPolicy = errors.New("unknown sheet conflict policy")
	// ErrOpen is returned when an existing document cannot be opened.
	ErrOpen = errors.New("open failed")
	// ErrSave is returned when the document cannot be written out.
	ErrSave = errors.New("save failed")
)

// Options configures a write.
type Options struct {
	// SheetName is the target sheet. Empty means DefaultSheetName.
	SheetName string
	// IfExists is the conflict policy. Empty means Overwrite.
	IfExists Policy
}

// Result reports what a write did.
type Result struct {
	// Sheet is the sheet that was (or would have been) written.
	Sheet string
	// Created is true when the document did not exist before.
	Created bool
	// Skipped is true when the Skip policy left the document untouched.
	Skipped bool
}

func (o Options) sheetName() string {
	if o.SheetName == "" {
		return DefaultSheetName
	}
	return o.SheetName
}

func (o Options) policy() Policy {
	if o.IfExists == "" {
		return Overwrite
	}
	return o.IfExists
}

// WriteFile writes t into the sheet of the xlsx document at path. A missing
// document is created; an existing one is opened so its other sheets are
// kept. The document is closed before WriteFile returns.
func WriteFile(ctx context.Context, path string, t *table.Table, opts Options) (Result, error) {
	res := Result{Sheet: opts.sheetName()}

	f, created, err := acquire(path)
	if err != nil {
		return res, err
	}
	defer f.Close()
	res.Created = created

	skipped, err := placeSheet(f, res.Sheet, opts.policy(), created)
	if err != nil {
		return res, err
	}
	if skipped {
		res.Skipped = true
		return res, nil
	}

	if err := writeRows(f, res.Sheet, t); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := f.SaveAs(path); err != nil {
		return res, fmt.Errorf("%w: %s (check permissions and that the file is not open in another application): %w", ErrSave, path, err)
	}
	return res, nil
}

// Write writes t into a new single-sheet document streamed to w.
func Write(ctx context.Context, w io.Writer, t *table.Table, opts Options) (Result, error) {
	res := Result{Sheet: opts.sheetName(), Created: true}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := placeSheet(f, res.Sheet, opts.policy(), true); err != nil {
		return res, err
	}
	if err := writeRows(f, res.Sheet, t); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if _, err := f.WriteTo(w); err != nil {
		return res, fmt.Errorf("%w: stream: %w", ErrSave, err)
	}
	return res, nil
}

func acquire(path string) (*excelize.File, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return excelize.NewFile(), true, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return f, false, nil
}

// placeSheet makes sure an empty sheet called name exists, applying the
// conflict policy when it is already there. It reports true when the Skip
// policy applies.
func placeSheet(f *excelize.File, name string, policy Policy, created bool) (bool, error) {
	if created {
		// A new document comes with one default sheet; reuse or replace it.
		def := f.GetSheetList()[0]
		if def == name {
			return false, nil
		}
		idx, err := f.NewSheet(name)
		if err != nil {
			return false, err
		}
		f.SetActiveSheet(idx)
		return false, f.DeleteSheet(def)
	}

	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return false, err
	}
	if idx == -1 {
		_, err := f.NewSheet(name)
		return false, err
	}

	switch policy {
	case Overwrite:
		return false, replaceSheet(f, name)
	case Assert:
		return false, fmt.Errorf("%w: %q", ErrSheetExists, name)
	case Skip:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q (must be %s, %s or %s)", ErrUnknownPolicy, policy, Overwrite, Assert, Skip)
	}
}

// replaceSheet deletes the named sheet and creates an empty one with the
// same name. The old sheet is renamed first so that deletion also works when
// it is the only sheet of the document.
func replaceSheet(f *excelize.File, name string) error {
	tmp := placeholderName(f)
	if err := f.SetSheetName(name, tmp); err != nil {
		return err
	}
	idx, err := f.NewSheet(name)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	return f.DeleteSheet(tmp)
}

func placeholderName(f *excelize.File) string {
	for i := 0; ; i++ {
		name := "~replaced" + strconv.Itoa(i)
		if idx, _ := f.GetSheetIndex(name); idx == -1 {
			return name
		}
	}
}

// writeRows emits the header (column names of the first row) and then one
// line per row. An empty table writes nothing.
func writeRows(f *excelize.File, sheet string, t *table.Table) error {
	var dates *dateStyles
	for _, typ := range t.Types() {
		if typ == table.Date {
			ds, err := newDateStyles(f)
			if err != nil {
				return err
			}
			dates = &ds
			break
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	line := 1
	for i, row := range t.Rows() {
		if i == 0 {
			names := row.Names()
			header := make([]interface{}, len(names))
			for j, n := range names {
				header[j] = n
			}
			if err := sw.SetRow(cellName(line), header); err != nil {
				return err
			}
			line++
		}
		values := row.Values()
		cells := make([]interface{}, len(values))
		for j, v := range values {
			if tm, ok := v.(time.Time); ok && dates != nil {
				cells[j] = dates.cell(tm)
				continue
			}
			cells[j] = cellValue(v)
		}
		if err := sw.SetRow(cellName(line), cells); err != nil {
			return err
		}
		line++
	}
	return sw.Flush()
}

// dateStyles are the number formats of date cells. They render the same
// text table.FormatValue gives, so a re-read Date column keeps its values.
type dateStyles struct {
	day   int
	stamp int
}

func newDateStyles(f *excelize.File) (dateStyles, error) {
	var ds dateStyles
	day, stamp := "yyyy-mm-dd", "yyyy-mm-dd hh:mm:ss"
	var err error
	if ds.day, err = f.NewStyle(&excelize.Style{CustomNumFmt: &day}); err != nil {
		return ds, err
	}
	if ds.stamp, err = f.NewStyle(&excelize.Style{CustomNumFmt: &stamp}); err != nil {
		return ds, err
	}
	return ds, nil
}

func (ds dateStyles) cell(tm time.Time) excelize.Cell {
	style := ds.stamp
	if tm.Hour() == 0 && tm.Minute() == 0 && tm.Second() == 0 && tm.Nanosecond() == 0 {
		style = ds.day
	}
	return excelize.Cell{StyleID: style, Value: tm}
}

func cellName(row int) string {
	name, _ := excelize.CoordinatesToCellName(1, row)
	return name
}

// cellValue maps a table value to an excelize cell value. Decimals become
// numbers only when float64 holds them exactly; otherwise they are written
// as text so no digits are lost.
func cellValue(v any) interface{} {
	d, ok := v.(*apd.Decimal)
	if !ok {
		return v
	}
	text := d.Text('f')
	if fl, err := strconv.ParseFloat(text, 64); err == nil && strconv.FormatFloat(fl, 'f', -1, 64) == text {
		return fl
	}
	return text
}
