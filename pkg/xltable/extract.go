package xltable

import (
	"bytes"
	"context"
	"errors"

	"github.com/ukaji3/xltable-go/pkg/xltable/parser"
	"github.com/ukaji3/xltable-go/pkg/xltable/table"
)

// Extract reads the table found in one sheet of src.
//
// The sheet is scanned once from row SkipTop: the first cell matching
// Anchor fixes the table's left column, the first row from there is the
// header, and the table ends at the first row whose anchor-column cell is
// empty. Columns filters the header fields. The collected grid goes through
// a fully quoted text form and comes back as a table of text columns, so the
// result does not depend on how the spreadsheet stores its values.
func Extract(ctx context.Context, src Source, opts ExtractOptions) (*table.Table, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := logger(opts.Logger)

	wb, err := src.open(parser.OpenOptions{RawValues: opts.RawValues})
	if err != nil {
		return nil, newDocumentError("extract", src.String(), "", ErrOpen, err)
	}
	defer wb.Close()

	sheet, err := parser.ResolveSheet(wb, opts.Sheet.index, opts.Sheet.name, opts.Sheet.byName)
	if err != nil {
		return nil, newDocumentError("extract", src.String(), opts.Sheet.String(), ErrSheetNotFound, err)
	}

	it, err := wb.Rows(sheet)
	if err != nil {
		return nil, newDocumentError("extract", src.String(), sheet, ErrRead, err)
	}
	defer it.Close()

	res, err := parser.Scan(ctx, it, parser.ScanParams{
		SkipTop: opts.SkipTop,
		Anchor:  opts.Anchor.anchorFunc(),
		Columns: opts.Columns.columnFunc(),
	})
	switch {
	case errors.Is(err, parser.ErrNoColumns):
		return nil, newDocumentError("extract", src.String(), sheet, ErrNoColumns, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case err != nil:
		return nil, newDocumentError("extract", src.String(), sheet, ErrRead, err)
	}
	if len(res.Rows) == 0 {
		return nil, newDocumentError("extract", src.String(), sheet, ErrNoTable,
			errors.New("no row matched the anchor, or the first anchor cell is empty"))
	}
	log.DebugContext(ctx, "table located",
		"source", src.String(), "sheet", sheet,
		"anchor_row", res.AnchorRow+1, "anchor_col", res.AnchorCol+1,
		"columns", len(res.Columns), "rows", len(res.Rows))

	rows, err := parser.TrimFooter(res.Rows, opts.SkipFoot)
	if err != nil {
		return nil, newDocumentError("extract", src.String(), sheet, ErrFooterTooLarge, err)
	}

	t, err := eraseTypes(rows)
	if err != nil {
		return nil, newDocumentError("extract", src.String(), sheet, ErrRead, err)
	}
	if opts.InferTypes {
		t = t.Infer()
	}
	log.DebugContext(ctx, "table extracted", "source", src.String(), "sheet", sheet, "rows", t.Len(), "columns", t.Width())
	return t, nil
}

// eraseTypes serializes rows as fully quoted text and reads them back with
// every column declared as text.
func eraseTypes(rows [][]string) (*table.Table, error) {
	var buf bytes.Buffer
	if err := parser.WriteQuoted(&buf, rows); err != nil {
		return nil, err
	}
	return table.ReadCSV(&buf, table.ReadOptions{Unescape: parser.UnescapeField})
}
