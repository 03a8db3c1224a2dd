package xltable

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/ukaji3/xltable-go/pkg/xltable/table"
	"github.com/ukaji3/xltable-go/pkg/xltable/writer"
	"github.com/xuri/excelize/v2"
)

// Export writes t into a sheet of the .xlsx document at dest and returns t.
//
// A missing document is created. In an existing document the other sheets
// are kept, and an existing sheet with the same name is handled by
// opts.IfExists: Overwrite replaces it, Assert fails with ErrSheetExists and
// Skip returns t without writing anything. The header row is only written
// when t has rows.
func Export(ctx context.Context, dest string, t *table.Table, opts ExportOptions) (*table.Table, error) {
	if !strings.EqualFold(filepath.Ext(dest), ".xlsx") {
		return nil, usageErrorf(ErrInvalidFormat, "%s: destination must end with .xlsx", dest)
	}
	if t == nil {
		return nil, usageErrorf(ErrInvalidOption, "nil table")
	}
	log := logger(opts.Logger)

	res, err := writer.WriteFile(ctx, dest, t, writer.Options{SheetName: opts.SheetName, IfExists: opts.IfExists})
	if err != nil {
		return nil, exportError(dest, res.Sheet, err)
	}
	if res.Skipped {
		log.DebugContext(ctx, "sheet exists, export skipped", "dest", dest, "sheet", res.Sheet)
		return t, nil
	}
	log.DebugContext(ctx, "table exported", "dest", dest, "sheet", res.Sheet, "created", res.Created, "rows", t.Len())
	return t, nil
}

// ExportWriter writes t as a new single-sheet .xlsx document to w and
// returns t.
func ExportWriter(ctx context.Context, w io.Writer, t *table.Table, opts ExportOptions) (*table.Table, error) {
	if w == nil || t == nil {
		return nil, usageErrorf(ErrInvalidOption, "nil writer or table")
	}
	res, err := writer.Write(ctx, w, t, writer.Options{SheetName: opts.SheetName, IfExists: opts.IfExists})
	if err != nil {
		return nil, exportError(streamName, res.Sheet, err)
	}
	logger(opts.Logger).DebugContext(ctx, "table exported", "dest", streamName, "sheet", res.Sheet, "rows", t.Len())
	return t, nil
}

func exportError(dest, sheet string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, writer.ErrSheetExists):
		return newDocumentError("export", dest, sheet, ErrSheetExists, err)
	case errors.Is(err, writer.ErrUnknownPolicy):
		return newDocumentError("export", dest, sheet, ErrUnknownPolicy, err)
	case errors.Is(err, writer.ErrOpen):
		return newDocumentError("export", dest, sheet, ErrOpen, err)
	case errors.Is(err, excelize.ErrSheetNameBlank), errors.Is(err, excelize.ErrSheetNameInvalid),
		errors.Is(err, excelize.ErrSheetNameLength), errors.Is(err, excelize.ErrSheetNameSingleQuote):
		return newDocumentError("export", dest, sheet, ErrInvalidOption, err)
	}
	return newDocumentError("export", dest, sheet, ErrSave, err)
}
