package xltable

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/ukaji3/xltable-go/pkg/xltable/models"
	"github.com/ukaji3/xltable-go/pkg/xltable/parser"
)

// Inspect lists the sheets of src with their likely table ranges and print
// areas. It helps choosing the sheet and anchor for Extract.
func Inspect(ctx context.Context, src Source) (*models.WorkbookInfo, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}

	wb, err := src.open(parser.OpenOptions{})
	if err != nil {
		return nil, newDocumentError("inspect", src.String(), "", ErrOpen, err)
	}
	defer wb.Close()

	info := &models.WorkbookInfo{
		BookName: filepath.Base(src.String()),
		Format:   string(wb.Format()),
	}
	printAreas := parser.PrintAreas(wb)

	for i, name := range wb.SheetNames() {
		rows, err := parser.ReadAll(ctx, wb, name)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, newDocumentError("inspect", src.String(), name, ErrRead, err)
		}
		info.Sheets = append(info.Sheets, models.SheetInfo{
			Index:           i,
			Name:            name,
			Rows:            len(rows),
			TableCandidates: parser.DetectTables(rows, parser.DefaultTableParams()),
			PrintAreas:      printAreas[name],
		})
	}
	return info, nil
}
