package parser

import (
	"context"
	"fmt"
)

// ReadAll reads every row of a sheet. It is used for inspection; extraction
// goes through Scan and stops at the end of the table.
func ReadAll(ctx context.Context, wb Workbook, sheet string) ([][]string, error) {
	it, err := wb.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var rows [][]string
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells, err := it.Columns()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, cells)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
