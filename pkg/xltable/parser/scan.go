package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoColumns is returned when the column filter keeps no header field.
	ErrNoColumns = errors.New("column filter matched no header field")
	// ErrFooterTooLarge is returned when footer trimming would discard the
	// header or every data row.
	ErrFooterTooLarge = errors.New("footer count discards the whole table")
)

// Cell is a cell visited while searching for the table anchor.
type Cell struct {
	// Row is the zero-based sheet row.
	Row int
	// Col is the zero-based sheet column.
	Col int
	// Value is the cell text.
	Value string
}

// ScanParams configures a table scan.
type ScanParams struct {
	// SkipTop is the number of sheet rows ignored before the scan starts.
	SkipTop int
	// Anchor marks the top-left cell of the table. Nil anchors the table at
	// the first cell of the first scanned row.
	Anchor func(Cell) bool
	// Columns selects header fields to keep. Nil keeps every field from the
	// anchor column onward.
	Columns func(header string) bool
}

// ScanResult holds the collected table grid.
type ScanResult struct {
	// Rows are the collected rows, header first. Every row has one value per
	// entry of Columns.
	Rows [][]string
	// AnchorRow and AnchorCol locate the anchor cell (zero-based). Both are -1
	// when no anchor was found.
	AnchorRow int
	AnchorCol int
	// Columns are the sheet column indexes kept by the column filter.
	Columns []int
}

// Scan walks the rows once, locates the anchor and collects the table below
// it. The scan stops at the first row whose anchor-column cell is empty.
func Scan(ctx context.Context, it RowIterator, p ScanParams) (*ScanResult, error) {
	res := &ScanResult{AnchorRow: -1, AnchorCol: -1}
	found := p.Anchor == nil
	if found {
		res.AnchorCol = 0
	}

	row := -1
	for it.Next() {
		row++
		if row < p.SkipTop {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells, err := it.Columns()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}

		if !found {
			for i, v := range cells {
				if p.Anchor(Cell{Row: row, Col: i, Value: v}) {
					res.AnchorCol = i
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if res.AnchorRow < 0 {
			res.AnchorRow = row
		}

		if cellAt(cells, res.AnchorCol) == "" {
			break
		}

		if res.Columns == nil {
			res.Columns = selectColumns(cells, res.AnchorCol, p.Columns)
			if len(res.Columns) == 0 {
				return nil, fmt.Errorf("%w (header row %d)", ErrNoColumns, row+1)
			}
			header := pick(cells, res.Columns)
			for i := range header {
				header[i] = NormalizeHeader(header[i])
			}
			res.Rows = append(res.Rows, header)
			continue
		}
		res.Rows = append(res.Rows, pick(cells, res.Columns))
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// NormalizeHeader collapses runs of Unicode white space (NBSP and the
// ideographic space included) into single spaces and trims the result.
func NormalizeHeader(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TrimFooter drops the last n rows. The header and at least one data row
// must survive.
func TrimFooter(rows [][]string, n int) ([][]string, error) {
	if n == 0 {
		return rows, nil
	}
	if n >= len(rows)-1 {
		return nil, fmt.Errorf("%w: skip %d of %d data rows", ErrFooterTooLarge, n, max(len(rows)-1, 0))
	}
	return rows[:len(rows)-n], nil
}

func selectColumns(header []string, from int, keep func(string) bool) []int {
	var idxs []int
	for j := from; j < len(header); j++ {
		if keep == nil || keep(header[j]) {
			idxs = append(idxs, j)
		}
	}
	return idxs
}

func pick(cells []string, idxs []int) []string {
	out := make([]string, len(idxs))
	for i, j := range idxs {
		out[i] = cellAt(cells, j)
	}
	return out
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
