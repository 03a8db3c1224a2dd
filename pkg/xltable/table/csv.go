package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadOptions configures ReadCSV.
type ReadOptions struct {
	// Types declares column types by (deduplicated) column name. Columns
	// without a declaration are Text.
	Types map[string]Type
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// Unescape, when set, is applied to every field (header included)
	// before it is interpreted.
	Unescape func(string) string
}

// ReadCSV builds a table from delimited text whose first record is the
// header. Empty fields become nulls. Repeated header names are suffixed
// with "_duplicated_N".
func ReadCSV(r io.Reader, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if opts.Unescape != nil {
		for i, field := range header {
			header[i] = opts.Unescape(field)
		}
	}
	names := dedupe(header)
	types := make([]Type, len(names))
	for i, name := range names {
		types[i] = opts.Types[name]
	}

	var rows [][]any
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make([]any, len(rec))
		for i, field := range rec {
			if field == "" {
				continue
			}
			if opts.Unescape != nil {
				field = opts.Unescape(field)
			}
			v, ok := types[i].parse(field)
			if !ok {
				return nil, fmt.Errorf("%w: line %d column %q: %q is not %s", ErrConvert, line, names[i], field, types[i])
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return New(names, types, rows)
}

func dedupe(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	counts := make(map[string]int)
	for i, h := range header {
		name := h
		for seen[name] {
			name = fmt.Sprintf("%s_duplicated_%d", h, counts[h])
			counts[h]++
		}
		seen[name] = true
		names[i] = name
	}
	return names
}
