// Package table provides the typed, columnar table produced by extraction
// and consumed by export.
//
// Every column has a single Type. Values are stored as:
//
//	Text    string
//	Int     int64
//	Decimal *apd.Decimal
//	Bool    bool
//	Date    time.Time
//
// A nil value is a null cell in any column.
package table

import (
	"errors"
	"fmt"
)

var (
	// ErrNoColumns is returned when a table would have no columns.
	ErrNoColumns = errors.New("table has no columns")
	// ErrShape is returned when names, types and row widths disagree.
	ErrShape = errors.New("table shape mismatch")
	// ErrConvert is returned when a text value cannot be read as its
	// declared column type.
	ErrConvert = errors.New("value does not match column type")
)

// Column is a named, typed sequence of values.
type Column struct {
	Name   string
	Type   Type
	values []any
}

// Values returns the column values in row order.
func (c *Column) Values() []any {
	return c.values
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	return len(c.values)
}

// Table is an ordered set of uniquely named columns of equal length.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a table from row-major values. Each value must already have
// the Go type of its column (see package doc).
func New(names []string, types []Type, rows [][]any) (*Table, error) {
	if len(names) == 0 {
		return nil, ErrNoColumns
	}
	if len(types) != len(names) {
		return nil, fmt.Errorf("%w: %d names, %d types", ErrShape, len(names), len(types))
	}

	t := &Table{index: make(map[string]int, len(names)), rows: len(rows)}
	for i, name := range names {
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrShape, name)
		}
		t.index[name] = i
		t.cols = append(t.cols, &Column{Name: name, Type: types[i], values: make([]any, 0, len(rows))})
	}
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d", ErrShape, r, len(row), len(names))
		}
		for i, v := range row {
			if !types[i].holds(v) {
				return nil, fmt.Errorf("%w: row %d column %q: %T is not %s", ErrConvert, r, names[i], v, types[i])
			}
			t.cols[i].values = append(t.cols[i].values, v)
		}
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.cols)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Types returns the column types in order.
func (t *Table) Types() []Type {
	types := make([]Type, len(t.cols))
	for i, c := range t.cols {
		types[i] = c.Type
	}
	return types
}

// Columns returns the columns in order.
func (t *Table) Columns() []*Column {
	return t.cols
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Row returns row i as an ordered name to value mapping.
func (t *Table) Row(i int) Row {
	values := make([]any, len(t.cols))
	for j, c := range t.cols {
		values[j] = c.values[i]
	}
	return Row{table: t, values: values}
}

// Rows returns every row in source order. Key order is the column order
// and is the same for all rows.
func (t *Table) Rows() []Row {
	rows := make([]Row, t.rows)
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Row is one table row keyed by column name.
type Row struct {
	table  *Table
	values []any
}

// Names returns the keys of the row in column order.
func (r Row) Names() []string {
	return r.table.Names()
}

// Values returns the row values in column order.
func (r Row) Values() []any {
	return r.values
}

// Get returns the value of the named column.
func (r Row) Get(name string) (any, bool) {
	i, ok := r.table.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}
