package output

import (
	"encoding/csv"
	"io"

	"github.com/ukaji3/xltable-go/pkg/xltable/table"
)

// WriteCSV writes the header and rows of t as CSV. Nulls become empty fields.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return err
	}
	for _, row := range t.Rows() {
		values := row.Values()
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = table.FormatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
