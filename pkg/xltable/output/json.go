package output

import (
	"encoding/json"
	"time"

	apd "github.com/cockroachdb/apd/v3"
	"github.com/ukaji3/xltable-go/pkg/xltable/table"
)

// tableJSON keeps column order, which a list of objects would lose.
type tableJSON struct {
	Columns []columnJSON `json:"columns"`
	Rows    [][]any      `json:"rows"`
}

type columnJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToJSON serializes any value to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// TableToJSON serializes t as {"columns":[...],"rows":[[...]]}. Decimals
// are emitted as JSON numbers with all their digits and dates as strings.
func TableToJSON(t *table.Table, pretty bool) ([]byte, error) {
	out := tableJSON{Rows: make([][]any, 0, t.Len())}
	types := t.Types()
	for i, name := range t.Names() {
		out.Columns = append(out.Columns, columnJSON{Name: name, Type: types[i].String()})
	}
	for _, row := range t.Rows() {
		values := row.Values()
		line := make([]any, len(values))
		for i, v := range values {
			line[i] = jsonValue(v)
		}
		out.Rows = append(out.Rows, line)
	}
	return ToJSON(out, pretty)
}

func jsonValue(v any) any {
	switch x := v.(type) {
	case *apd.Decimal:
		return json.Number(x.Text('f'))
	case time.Time:
		return table.FormatValue(x)
	}
	return v
}
