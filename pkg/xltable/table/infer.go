package table

// inferOrder is the order in which candidate types are tried. Text always
// succeeds and comes last.
var inferOrder = []Type{Bool, Int, Decimal, Date}

// Infer returns a copy of t in which every Text column whose non-null values
// all convert losslessly to a narrower type is converted to it. Columns of
// other types, and columns with no values, are kept as they are.
func (t *Table) Infer() *Table {
	out := &Table{index: make(map[string]int, len(t.cols)), rows: t.rows}
	for i, c := range t.cols {
		out.index[c.Name] = i
		out.cols = append(out.cols, inferColumn(c))
	}
	return out
}

func inferColumn(c *Column) *Column {
	if c.Type != Text {
		return c
	}

	var texts []string
	for _, v := range c.values {
		if s, ok := v.(string); ok {
			texts = append(texts, s)
		}
	}
	if len(texts) == 0 {
		return c
	}

	for _, typ := range inferOrder {
		converted, ok := convertAll(c.values, typ)
		if ok {
			return &Column{Name: c.Name, Type: typ, values: converted}
		}
	}
	return c
}

func convertAll(values []any, typ Type) ([]any, bool) {
	out := make([]any, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		cv, ok := typ.parse(v.(string))
		if !ok {
			return nil, false
		}
		out[i] = cv
	}
	return out, true
}
