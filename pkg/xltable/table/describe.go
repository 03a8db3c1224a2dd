package table

import (
	"strconv"

	apd "github.com/cockroachdb/apd/v3"
	"github.com/montanaflynn/stats"
	"github.com/ukaji3/xltable-go/pkg/xltable/models"
)

// Describe summarizes every column. Numeric statistics are computed for Int
// and Decimal columns only.
func (t *Table) Describe() []models.ColumnSummary {
	out := make([]models.ColumnSummary, 0, len(t.cols))
	for _, c := range t.cols {
		s := models.ColumnSummary{Name: c.Name, Type: c.Type.String(), Count: len(c.values)}
		distinct := make(map[string]struct{})
		var nums stats.Float64Data
		for _, v := range c.values {
			if v == nil {
				s.Nulls++
				continue
			}
			distinct[FormatValue(v)] = struct{}{}
			if f, ok := toFloat(v); ok {
				nums = append(nums, f)
			}
		}
		s.Distinct = len(distinct)

		if (c.Type == Int || c.Type == Decimal) && len(nums) > 0 {
			s.Min = stat(nums.Min)
			s.Max = stat(nums.Max)
			s.Mean = stat(nums.Mean)
			s.Median = stat(nums.Median)
			s.StdDev = stat(nums.StandardDeviation)
		}
		out = append(out, s)
	}
	return out
}

func stat(fn func() (float64, error)) *float64 {
	v, err := fn()
	if err != nil {
		return nil
	}
	return &v
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case *apd.Decimal:
		f, err := strconv.ParseFloat(x.Text('f'), 64)
		return f, err == nil
	}
	return 0, false
}
