package models

// ColumnSummary holds descriptive statistics for one table column.
type ColumnSummary struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Count    int    `json:"count"`
	Nulls    int    `json:"nulls"`
	Distinct int    `json:"distinct"`
	// Numeric statistics are only set for int and decimal columns.
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	StdDev *float64 `json:"stddev,omitempty"`
}
