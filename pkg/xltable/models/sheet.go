package models

// SheetInfo describes a single sheet of a workbook.
type SheetInfo struct {
	// Index is the zero-based position of the sheet in the workbook.
	Index int `json:"index"`
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows is the number of rows read from the sheet, empty rows included.
	Rows int `json:"rows"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty"`
	// PrintAreas contains user-defined print areas (xlsx only).
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}
