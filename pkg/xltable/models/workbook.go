// Package models defines data structures shared by extraction, inspection and rendering.
package models

// WorkbookInfo is the inventory of a spreadsheet document.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path), or "<stream>" for reader sources.
	BookName string `json:"book_name"`
	// Format is the container format ("xlsx" or "xls").
	Format string `json:"format"`
	// Sheets lists the sheets in document order.
	Sheets []SheetInfo `json:"sheets"`
}
