package xltable

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ukaji3/xltable-go/pkg/xltable/parser"
	"github.com/ukaji3/xltable-go/pkg/xltable/table"
)

// Format describes a supported document format.
type Format struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Read      bool   `json:"read"`
	Write     bool   `json:"write"`
}

// SupportedFormats lists the formats Extract and Export handle.
func SupportedFormats() []Format {
	return []Format{
		{Name: string(parser.FormatXLSX), Extension: ".xlsx", Read: true, Write: true},
		{Name: string(parser.FormatXLS), Extension: ".xls", Read: true},
	}
}

// CheckEnvironment verifies that the spreadsheet and table backends work in
// this process by writing a one-row table to an in-memory document and
// reading it back. Hosts call it once at startup.
func CheckEnvironment(ctx context.Context) error {
	t, err := table.New([]string{"check"}, []table.Type{table.Text}, [][]any{{"ok"}})
	if err != nil {
		return fmt.Errorf("table backend: %w", err)
	}

	var buf bytes.Buffer
	if _, err := ExportWriter(ctx, &buf, t, ExportOptions{}); err != nil {
		return fmt.Errorf("xlsx writer: %w", err)
	}
	back, err := Extract(ctx, FromReader(&buf), ExtractOptions{})
	if err != nil {
		return fmt.Errorf("xlsx reader: %w", err)
	}
	if back.Len() != 1 || back.Names()[0] != "check" {
		return fmt.Errorf("xlsx round trip: got %d rows with columns %v", back.Len(), back.Names())
	}
	return nil
}
