// Package output renders tables and inspection results for the command line.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/xltable-go/pkg/xltable/table"
)

// Format is a rendering format for tables.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat returns the Format named by s. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q (must be csv, json or markdown)", s)
}

// Extension returns the file extension used for f, with the leading dot.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return "." + string(f)
}

// Render writes t to w in format f.
func Render(w io.Writer, t *table.Table, f Format, pretty bool) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatJSON:
		data, err := TableToJSON(t, pretty)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatMarkdown:
		return WriteMarkdown(w, t)
	}
	return fmt.Errorf("unknown output format %q", f)
}
