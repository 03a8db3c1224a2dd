package xltable

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ukaji3/xltable-go/pkg/xltable/parser"
)

// streamName identifies reader sources in errors and inventories.
const streamName = "<stream>"

// Source is a spreadsheet to read: either a file path or a stream.
type Source struct {
	path   string
	reader io.Reader
}

// FromPath returns a source reading the .xlsx or .xls file at path.
func FromPath(path string) Source {
	return Source{path: path}
}

// FromReader returns a source reading a document from r. Existence and
// extension checks do not apply; the format is detected from the content.
func FromReader(r io.Reader) Source {
	return Source{reader: r}
}

// String returns the path, or "<stream>" for reader sources.
func (s Source) String() string {
	if s.reader != nil {
		return streamName
	}
	return s.path
}

// validate checks the source shape and, for paths, the extension and
// existence of the file.
func (s Source) validate() error {
	switch {
	case s.reader != nil && s.path != "":
		return usageErrorf(ErrInvalidSource, "both path and reader set")
	case s.reader != nil:
		return nil
	case s.path == "":
		return usageErrorf(ErrInvalidSource, "empty source")
	}

	if _, ok := formatFromExt(s.path); !ok {
		return usageErrorf(ErrInvalidFormat, "%s: extension must be .xlsx or .xls, not %q", s.path, filepath.Ext(s.path))
	}
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return usageErrorf(ErrFileNotFound, "%s", s.path)
		}
		return newDocumentError("open", s.path, "", ErrOpen, err)
	}
	return nil
}

// open opens the source as a workbook.
func (s Source) open(opts parser.OpenOptions) (parser.Workbook, error) {
	if s.reader == nil {
		format, _ := formatFromExt(s.path)
		if format == parser.FormatXLS {
			return parser.OpenXLS(s.path)
		}
		return parser.OpenXLSX(s.path, opts)
	}

	data, err := io.ReadAll(s.reader)
	if err != nil {
		return nil, err
	}
	if sniffFormat(data) == parser.FormatXLS {
		return parser.ReadXLS(bytes.NewReader(data))
	}
	return parser.ReadXLSX(bytes.NewReader(data), opts)
}

func formatFromExt(path string) (parser.Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return parser.FormatXLSX, true
	case ".xls":
		return parser.FormatXLS, true
	}
	return "", false
}

// sniffFormat tells xls (OLE2 compound file) content apart from everything
// else, which is handed to the xlsx reader.
func sniffFormat(data []byte) parser.Format {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("application/vnd.ms-excel") || m.Is("application/x-ole-storage") {
			return parser.FormatXLS
		}
	}
	return parser.FormatXLSX
}
