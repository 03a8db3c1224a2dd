package xltable

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every error returned by this package matches exactly one
// of them with errors.Is.
var (
	// ErrUsage indicates malformed arguments. It is raised before any I/O.
	ErrUsage = errors.New("invalid usage")
	// ErrConfig indicates well-formed arguments that do not fit the document.
	ErrConfig = errors.New("invalid configuration")
	// ErrIO indicates that a document could not be opened, read or saved.
	ErrIO = errors.New("document i/o failure")
)

// Usage errors.
var (
	ErrInvalidSource    = fmt.Errorf("%w: invalid source", ErrUsage)
	ErrFileNotFound     = fmt.Errorf("%w: file not found", ErrUsage)
	ErrInvalidFormat    = fmt.Errorf("%w: unsupported file format", ErrUsage)
	ErrInvalidPredicate = fmt.Errorf("%w: invalid predicate", ErrUsage)
	ErrInvalidOption    = fmt.Errorf("%w: invalid option", ErrUsage)
	ErrUnknownPolicy    = fmt.Errorf("%w: unknown sheet conflict policy", ErrUsage)
)

// Configuration errors.
var (
	ErrSheetNotFound  = fmt.Errorf("%w: sheet not found", ErrConfig)
	ErrNoTable        = fmt.Errorf("%w: no table found", ErrConfig)
	ErrNoColumns      = fmt.Errorf("%w: no column selected", ErrConfig)
	ErrFooterTooLarge = fmt.Errorf("%w: footer count discards the whole table", ErrConfig)
	ErrSheetExists    = fmt.Errorf("%w: sheet already exists", ErrConfig)
)

// I/O errors.
var (
	ErrOpen = fmt.Errorf("%w: cannot open document", ErrIO)
	ErrRead = fmt.Errorf("%w: cannot read sheet", ErrIO)
	ErrSave = fmt.Errorf("%w: cannot save document", ErrIO)
)

// DocumentError carries the document and sheet an operation failed on.
type DocumentError struct {
	Op    string // "extract", "export", "inspect"
	Path  string
	Sheet string
	// Kind is one of the package sentinels.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

func (e *DocumentError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Sheet != "" {
		fmt.Fprintf(&b, " sheet %s", e.Sheet)
	}
	fmt.Fprintf(&b, ": %v", e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the error kind and the underlying cause.
func (e *DocumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newDocumentError(op, path, sheet string, kind, err error) *DocumentError {
	return &DocumentError{
		Op:    op,
		Path:  path,
		Sheet: sheet,
		Kind:  kind,
		Err:   err,
	}
}

func usageErrorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{kind}, args...)...)
}
