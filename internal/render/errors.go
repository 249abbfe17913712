// Package render turns a parsed document and a resolved style into output
// artifacts.
package render

import (
	"fmt"
	"strings"
)

// InvalidFormatError represents a request for an output format outside the
// supported set
type InvalidFormatError struct {
	Format string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q. Supported formats: %s",
		e.Format, strings.Join(FormatNames(), ", "))
}

// TypesetError represents a failure of the external typesetting engine
type TypesetError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *TypesetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("typesetting failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("typesetting failed: %s", e.Message)
}

func (e *TypesetError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure producing or writing one output format
type RenderError struct {
	Format Format
	Cause  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: %s: %v", e.Format, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
