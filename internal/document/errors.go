package document

import "fmt"

// ParseError reports input that could not be parsed into a document.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// MissingFieldError reports a required metadata field that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in frontmatter", e.Field)
}

// InvalidMetadataError reports a metadata field carrying an invalid value.
type InvalidMetadataError struct {
	Field  string
	Reason string
}

func (e *InvalidMetadataError) Error() string {
	return fmt.Sprintf("invalid metadata field %q: %s", e.Field, e.Reason)
}
