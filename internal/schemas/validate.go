// Package schemas embeds the JSON Schema contracts for structured AI
// responses and validates payloads against them.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed tailored_cv_schema.json
var tailoredCVSchemaJSON string

// The embedded schema is constant, so it is compiled once on first use.
var (
	tailoredCVOnce   sync.Once
	tailoredCVSchema *gojsonschema.Schema
	tailoredCVErr    error
)

// TailoredCVSchema returns the JSON Schema the AI tailoring response must
// satisfy. Prompt construction includes it so the model sees the exact
// contract its output is validated against.
func TailoredCVSchema() string {
	return tailoredCVSchemaJSON
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every schema violation found in one payload
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors compiling the schema itself
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateTailoredCV validates a JSON payload against the embedded
// TailoredCV response schema. Violations are collected per field into one
// ValidationError rather than failing on the first.
func ValidateTailoredCV(jsonContent string) error {
	tailoredCVOnce.Do(func() {
		loader := gojsonschema.NewStringLoader(tailoredCVSchemaJSON)
		tailoredCVSchema, tailoredCVErr = gojsonschema.NewSchema(loader)
	})
	if tailoredCVErr != nil {
		return &SchemaLoadError{
			Schema:  "tailored_cv_schema.json",
			Message: "failed to compile embedded schema",
			Cause:   tailoredCVErr,
		}
	}

	result, err := tailoredCVSchema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		// The payload itself could not be loaded as JSON
		return &ValidationError{Errors: []FieldError{{
			Field:   "(root)",
			Message: err.Error(),
		}}}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
