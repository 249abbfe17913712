package tailoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/cv-forge/internal/schemas"
)

// APICallError reports a transport failure talking to the AI service after
// retries were exhausted.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ResponseInvalidError reports an AI response that failed the TailoredCV
// contract, either malformed JSON or schema violations. Not retried; the
// caller's document is left untouched.
type ResponseInvalidError struct {
	Reason     string
	Violations []schemas.FieldError
}

func (e *ResponseInvalidError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("tailoring response invalid: %s", e.Reason)
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return fmt.Sprintf("tailoring response invalid: %s (%s)", e.Reason, strings.Join(parts, "; "))
}

// TimeoutError reports that the deadline expired before the AI round-trip
// completed.
type TimeoutError struct {
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("tailoring timed out after %s", e.Elapsed.Round(time.Millisecond))
}
