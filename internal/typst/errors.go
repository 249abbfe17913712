package typst

import "fmt"

// CompileError represents a failure locating or running the typst binary
type CompileError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("typst: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("typst: %s", e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}
