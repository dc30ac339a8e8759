package application

import (
	"errors"
	"fmt"

	"calcnote/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = domain.ErrNotFound
	ErrNoReference   = domain.ErrNoReference
	ErrInvalidMode   = errors.New("invalid update mode")
	ErrEditorAborted = errors.New("editor exited without saving")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LineError reports an operation on a line that cannot serve it
type LineError struct {
	Line   int
	Reason string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line+1, e.Reason)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
