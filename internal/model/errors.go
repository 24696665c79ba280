package model

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidFormat      = errors.New("invalid model format")
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// FormatError describes what exactly is wrong with a persisted model. It
// unwraps to ErrInvalidFormat so callers can match the whole family with
// errors.Is.
type FormatError struct {
	Field  string // snapshot field involved (e.g., "weights", "model_type")
	Detail string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid model format: %s: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("invalid model format: %s", e.Detail)
}

// Unwrap ties FormatError to ErrInvalidFormat.
func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

func formatErr(field, detail string, args ...any) error {
	return &FormatError{Field: field, Detail: fmt.Sprintf(detail, args...)}
}
