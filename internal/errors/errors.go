// Package errors provides sentinel errors and structured error types
// for the bundlekit CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a configuration or descriptor validation failure.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a bundle, module, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrBuild indicates the module builder invocation failed.
	ErrBuild = errors.New("build error")
)

// DetailError captures structured error information for user-facing
// CLI failures.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path involved (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// Wrap tags err with a sentinel so exit-code mapping can classify it.
// Both the sentinel and err stay reachable through errors.Is/As.
func Wrap(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}
