// Package errors provides a lightweight structured error type (PreperError)
// for category-based classification in the CLI and pipeline.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a preper error for classification.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External tool integration errors
	CategoryStage    ErrorCategory = "stage"
	CategoryNetwork  ErrorCategory = "network"
	CategoryDatabase ErrorCategory = "database"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// PreperError is a structured error with category, severity, and context.
type PreperError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for PreperError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *PreperError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *PreperError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *PreperError) WithContext(key string, value any) *PreperError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new PreperError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *PreperError {
	return &PreperError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new PreperError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *PreperError {
	return &PreperError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	var pe *PreperError
	if errors.As(err, &pe) {
		return pe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns
// CategoryInternal if the error is not a PreperError.
func GetCategory(err error) ErrorCategory {
	var pe *PreperError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return CategoryInternal
}
