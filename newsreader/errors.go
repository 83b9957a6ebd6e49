// ABOUTME: Error types and handling for the newsreader library
// ABOUTME: Classifies core fetch and parse failures into a small set of error types

package newsreader

import (
	"errors"
	"fmt"

	coreerrors "newsreader-app/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNetwork indicates a fetch failed or returned a non-2xx status
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeParsing indicates the document was not a usable Atom feed
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// WithCause returns a copy of e with cause attached
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// Common errors
var (
	// ErrNoSources is returned when a fetch is attempted with no sources
	ErrNoSources = NewError(ErrorTypeConfiguration, "no feed sources configured")

	// ErrNoHTTPClient is returned when the HTTP client option is set to nil
	ErrNoHTTPClient = NewError(ErrorTypeConfiguration, "HTTP client cannot be nil")
)

// Re-exported parse sentinels for errors.Is checks
var (
	ErrMalformed      = coreerrors.ErrMalformed
	ErrUnexpectedRoot = coreerrors.ErrUnexpectedRoot
	ErrBadTimestamp   = coreerrors.ErrBadTimestamp
)

// classify wraps a core error in an *Error; nil stays nil
func classify(err error) error {
	if err == nil {
		return nil
	}
	var libErr *Error
	if errors.As(err, &libErr) {
		return err
	}

	switch {
	case coreerrors.IsValidation(err):
		return NewError(ErrorTypeValidation, "invalid input").WithCause(err)
	case coreerrors.IsFetch(err):
		return NewError(ErrorTypeNetwork, "fetch failed").WithCause(err)
	case coreerrors.IsParse(err):
		return NewError(ErrorTypeParsing, "parse failed").WithCause(err)
	default:
		return NewError(ErrorTypeInternal, "unexpected error").WithCause(err)
	}
}

// TypeOf returns the library error type of err, or "" if err is not one
func TypeOf(err error) ErrorType {
	var libErr *Error
	if errors.As(err, &libErr) {
		return libErr.Type
	}
	return ""
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	return TypeOf(err) == ErrorTypeNetwork
}

// IsParsingError checks if an error is a parsing error
func IsParsingError(err error) bool {
	return TypeOf(err) == ErrorTypeParsing
}
