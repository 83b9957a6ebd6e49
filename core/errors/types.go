// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates fetch failures from parse failures so callers can react per kind

package errors

import (
	"errors"
	"fmt"
)

// ParseKind classifies a feed parse failure
type ParseKind int

const (
	// Malformed means the document is not well-formed XML or ends early
	Malformed ParseKind = iota + 1

	// UnexpectedRoot means the first element is not <feed>
	UnexpectedRoot

	// BadTimestamp means an <updated> value is not RFC 3339
	BadTimestamp
)

// String implements fmt.Stringer
func (k ParseKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case UnexpectedRoot:
		return "unexpected root"
	case BadTimestamp:
		return "bad timestamp"
	default:
		return "unknown"
	}
}

// Sentinels matched by ParseError.Is
var (
	ErrMalformed      = errors.New("malformed feed")
	ErrUnexpectedRoot = errors.New("unexpected root element")
	ErrBadTimestamp   = errors.New("bad timestamp")
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// FetchError is returned when a feed cannot be retrieved. StatusCode is zero
// for transport failures.
type FetchError struct {
	URL        string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("fetch %s failed", e.URL)
}

// Unwrap returns the underlying transport error
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ParseError is returned when a feed body cannot be turned into entries
type ParseError struct {
	Kind ParseKind

	// Element is the offending element name, when known
	Element string

	// Value is the offending text, e.g. the rejected timestamp
	Value string

	Cause error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	msg := "parse feed: " + e.Kind.String()
	if e.Element != "" {
		msg += fmt.Sprintf(" <%s>", e.Element)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the tokenizer or time parsing error
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is matches the kind sentinels
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == Malformed
	case ErrUnexpectedRoot:
		return e.Kind == UnexpectedRoot
	case ErrBadTimestamp:
		return e.Kind == BadTimestamp
	}
	return false
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// KindOf returns the parse kind of err, or zero if err is not a ParseError
func KindOf(err error) ParseKind {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Kind
	}
	return 0
}

// StatusCodeOf returns the HTTP status carried by a FetchError, or zero
func StatusCodeOf(err error) int {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.StatusCode
	}
	return 0
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
