package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig   = "CONFIG"
	ErrFont     = "FONT"
	ErrMeasure  = "MEASURE"
	ErrLayout   = "LAYOUT"
	ErrGeometry = "GEOMETRY"
	ErrUpstream = "UPSTREAM"
	ErrRender   = "RENDER"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// The rendered form is:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrRender code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrRender,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	// Include cause if present (why it failed)
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	// Include suggestion if present (how to fix)
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
// The outermost structured error in the chain decides.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pnErr *Error
	if errors.As(err, &pnErr) {
		return pnErr.Code == code
	}
	return false
}

// OneLine flattens an error message onto a single line, collapsing the
// blank-line layout of structured errors. Used where the message is embedded
// in an image or a log line.
func OneLine(err error) string {
	if err == nil {
		return ""
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
