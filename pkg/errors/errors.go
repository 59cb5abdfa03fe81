// Package errors provides structured error types for the hallplan application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the planner's failure taxonomy:
//   - INVALID_*: Malformed fixed inputs, rejected before any placement attempt
//   - INVENTORY_EXHAUSTED: A spec has no instance that fits any region (non-fatal)
//   - REGION_DEGENERATE: Decomposition produced a sub-3 m-side region (non-fatal)
//   - INVARIANT_VIOLATION: A validator check failed; the layout cannot be declared valid
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInventory, "unknown booth area: %.2f", area)
//	if errors.Is(err, errors.ErrCodeInvalidInventory) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(origErr, errors.ErrCodeInternal, "decompose zone %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors: malformed fixed geometry or inventory input.
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidGeometry  Code = "INVALID_GEOMETRY"
	ErrCodeInvalidInventory Code = "INVALID_INVENTORY"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"

	// Placement-time conditions, recovered locally and surfaced in the report.
	ErrCodeInventoryExhausted Code = "INVENTORY_EXHAUSTED"
	ErrCodeRegionDegenerate   Code = "REGION_DEGENERATE"

	// Validation failure: the layout must not be declared valid.
	ErrCodeInvariantViolation Code = "INVARIANT_VIOLATION"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(cause error, code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
