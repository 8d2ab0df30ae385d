// Package errors provides structured error types for composer2rpm.
//
// Every fatal condition the tool can hit maps to one [Code]:
//   - INVALID_ARGUMENT: malformed package name, rejected before any network access
//   - REGISTRY_ERROR: non-success HTTP response, transport failure or undecodable body
//   - CONFIG_ERROR: the manifest cannot be turned into a recipe (e.g. ambiguous namespace)
//   - INVALID_INPUT: the configuration file is malformed
//   - INTERNAL_ERROR: unexpected local failures such as output writes
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "invalid package name: %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRegistry, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeRegistry        Code = "REGISTRY_ERROR"
	ErrCodeConfig          Code = "CONFIG_ERROR"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInternal        Code = "INTERNAL_ERROR"
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
func Wrap(code Code, cause error, format string, args ...any) *Error {
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

// UserMessage returns a one-line message suitable for the terminal.
// For *Error types the code prefix is dropped and the cause, if any, is appended.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// RegistryError carries the HTTP status of a failed registry request.
// It is always wrapped in an *Error with [ErrCodeRegistry].
type RegistryError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}
