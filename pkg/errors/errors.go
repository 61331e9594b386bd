// Package errors provides structured error types for codepack.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library layers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map to the failure modes of the packaging and storage
// subsystems:
//   - CONFIG_INVALID: a directory-local policy file could not be parsed
//   - FILE_TOO_LARGE: a candidate file exceeds the size threshold
//   - IO_ERROR: a file could not be read during selection, hashing or packing
//   - PATH_TRAVERSAL: an archive entry would escape the extraction root
//   - NOT_FOUND: a remote key or package does not exist
//   - INVALID_INPUT: bad keys or arguments
//   - STORE_ERROR: the storage backend failed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeFileTooLarge, "the file %s is suspiciously large", path)
//	if errors.Is(err, errors.ErrCodeFileTooLarge) {
//	    // Handle oversized file
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Packaging errors
	ErrCodeConfigInvalid Code = "CONFIG_INVALID"
	ErrCodeFileTooLarge  Code = "FILE_TOO_LARGE"
	ErrCodeIO            Code = "IO_ERROR"
	ErrCodePathTraversal Code = "PATH_TRAVERSAL"

	// Storage errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeStore    Code = "STORE_ERROR"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
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
