// Package errors provides structured error types for slidelint.
//
// Every failure the geometry engine raises carries a machine-readable [Code]
// so the CLI and HTTP API can react to it without parsing messages:
//
//   - INVALID_SLIDE: the slide has no element sequence
//   - INDEX_OUT_OF_BOUNDS: an element or slide index is outside the slide
//   - INVALID_INDICES: an index is not an integer
//   - UNSUPPORTED_ALIGNMENT / UNSUPPORTED_DISTRIBUTION_DIRECTION: unknown mode
//   - DIMENSION_RESOLUTION_FAILURE: no canvas size could be found
//
// All of them are raised before any element is mutated.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedAlignment, "unknown alignment %q", mode)
//	if errors.Is(err, errors.ErrCodeUnsupportedAlignment) {
//	    // Handle bad mode
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode deck")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Geometry engine errors
	ErrCodeInvalidSlide                     Code = "INVALID_SLIDE"
	ErrCodeIndexOutOfBounds                 Code = "INDEX_OUT_OF_BOUNDS"
	ErrCodeInvalidIndices                   Code = "INVALID_INDICES"
	ErrCodeUnsupportedAlignment             Code = "UNSUPPORTED_ALIGNMENT"
	ErrCodeUnsupportedDistributionDirection Code = "UNSUPPORTED_DISTRIBUTION_DIRECTION"
	ErrCodeDimensionResolution              Code = "DIMENSION_RESOLUTION_FAILURE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsClientError reports whether err was caused by bad input rather than an
// internal failure.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidSlide, ErrCodeIndexOutOfBounds, ErrCodeInvalidIndices,
		ErrCodeUnsupportedAlignment, ErrCodeUnsupportedDistributionDirection,
		ErrCodeDimensionResolution, ErrCodeInvalidInput, ErrCodeInvalidFormat,
		ErrCodeInvalidPath, ErrCodeFileNotFound:
		return true
	}
	return false
}
