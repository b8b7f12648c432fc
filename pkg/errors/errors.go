// Package errors provides structured error types for randgraph.
//
// Errors carry a machine-readable [Code] so the CLI and the HTTP API can
// report the same failure consistently:
//   - INVALID_*: input validation failures (vertex count, density, format)
//   - OUT_OF_RANGE: a vertex id outside [0, V)
//   - UNREACHABLE: a path query whose destination cannot be reached
//   - CONSTRUCT_FAILED: generation gave up after its attempt budget
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDensity, "density %g not in (0, 1]", d)
//	if errors.Is(err, errors.ErrCodeInvalidDensity) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidVertexCount Code = "INVALID_VERTEX_COUNT"
	ErrCodeInvalidDensity     Code = "INVALID_DENSITY"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidPath        Code = "INVALID_PATH"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeOutOfRange         Code = "OUT_OF_RANGE"

	// Lookup errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeUnreachable  Code = "UNREACHABLE"

	// Generation errors
	ErrCodeConstructFailed Code = "CONSTRUCT_FAILED"

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
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for plain errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// codeClass groups codes that are reported the same way.
type codeClass struct {
	status int // HTTP status
	exit   int // process exit code
}

var (
	classInput       = codeClass{http.StatusBadRequest, 2}
	classMissing     = codeClass{http.StatusNotFound, 3}
	classUnprocessed = codeClass{http.StatusUnprocessableEntity, 4}
	classUnsupported = codeClass{http.StatusNotImplemented, 2}
	classInternal    = codeClass{http.StatusInternalServerError, 1}
)

var classes = map[Code]codeClass{
	ErrCodeInvalidInput:       classInput,
	ErrCodeInvalidVertexCount: classInput,
	ErrCodeInvalidDensity:     classInput,
	ErrCodeInvalidFormat:      classInput,
	ErrCodeInvalidPath:        classInput,
	ErrCodeInvalidConfig:      classInput,
	ErrCodeOutOfRange:         classInput,
	ErrCodeNotFound:           classMissing,
	ErrCodeFileNotFound:       classMissing,
	ErrCodeUnreachable:        classMissing,
	ErrCodeConstructFailed:    classUnprocessed,
	ErrCodeUnsupported:        classUnsupported,
}

func classOf(err error) codeClass {
	if c, ok := classes[GetCode(err)]; ok {
		return c
	}
	return classInternal
}

// HTTPStatus maps err to the status the API responds with. Unknown codes
// and plain errors map to 500.
func HTTPStatus(err error) int { return classOf(err).status }

// ExitCode maps err to a process exit status: 2 for bad input, 3 for a
// missing file or vertex, 4 when generation gave up, 1 otherwise.
func ExitCode(err error) int { return classOf(err).exit }
