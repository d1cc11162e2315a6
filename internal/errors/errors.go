// Package errors implements the engine's error taxonomy:
// user input errors, construction-time consistency errors, numerical errors,
// and resource errors. Every fallible operation in the engine returns one of
// these, tagged with the owning module's name, so the driver can abort a run
// with a single descriptive message.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies the taxonomy of a simulation error.
type Code string

const (
	// CodeUserInput covers model references to undefined names, missing
	// required building data, and values out of range.
	CodeUserInput Code = "USER_INPUT"
	// CodeConstruction covers slot double-assignment, zero-layer
	// constructions, and other invariant violations caught at module
	// construction time.
	CodeConstruction Code = "CONSTRUCTION"
	// CodeNumerical covers near-zero pivots, Gauss-Seidel non-convergence,
	// and non-finite state produced by a march step.
	CodeNumerical Code = "NUMERICAL"
	// CodeResource covers cache and output I/O failures.
	CodeResource Code = "RESOURCE"
)

// Error is the engine-wide error type. Every message is prefixed with the
// owning module's name so a failure surfaced at the driver is self
// explanatory without needing a stack trace.
type Error struct {
	Module  string
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Module, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Module, e.Code, e.Message)
}

// Unwrap exposes the wrapped error for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// New creates an Error tagged with the given module and code.
func New(module string, code Code, format string, args ...interface{}) *Error {
	return &Error{Module: module, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an existing error with module/code context.
func Wrap(module string, code Code, err error, format string, args ...interface{}) *Error {
	return &Error{Module: module, Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether the first *Error found in err's wrapped chain carries
// the given code; codes of *Error values wrapped inside that one are not
// checked.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
