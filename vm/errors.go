package vm

import (
	"fmt"

	"github.com/pkg/errors"
)

// RuntimeError is raised for failures during execution that aren't type
// mismatches: map key errors, division by zero, index out of bounds, a
// user script's explicit throw.
type RuntimeError struct {
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string { return e.Message }
func (e *RuntimeError) Unwrap() error { return e.Cause }

// NewRuntimeError builds a RuntimeError, matching the Rust original's
// runtime_error! macro.
func NewRuntimeError(format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// TypeError is raised when a value of the wrong kind is used where a
// specific kind was expected (argument type checks, binary operators).
type TypeError struct {
	Expected string
	Found    string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s, found '%s'", e.Expected, e.Found)
}

// NewTypeError builds a TypeError.
func NewTypeError(expected, found string) *TypeError {
	return &TypeError{Expected: expected, Found: found}
}

// CompileError is raised by the stub compiler (compile_stub.go) when
// source text can't be parsed into a Chunk.
type CompileError struct {
	Message string
	Pos     int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at %d: %s", e.Pos, e.Message)
}

// wrapHostError wraps a panic recovered from a host-supplied
// ExternalFunction into a RuntimeError, preserving a stack trace for
// host-side diagnostics via github.com/pkg/errors rather than a bare
// fmt.Errorf, so the original panic site survives past the VM boundary.
func wrapHostError(recovered interface{}) error {
	cause := errors.Wrapf(fmt.Errorf("%v", recovered), "panic in host function")
	return &RuntimeError{Message: cause.Error(), Cause: cause}
}
