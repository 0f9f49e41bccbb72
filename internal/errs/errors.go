// Package errs defines the error taxonomy shared across the runtime: the
// compiler, evaluator and dispatcher each raise one of these concrete
// types rather than an opaque errors.New, so callers can switch on kind
// with errors.As.
package errs

import "fmt"

// CompileError reports that the compiler rejected an Expression: an
// unresolved identifier, or operands an operator does not accept.
// Overload candidates are not checked at compile time: a call no
// candidate accepts fails at run time with NoOverloadFoundError.
type CompileError struct {
	Reason string
}

func (e *CompileError) Error() string { return fmt.Sprintf("compile error: %s", e.Reason) }

// NoOverloadFoundError is raised when Dispatch finds no candidate whose
// declared types accept the argument types, or when two candidates tie
// with incomparable specificity.
type NoOverloadFoundError struct {
	ScopeName string
	ArgCount  int
}

func (e *NoOverloadFoundError) Error() string {
	if e.ScopeName == "" {
		return fmt.Sprintf("no overload found for %d argument(s)", e.ArgCount)
	}
	return fmt.Sprintf("no overload of %q found for %d argument(s)", e.ScopeName, e.ArgCount)
}

// TypeMismatchError reports that CheckType used as an assertion failed.
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// DomainError reports an arithmetic domain failure (integer division by
// zero) or an invalid variable address.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string { return fmt.Sprintf("domain error: %s", e.Reason) }

// UnhandledEffect reports that an emitted Effect reached the top of the
// evaluator without a matching HandleEffect. Payload is a debug rendering
// of the effect's carried value, produced by the caller.
type UnhandledEffect struct {
	Payload string
}

func (e *UnhandledEffect) Error() string {
	return fmt.Sprintf("unhandled effect: %s", e.Payload)
}
