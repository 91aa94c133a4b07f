// Package langerr implements the interpreter's error taxonomy: a small
// closed set of fatal error kinds, each carrying an optional source
// location.
//
// Every parse/exec function returns a *Error up its call chain to
// cmd/minilang, which prints it and exits; nothing in this interpreter
// attempts to recover from an error mid-execution.
package langerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind names one of the seven fatal error categories.
type Kind string

const (
	SyntaxError      Kind = "SyntaxError"
	NameError        Kind = "NameError"
	TypeError        Kind = "TypeError"
	ValueError       Kind = "ValueError"
	IndexError       Kind = "IndexError"
	OutOfMemoryError Kind = "OutOfMemoryError"
	SystemError      Kind = "SystemError"
)

// Location pinpoints the offending token in the source.
type Location struct {
	File   string
	Line   int
	Column int
}

// Error is the concrete error type returned throughout the interpreter.
type Error struct {
	Kind     Kind
	Message  string
	Location Location
	// stack carries a Go stack trace for the two "this should never
	// happen" kinds (OutOfMemoryError, SystemError); nil otherwise.
	stack error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", e.Kind, e.Message))
	if e.Location.File != "" || e.Location.Line != 0 {
		sb.WriteString(fmt.Sprintf(" (at %s:%d:%d)", e.Location.File, e.Location.Line, e.Location.Column))
	}
	if e.stack != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%+v", e.stack))
	}
	return sb.String()
}

// Unwrap exposes the attached stack trace, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.stack }

// New creates a plain taxonomy error at a source location.
func New(kind Kind, loc Location, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Location: loc}
}

// NewNoPos creates a taxonomy error with no meaningful source position
// (used by the value/ops layer, which operates below the parser and
// doesn't carry a Location).
func NewNoPos(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Fatal wraps the two invariant-violation kinds with a Go stack trace
// via github.com/pkg/errors, so a maintainer gets more than a source
// position when the allocator fails or dispatch hits an unknown kind.
func Fatal(kind Kind, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, Message: msg, stack: errors.New(msg)}
}
