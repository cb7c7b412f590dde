// Package tserr holds the error taxonomy shared across tsexpr: sentinel
// errors for each soft-error kind the spec defines, plus a wrapping Error
// type that composes a message with one or more causes and is compatible
// with errors.Is/errors.As.
package tserr

import "errors"

var (
	// ErrSyntax covers malformed string escapes, unterminated strings,
	// missing closing delimiters in strict mode, and stray trailing tokens
	// after a top-level call parse.
	ErrSyntax = errors.New("syntax error")

	// ErrSignatureRegistration covers empty signatures, non-string/empty
	// name fragments or parameter tokens, and an infix signature whose
	// first parameter carries a modifier.
	ErrSignatureRegistration = errors.New("invalid function signature")

	// ErrUnknownFunction is reported when dispatch finds zero candidates
	// and no unknown-function handler is installed (or the handler itself
	// reports an error).
	ErrUnknownFunction = errors.New("function not found")

	// ErrAmbiguousFunction is reported when dispatch finds more than one
	// candidate function for a call.
	ErrAmbiguousFunction = errors.New("multiple functions found")

	// ErrArgumentShape covers wrong arity and wrong argument type.
	ErrArgumentShape = errors.New("wrong argument shape")

	// ErrUnknownVariable is the kind for a variable reference that can't be
	// resolved. tsexpr never reports it itself: with no unknown-variable
	// handler installed, an unbound reference evaluates to null.
	ErrUnknownVariable = errors.New("variable not found")

	// ErrScopeControlEscaped is reported when a scope-terminator (break,
	// continue, or a host-defined kind) unwinds past the nearest SafeEval.
	ErrScopeControlEscaped = errors.New("scope control flow escaped")

	// ErrHostRaised wraps any other panic value raised from within a host
	// Callable that is not a recognized scope terminator.
	ErrHostRaised = errors.New("host function raised an error")
)

// Error is a message paired with zero or more causes. Its Error() method
// concatenates the message with the first cause's message (if any); Is
// returns true for any cause in the chain, so callers can test the kind of
// an Error with errors.Is(err, tserr.ErrUnknownFunction) without needing to
// know about Error itself.
type Error struct {
	msg   string
	cause []error
}

// New creates an Error with the given message and optional causes.
func New(msg string, causes ...error) Error {
	e := Error{msg: msg}
	if len(causes) > 0 {
		e.cause = append([]error(nil), causes...)
	}
	return e
}

// Error returns the message, concatenated with the first cause's message if
// one is set.
func (e Error) Error() string {
	if e.msg == "" && len(e.cause) > 0 {
		return e.cause[0].Error()
	}
	if len(e.cause) > 0 {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap exposes every cause to the errors package.
func (e Error) Unwrap() []error {
	if len(e.cause) == 0 {
		return nil
	}
	return e.cause
}

// Is reports whether target equals e itself or any of e's causes.
func (e Error) Is(target error) bool {
	if other, ok := target.(Error); ok {
		if e.msg != other.msg || len(e.cause) != len(other.cause) {
			return false
		}
		for i := range e.cause {
			if e.cause[i] != other.cause[i] {
				return false
			}
		}
		return true
	}
	for _, c := range e.cause {
		if c == target {
			return true
		}
	}
	return false
}
