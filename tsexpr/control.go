package tsexpr

import "github.com/dekarrin/transcribble/tsexpr/value"

// ScopeTerminator is the Go analogue of the original's e_scope_terminator:
// a host or standard-library function raises one by panicking with a value
// implementing this interface, and the nearest enclosing SafeEval recovers
// it and reports it as a soft error unless some intervening construct
// (a loop body's own dispatch, say) chooses to recover and handle it first
// by calling Kind() itself.
type ScopeTerminator interface {
	// Kind names the terminator, e.g. "break" or "continue", or a
	// host-defined string for a custom control-flow signal.
	Kind() string
	// Value is the payload carried out with the termination, e.g. a loop's
	// break value.
	Value() value.Value
}

type terminator struct {
	kind string
	val  value.Value
}

func (t terminator) Kind() string       { return t.kind }
func (t terminator) Value() value.Value { return t.val }

// NewTerminator builds a ScopeTerminator of the given kind carrying val.
func NewTerminator(kind string, val value.Value) ScopeTerminator {
	return terminator{kind: kind, val: val}
}

// Terminate unwinds the current evaluation with a scope-terminator panic.
// Standard-library or host Callables call this to implement break/continue
// -like control flow; it is caught by the nearest SafeEval, or by a
// construct that recovers and inspects Kind() itself (e.g. a loop
// recovering "break"/"continue" while letting any other kind propagate).
func Terminate(kind string, val value.Value) {
	panic(terminator{kind: kind, val: val})
}
