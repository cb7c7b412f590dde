package tsexpr

import "github.com/dekarrin/transcribble/tsexpr/lex"

// Options configures a Scope's syntax and bookkeeping. A child Scope copies
// its parent's Options at creation time; later changes to a parent's
// Options are not retroactively visible to children already created, the
// same snapshot-at-birth behavior as the original context constructor.
type Options struct {
	lex.Options

	// MaintainCallStack enables pushing/popping a frame around every
	// dispatched call, inspectable via Scope.CallStack.
	MaintainCallStack bool

	// CallStackStoreCallString additionally records the pre-dispatch call
	// text (via Scope.StringifyArgs) on each frame. Ignored if
	// MaintainCallStack is false. Off by default since it costs a
	// stringify per call.
	CallStackStoreCallString bool
}

// DefaultOptions returns the spec's default option set.
func DefaultOptions() Options {
	return Options{Options: lex.Default()}
}
