package tsexpr

import (
	"github.com/dekarrin/transcribble/tsexpr/sig"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

// Callable is the type every bound function and host callback is. For a
// bound function, args holds one *unevaluated* entry per parameter slot of
// the matched signature, in order: name fragments are dropped, each +/* slot
// arrives as one value.Array of its matched values, and an omitted ? slot
// arrives as null. The unknown-function handler instead receives the whole
// raw call array. EvalList never evaluates anything itself; a Callable decides when, or
// whether, to evaluate each of its arguments using the EvalArg* helpers on
// the Scope it is given.
type Callable func(s *Scope, args []value.Value) value.Value

// UnknownVariableFunc resolves a variable reference that no scope in the
// chain has bound, returning the Value to use in its place. The default
// returns null.
type UnknownVariableFunc func(s *Scope, name string) value.Value

// ErrorHandlerFunc is consulted whenever evaluation hits a soft error. If
// set and it returns normally, its return value is substituted as text in
// place of the failed (sub)expression; if unset, the error unwinds as a
// panic carrying a tserr.Error.
type ErrorHandlerFunc func(s *Scope, msg string) string

// CallFrame is one entry of a Scope's call stack.
type CallFrame struct {
	Def        *sig.Definition[Callable]
	CallString string
}

// Scope is a node in the parent-linked lexical scope tree: it owns a
// variable map and a function registry, falls back to its parent for names
// it can't resolve locally, and carries the handlers and Options that
// govern how it parses and evaluates call notation.
//
// A Scope is not safe for concurrent use from multiple goroutines without
// external synchronization; it is reentrant from a single goroutine only
// (a Callable may call back into the same Scope's Eval/Interpolate/Parse).
type Scope struct {
	parent *Scope

	vars     map[string]value.Value
	registry *sig.Registry[Callable]

	opts Options

	onUnknownVariable UnknownVariableFunc
	onUnknownFunction Callable
	onError           ErrorHandlerFunc

	callStack []CallFrame
}

// NewScope creates a Scope. If parent is non-nil, the new Scope's Options
// and handlers are copied from parent at this moment (later changes to
// parent are not retroactively visible), and its function registry falls
// back to parent's for names not bound locally.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		parent:   parent,
		vars:     make(map[string]value.Value),
		registry: sig.NewRegistry[Callable](),
	}
	if parent != nil {
		s.opts = parent.opts
		s.onUnknownVariable = parent.onUnknownVariable
		s.onUnknownFunction = parent.onUnknownFunction
		s.onError = parent.onError
		s.registry.Parent = parent.registry
	} else {
		s.opts = DefaultOptions()
	}
	return s
}

// Parent returns this Scope's parent, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Options returns a copy of this Scope's current Options.
func (s *Scope) Options() Options { return s.opts }

// SetOptions replaces this Scope's Options. It does not affect any
// already-created child or parent Scope.
func (s *Scope) SetOptions(o Options) { s.opts = o }

// OnUnknownVariable installs the handler consulted when a variable
// reference can't be resolved anywhere in the scope chain.
func (s *Scope) OnUnknownVariable(fn UnknownVariableFunc) { s.onUnknownVariable = fn }

// OnUnknownFunction installs the Callable invoked, with the full call
// array, when dispatch finds zero candidate functions anywhere in the
// scope chain.
func (s *Scope) OnUnknownFunction(fn Callable) { s.onUnknownFunction = fn }

// OnError installs the handler consulted for every soft error surfaced
// during evaluation.
func (s *Scope) OnError(fn ErrorHandlerFunc) { s.onError = fn }

// CallStack returns the current call stack, outermost frame first. It is
// only populated when Options.MaintainCallStack is set, and only on the
// Scope (or scope chain) where calls actually happened.
func (s *Scope) CallStack() []CallFrame {
	return append([]CallFrame(nil), s.callStack...)
}

// BindFunction registers fn under specStr in this Scope's own registry,
// following the signature grammar in spec.md §4.2/§6.
func (s *Scope) BindFunction(specStr string, fn Callable) (*sig.Definition[Callable], error) {
	return s.registry.Bind(specStr, fn, s.opts.Options)
}

// FindFunctions returns every Definition whose signature matches args.
// localOnly, if passed true, restricts the search to this Scope's own
// registry; by default (or when passed false) the scope chain's ancestors
// are also searched when the local registry has no match.
func (s *Scope) FindFunctions(args []value.Value, localOnly ...bool) []*sig.Definition[Callable] {
	only := false
	if len(localOnly) > 0 {
		only = localOnly[0]
	}
	return s.registry.Find(args, only)
}

// findMatches is FindFunctions plus each candidate's Slot breakdown, used
// internally by EvalList to pack a dispatched call's arguments.
func (s *Scope) findMatches(args []value.Value) []sig.Match[Callable] {
	return s.registry.FindMatches(args, false)
}

// SetUserVar binds name to val. By default the assignment walks the scope
// chain and updates the nearest ancestor (including this Scope) that
// already has name bound, falling back to binding it locally if no
// ancestor has it; passing forceLocal=true always binds in this Scope
// regardless of any ancestor binding.
func (s *Scope) SetUserVar(name string, val value.Value, forceLocal ...bool) {
	force := len(forceLocal) > 0 && forceLocal[0]
	if !force {
		for cur := s; cur != nil; cur = cur.parent {
			if _, ok := cur.vars[name]; ok {
				cur.vars[name] = val
				return
			}
		}
	}
	s.vars[name] = val
}

// UserVar returns the Value bound to name, searching this Scope and then
// its ancestors, and whether it was found at all (before any
// unknown-variable handler runs).
func (s *Scope) UserVar(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return value.OfNull(), false
}

// UserVarOr returns the Value bound to name, or fallback if unbound.
func (s *Scope) UserVarOr(name string, fallback value.Value) value.Value {
	if v, ok := s.UserVar(name); ok {
		return v
	}
	return fallback
}

// FindVariable resolves name exactly like an embedded variable reference
// would during Eval: scope-chain lookup first, then the unknown-variable
// handler (defaulting to null) if nothing is bound.
func (s *Scope) FindVariable(name string) value.Value {
	if v, ok := s.UserVar(name); ok {
		return v
	}
	if s.onUnknownVariable != nil {
		return s.onUnknownVariable(s, name)
	}
	return value.OfNull()
}
