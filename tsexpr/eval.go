package tsexpr

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/transcribble/internal/util"
	"github.com/dekarrin/transcribble/tsexpr/sig"
	"github.com/dekarrin/transcribble/tsexpr/tserr"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

// diagnosticWrapWidth is the column width dispatch-error messages are
// wrapped to before being handed to the error handler, mirroring
// engine.go's habit of wrapping long console messages rather than letting
// a "did you mean" or ambiguous-call listing run on as one unbroken line.
const diagnosticWrapWidth = 80

// Eval evaluates a single parsed Value one level: a string beginning with
// the configured variable sigil resolves as a variable reference, an array
// dispatches as a call via EvalList, and every other Value (including a
// plain string) evaluates to itself.
func (s *Scope) Eval(v value.Value) value.Value {
	switch v.Type() {
	case value.String:
		str := v.String()
		if len(str) > 0 && str[0] == s.opts.VarSymbol {
			return s.FindVariable(str[1:])
		}
		return v
	case value.Array:
		return s.EvalList(v.Array())
	default:
		return v
	}
}

// SafeEval evaluates v exactly like Eval, but recovers any panic raised
// during evaluation - a scope terminator escaping uncaught, a host
// Callable's own panic, or an argument-shape assertion - and reports it
// through the installed error handler. If no handler is installed, the
// panic is re-raised as a tserr.Error; a panic that already carries a
// tserr.Error is re-raised unchanged, so errors.Is still finds its kind.
func (s *Scope) SafeEval(v value.Value) (result value.Value) {
	defer func() {
		if r := recover(); r != nil {
			result = value.OfString(s.recoverPanic(r))
		}
	}()
	return s.Eval(v)
}

func (s *Scope) recoverPanic(r any) string {
	switch t := r.(type) {
	case ScopeTerminator:
		return s.reportError("scope control flow escaped: "+t.Kind(), tserr.ErrScopeControlEscaped)
	case tserr.Error:
		if s.onError == nil {
			panic(t)
		}
		return s.onError(s, t.Error())
	case error:
		return s.reportError(t.Error(), tserr.ErrHostRaised)
	default:
		return s.reportError(fmt.Sprint(r), tserr.ErrHostRaised)
	}
}

// reportError consults the installed error handler. If one is set, its
// substitute text is returned and evaluation continues normally; if unset,
// the error is re-panicked as a tserr.Error so it keeps unwinding.
func (s *Scope) reportError(msg string, causes ...error) string {
	if s.onError != nil {
		return s.onError(s, msg)
	}
	e := tserr.New(msg, causes...)
	panic(e)
}

// EvalList dispatches elems (a call's alternating name-fragment/value
// array) to the unique matching function, packing the matched signature's
// parameter slots - unevaluated - into the Callable's argument list. A
// +/* slot's matched values are grouped into one value.Array argument
// rather than left flat, per the variadic-grouping design: EvalList groups
// by walking the identical parity/stride-2 contract the dispatcher used to
// find the match, so packing and dispatch can never disagree about where
// one slot ends and the next begins. A one-element call whose element is a
// string beginning with the variable sigil is a variable reference and
// resolves through FindVariable instead of dispatching.
func (s *Scope) EvalList(elems []value.Value) value.Value {
	if len(elems) == 0 {
		return value.OfNull()
	}
	if len(elems) == 1 && elems[0].Type() == value.String {
		if str := elems[0].String(); len(str) > 0 && str[0] == s.opts.VarSymbol {
			return s.FindVariable(str[1:])
		}
	}

	matches := s.findMatches(elems)
	switch len(matches) {
	case 0:
		if s.onUnknownFunction != nil {
			return s.invoke(nil, elems, elems)
		}
		return value.OfString(s.reportError(s.unknownFunctionMessage(elems), tserr.ErrUnknownFunction))
	case 1:
		m := matches[0]
		return s.invoke(m.Def, elems, packSlots(elems, m.Slots))
	default:
		return value.OfString(s.reportError(s.ambiguousFunctionMessage(matches, elems), tserr.ErrAmbiguousFunction))
	}
}

func packSlots(elems []value.Value, slots []sig.Slot) []value.Value {
	packed := make([]value.Value, len(slots))
	for i, sl := range slots {
		switch len(sl.Values) {
		case 0:
			if sl.Modifier == sig.ZeroOrMore {
				packed[i] = value.OfArray(nil)
			} else {
				packed[i] = value.OfNull()
			}
		case 1:
			if sl.Modifier == sig.OneOrMore || sl.Modifier == sig.ZeroOrMore {
				packed[i] = value.OfArray([]value.Value{elems[sl.Values[0]]})
			} else {
				packed[i] = elems[sl.Values[0]]
			}
		default:
			grouped := make([]value.Value, len(sl.Values))
			for j, idx := range sl.Values {
				grouped[j] = elems[idx]
			}
			packed[i] = value.OfArray(grouped)
		}
	}
	return packed
}

func (s *Scope) invoke(def *sig.Definition[Callable], rawCall []value.Value, args []value.Value) value.Value {
	fn := s.onUnknownFunction
	if def != nil {
		fn = def.Fn
	}

	if s.opts.MaintainCallStack {
		frame := CallFrame{Def: def}
		if s.opts.CallStackStoreCallString {
			frame.CallString = s.StringifyArgs(rawCall)
		}
		s.callStack = append(s.callStack, frame)
		defer func() { s.callStack = s.callStack[:len(s.callStack)-1] }()
	}

	return fn(s, args)
}

func (s *Scope) unknownFunctionMessage(elems []value.Value) string {
	name := "?"
	if len(elems) > 0 && elems[0].Type() == value.String {
		name = elems[0].String()
	}
	msg := "function for call '" + s.StringifyArgs(elems) + "' not found"
	if suggestions := s.registry.Suggest(name); len(suggestions) > 0 {
		msg += " (did you mean " + util.MakeTextList(suggestions) + "?)"
	}
	return rosed.Edit(msg).Wrap(diagnosticWrapWidth).String()
}

func (s *Scope) ambiguousFunctionMessage(matches []sig.Match[Callable], elems []value.Value) string {
	sigs := make([]string, len(matches))
	for i, m := range matches {
		sigs[i] = m.Def.Signature
	}
	msg := "ambiguous call " + s.StringifyArgs(elems) + " matches " + util.MakeTextList(sigs)
	return rosed.Edit(msg).Wrap(diagnosticWrapWidth).String()
}

// EvalArgCopy evaluates args[idx], leaving args untouched.
func (s *Scope) EvalArgCopy(args []value.Value, idx int) value.Value {
	return s.SafeEval(args[idx])
}

// EvalArgInPlace evaluates args[idx] and overwrites it with the result, so
// a later read of the same slot sees the evaluated Value instead of
// re-evaluating the raw expression.
func (s *Scope) EvalArgInPlace(args []value.Value, idx int) value.Value {
	v := s.SafeEval(args[idx])
	args[idx] = v
	return v
}

// EvalArgSteal evaluates args[idx], then clears the slot to null - for a
// Callable that consumes an argument exactly once and has no further use
// for the raw slot.
func (s *Scope) EvalArgSteal(args []value.Value, idx int) value.Value {
	v := s.SafeEval(args[idx])
	args[idx] = value.OfNull()
	return v
}

// EvalArgs evaluates every element of args, left to right.
func (s *Scope) EvalArgs(args []value.Value) []value.Value {
	out := make([]value.Value, len(args))
	for i := range args {
		out[i] = s.SafeEval(args[i])
	}
	return out
}

// AssertMinArgs panics with an argument-shape error, unconditionally
// (bypassing the error handler's message-substitution path), if args has
// fewer than n elements.
func (s *Scope) AssertMinArgs(args []value.Value, n int) {
	if len(args) < n {
		panic(tserr.New(fmt.Sprintf("expected at least %d argument(s), got %d", n, len(args)), tserr.ErrArgumentShape))
	}
}

// AssertArgs panics with an argument-shape error, unconditionally, unless
// args has exactly len(types) elements each matching the corresponding
// type (value.Discarded matches any type). On success it evaluates and
// returns every argument, left to right.
func (s *Scope) AssertArgs(args []value.Value, types ...value.Type) []value.Value {
	if len(args) != len(types) {
		panic(tserr.New(fmt.Sprintf("expected %d argument(s), got %d", len(types), len(args)), tserr.ErrArgumentShape))
	}
	out := make([]value.Value, len(args))
	for i, t := range types {
		out[i] = s.AssertArg(args, i, t)
	}
	return out
}

// AssertArg evaluates args[idx] and panics with an argument-shape error,
// unconditionally, unless the result's type equals t (value.Discarded
// matches any type).
func (s *Scope) AssertArg(args []value.Value, idx int, t value.Type) value.Value {
	if idx >= len(args) {
		panic(tserr.New(fmt.Sprintf("missing argument %d", idx), tserr.ErrArgumentShape))
	}
	v := s.SafeEval(args[idx])
	if t != value.Discarded && v.Type() != t {
		panic(tserr.New(fmt.Sprintf("argument %d: expected %s, got %s", idx, t, v.Type()), tserr.ErrArgumentShape))
	}
	return v
}

// Stringify renders v using the default stringification policy (see
// value.Value.String), first evaluating it if it is not already a plain
// scalar.
func (s *Scope) Stringify(v value.Value) string {
	return s.SafeEval(v).String()
}

// StringifyArgs renders a raw (unevaluated) call array back into call
// notation, for error messages and call-stack frames - joining each
// element's default string form with spaces and wrapping the whole thing
// in the configured delimiters.
func (s *Scope) StringifyArgs(elems []value.Value) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return string(s.opts.OpeningDelim) + strings.Join(parts, " ") + string(s.opts.ClosingDelim)
}
