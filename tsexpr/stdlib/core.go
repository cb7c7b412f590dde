// Package stdlib supplies the standard function library: the comparison,
// arithmetic, and list/string operators every embedding of tsexpr is
// expected to have available, plus a couple of small conveniences (define
// sugar) that the spec leaves to a standard library rather than the core.
//
// Every function here is grounded in
// original_source/translator/src/main.cpp's open_core_lib, translated from
// the C++ eval_arg_steal/eval_args/assert_arg vocabulary to the matching
// Scope methods of the same names.
package stdlib

import (
	"fmt"
	"strings"

	"github.com/dekarrin/transcribble/tsexpr"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

// Register binds the entire standard library into s.
func Register(s *tsexpr.Scope) error {
	bindings := []struct {
		sig string
		fn  tsexpr.Callable
	}{
		{"if arg then arg else arg", ifThenElse},
		{"arg ? arg : arg", ifThenElse},

		{"arg == arg", opEq},
		{"arg eq arg", opEq},
		{"arg != arg", opNeq},
		{"arg neq arg", opNeq},
		{"arg > arg", opGt},
		{"arg gt arg", opGt},
		{"arg >= arg", opGe},
		{"arg ge arg", opGe},
		{"arg < arg", opLt},
		{"arg lt arg", opLt},
		{"arg <= arg", opLe},
		{"arg le arg", opLe},
		{"not arg", opNot},

		{"arg + arg", opPlus},
		{"arg - arg", opMinus},
		{"arg * arg", opMul},
		{"arg / arg", opDiv},
		{"arg % arg", opMod},

		{"arg is arg", opIs},
		{"type-of arg", typeOf},
		{"typeof arg", typeOf},
		{"size-of arg", sizeOf},
		{"sizeof arg", sizeOf},
		{"# arg", sizeOf},
		{"str arg", str},

		{"arg , arg+", opCat},
		{"arg and arg+", opAnd},
		{"arg or arg+", opOr},
		{"list arg , arg*", list},
		{"cat arg , arg* and arg", opCat},

		{"eval arg*", evalFn},

		{"interpolate arg", interpolateFn},
		{"parse arg", parseFn},
		{"run arg", runFn},

		{"match arg with arg* default arg", matchFn},
	}

	for _, b := range bindings {
		if _, err := s.BindFunction(b.sig, b.fn); err != nil {
			return fmt.Errorf("stdlib: binding %q: %w", b.sig, err)
		}
	}
	return nil
}

func ifThenElse(s *tsexpr.Scope, args []value.Value) value.Value {
	s.AssertMinArgs(args, 3)
	if s.EvalArgSteal(args, 0).Truthy() {
		return s.EvalArgSteal(args, 1)
	}
	return s.EvalArgSteal(args, 2)
}

// opIs treats "number" as matching any of Int/Uint/Float, mirroring
// nlohmann json's type_name() collapsing every numeric json type into the
// single string "number" in main.cpp's op_is - callers written against that
// behavior (e.g. "[.kills is number]" against an Int-typed kills) expect the
// same collapse here rather than a Go-flavored exact tag match.
func opIs(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	typeName := s.AssertArg(args, 1, value.String).String()
	if typeName == "number" {
		return value.OfBool(evaled[0].IsNumber())
	}
	return value.OfBool(evaled[0].Type().String() == typeName)
}

func opEq(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return value.OfBool(evaled[0].Equal(evaled[1]))
}

func opNeq(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return value.OfBool(!evaled[0].Equal(evaled[1]))
}

func opGt(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return evaled[0].GreaterThan(evaled[1])
}

func opGe(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return evaled[0].GreaterThanEqualTo(evaled[1])
}

func opLt(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return evaled[0].LessThan(evaled[1])
}

func opLe(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return evaled[0].LessThanEqualTo(evaled[1])
}

func opNot(s *tsexpr.Scope, args []value.Value) value.Value {
	s.AssertMinArgs(args, 1)
	return value.OfBool(!s.EvalArgCopy(args, 0).Truthy())
}

// opAnd and opOr are bound to "arg and arg+"/"arg or arg+": the first
// operand arrives as a plain slot, every further and-ed/or-ed operand
// arrives grouped into one value.Array (see packSlots) and must be walked
// element-by-element rather than handed to SafeEval as a whole - SafeEval
// on an Array re-dispatches it as a call, which is not what a grouped
// variadic slot means.
func opAnd(s *tsexpr.Scope, args []value.Value) value.Value {
	s.AssertMinArgs(args, 2)
	left := s.EvalArgSteal(args, 0)
	if !left.Truthy() {
		return left
	}
	for _, rest := range args[1].Array() {
		left = s.SafeEval(rest)
		if !left.Truthy() {
			return left
		}
	}
	return left
}

func opOr(s *tsexpr.Scope, args []value.Value) value.Value {
	s.AssertMinArgs(args, 2)
	left := s.EvalArgSteal(args, 0)
	if left.Truthy() {
		return left
	}
	for _, rest := range args[1].Array() {
		left = s.SafeEval(rest)
		if left.Truthy() {
			return left
		}
	}
	return left
}

func opPlus(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return evaled[0].Add(evaled[1])
}

func opMinus(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return evaled[0].Subtract(evaled[1])
}

func opMul(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return evaled[0].Multiply(evaled[1])
}

func opDiv(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	return evaled[0].Divide(evaled[1])
}

func opMod(s *tsexpr.Scope, args []value.Value) value.Value {
	evaled := s.EvalArgs(args)
	a, b := evaled[0].Int(), evaled[1].Int()
	if b == 0 {
		return value.OfInt(0)
	}
	return value.OfInt(a % b)
}

func typeOf(s *tsexpr.Scope, args []value.Value) value.Value {
	v := s.EvalArgSteal(args, 0)
	return value.OfString(v.Type().String())
}

func sizeOf(s *tsexpr.Scope, args []value.Value) value.Value {
	v := s.EvalArgSteal(args, 0)
	return value.OfInt(int64(v.Size()))
}

func str(s *tsexpr.Scope, args []value.Value) value.Value {
	v := s.EvalArgSteal(args, 0)
	return value.OfString(v.String())
}

// evalFn evaluates each argument in order and returns the last result,
// matching main.cpp's eval().
func evalFn(s *tsexpr.Scope, args []value.Value) value.Value {
	last := value.OfNull()
	for _, a := range args[0].Array() {
		last = s.SafeEval(a)
	}
	return last
}

// list evaluates every argument (the lead value plus the grouped
// zero-or-more run) and collects the results into an array.
func list(s *tsexpr.Scope, args []value.Value) value.Value {
	var out []value.Value
	for _, a := range args {
		out = append(out, flattenEval(s, a)...)
	}
	return value.OfArray(out)
}

// opCat evaluates every argument, flattening any grouped (array) slot, and
// concatenates the default string form of every resulting scalar.
func opCat(s *tsexpr.Scope, args []value.Value) value.Value {
	var sb strings.Builder
	for _, a := range args {
		for _, v := range flattenEval(s, a) {
			sb.WriteString(v.String())
		}
	}
	return value.OfString(sb.String())
}

// flattenEval evaluates v; if it is a grouped slot (an Array of raw,
// unevaluated sub-expressions produced by EvalList's variadic packing), it
// evaluates and returns every element instead of the array as a whole.
func flattenEval(s *tsexpr.Scope, v value.Value) []value.Value {
	if v.Type() == value.Array {
		elems := v.Array()
		out := make([]value.Value, len(elems))
		for i, e := range elems {
			out[i] = s.SafeEval(e)
		}
		return out
	}
	return []value.Value{s.SafeEval(v)}
}

func interpolateFn(s *tsexpr.Scope, args []value.Value) value.Value {
	text := s.AssertArg(args, 0, value.String)
	return value.OfString(s.Interpolate(text.String()))
}

func parseFn(s *tsexpr.Scope, args []value.Value) value.Value {
	text := s.AssertArg(args, 0, value.String)
	parsed, err := s.ParseCall(text.String())
	if err != nil {
		return value.OfString(err.Error())
	}
	return parsed
}

func runFn(s *tsexpr.Scope, args []value.Value) value.Value {
	call := s.EvalArgSteal(args, 0)
	return s.EvalList(call.Array())
}

// matchFn implements "match arg with arg* default arg": the subject value,
// a grouped run of two-element [case, result] literal arrays, and a
// default. Each grouped case is raw data straight out of packSlots, not a
// call to dispatch - SafeEval-ing it whole would try to look up a function
// named after its first element - so only its two elements are evaluated,
// and only the first unconditionally. The first equal case's second
// element is evaluated and returned, falling back to the default if none
// match.
func matchFn(s *tsexpr.Scope, args []value.Value) value.Value {
	s.AssertMinArgs(args, 2)
	subject := s.EvalArgSteal(args, 0)
	defaultArg := args[len(args)-1]

	if len(args) > 2 {
		for _, c := range args[1].Array() {
			if c.Type() != value.Array || len(c.Array()) < 2 {
				continue
			}
			elems := c.Array()
			caseVal := s.SafeEval(elems[0])
			if subject.Equal(caseVal) {
				return s.SafeEval(elems[1])
			}
		}
	}
	return s.SafeEval(defaultArg)
}
