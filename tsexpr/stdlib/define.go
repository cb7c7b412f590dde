package stdlib

import (
	"strings"

	"github.com/dekarrin/transcribble/tsexpr"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

// RegisterDefine binds the "define ... as ..." and "... => ..." function
// -definition sugar into s: a call made of bareword tokens is read as a
// signature pattern whose tokens double as the parameter names a new
// user-level function binds into a child scope before evaluating its body.
// Grounded in main.cpp's defining_functions_in_code_works test:
// "define [a <> b] as [not [.a == .b]]" and the equivalent
// "[a != b] => [not [.a == .b]]" infix spelling - both are standard-library
// sugar over Scope.BindFunction, not core-language features, mirroring
// how the original keeps this out of the core context type entirely.
func RegisterDefine(s *tsexpr.Scope) error {
	_, err := s.BindFunction("define arg as arg", func(cs *tsexpr.Scope, args []value.Value) value.Value {
		return defineUserFunction(cs, args[0], args[1])
	})
	if err != nil {
		return err
	}
	_, err = s.BindFunction("arg => arg", func(cs *tsexpr.Scope, args []value.Value) value.Value {
		return defineUserFunction(cs, args[0], args[1])
	})
	return err
}

func defineUserFunction(s *tsexpr.Scope, pattern, body value.Value) value.Value {
	// pattern is the raw, unevaluated token list naming the new function's
	// signature - it must never be run through SafeEval, since its tokens
	// (e.g. "a <> b") describe a signature that doesn't exist to dispatch
	// against yet.
	tokens := pattern.Array()
	if tokens == nil {
		// A bareword call with exactly one token parses as a plain string,
		// not a one-element array; treat it the same as a one-token
		// pattern so "define ping as [pong]" (a no-argument function)
		// still works.
		tokens = []value.Value{pattern}
	}

	names := paramNames(tokens)
	specStr := stringifyTokens(tokens)

	_, err := s.BindFunction(specStr, func(cs *tsexpr.Scope, callArgs []value.Value) value.Value {
		child := tsexpr.NewScope(cs)
		for i, name := range names {
			if i < len(callArgs) {
				child.SetUserVar(name, cs.SafeEval(callArgs[i]), true)
			}
		}
		return child.SafeEval(body)
	})
	if err != nil {
		return value.OfString(err.Error())
	}
	return value.OfString(specStr)
}

func paramNames(tokens []value.Value) []string {
	n := len(tokens)
	if n == 0 {
		return nil
	}
	infix := n%2 == 1
	var names []string
	if infix {
		names = append(names, tokens[0].String())
	}
	start := 0
	if infix {
		start = 1
	}
	for i := start; i < n; i += 2 {
		if i+1 < n {
			names = append(names, tokens[i+1].String())
		}
	}
	return names
}

func stringifyTokens(tokens []value.Value) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
