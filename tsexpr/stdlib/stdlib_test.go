package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/transcribble/tsexpr"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

func newTestScope(t *testing.T) *tsexpr.Scope {
	t.Helper()
	s := tsexpr.NewScope(nil)
	require.NoError(t, Register(s))
	require.NoError(t, RegisterDefine(s))
	return s
}

func Test_Register_ifThenElse(t *testing.T) {
	s := newTestScope(t)
	assert.Equal(t, "yes", s.Interpolate("[if true then yes else no]"))
	assert.Equal(t, "no", s.Interpolate("[if false then yes else no]"))
	assert.Equal(t, "yes", s.Interpolate("[true ? yes : no]"))
}

func Test_Register_comparisons(t *testing.T) {
	testCases := []struct {
		name   string
		call   string
		expect string
	}{
		{name: "eq true", call: "[1 == 1]", expect: "true"},
		{name: "eq false", call: "[1 == 2]", expect: "false"},
		{name: "neq", call: "[1 != 2]", expect: "true"},
		{name: "gt", call: "[3 > 2]", expect: "true"},
		{name: "ge equal", call: "[2 >= 2]", expect: "true"},
		{name: "lt", call: "[1 < 2]", expect: "true"},
		{name: "le equal", call: "[2 <= 2]", expect: "true"},
		{name: "not", call: "[not false]", expect: "true"},
		{name: "eq word form", call: "[1 eq 1]", expect: "true"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestScope(t)
			assert.Equal(t, tc.expect, s.Interpolate(tc.call))
		})
	}
}

func Test_Register_arithmetic(t *testing.T) {
	testCases := []struct {
		name   string
		call   string
		expect string
	}{
		{name: "add", call: "[1 + 2]", expect: "3"},
		{name: "subtract", call: "[5 - 2]", expect: "3"},
		{name: "multiply", call: "[3 * 4]", expect: "12"},
		{name: "divide exact", call: "[10 / 2]", expect: "5"},
		{name: "modulo", call: "[10 % 3]", expect: "1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestScope(t)
			assert.Equal(t, tc.expect, s.Interpolate(tc.call))
		})
	}
}

func Test_Register_and_shortCircuits(t *testing.T) {
	s := newTestScope(t)
	var evaluated bool
	_, err := s.BindFunction("poison", func(s *tsexpr.Scope, args []value.Value) value.Value {
		evaluated = true
		return value.OfBool(true)
	})
	require.NoError(t, err)

	result := s.Interpolate("[false and [poison]]")
	assert.Equal(t, "false", result)
	assert.False(t, evaluated, "and must short-circuit before evaluating later operands")
}

func Test_Register_listAndCat(t *testing.T) {
	s := newTestScope(t)
	assert.Equal(t, "567", s.Interpolate("[5,6,7]"))
	assert.Equal(t, "abcd", s.Interpolate("[cat a, b, c and d]"))
}

func Test_Register_typeOfAndSizeOf(t *testing.T) {
	s := newTestScope(t)
	assert.Equal(t, "string", s.Interpolate("[type-of hello]"))
	assert.Equal(t, "5", s.Interpolate("[size-of hello]"))
	assert.Equal(t, "5", s.Interpolate("[# hello]"))
}

func Test_Register_matchFn(t *testing.T) {
	s := newTestScope(t)
	result := s.Interpolate("[match 2 with [1 one] with [2 two] default other]")
	assert.Equal(t, "two", result)

	resultDefault := s.Interpolate("[match 9 with [1 one] with [2 two] default other]")
	assert.Equal(t, "other", resultDefault)
}

func Test_RegisterDefine_userFunctionBinding(t *testing.T) {
	s := newTestScope(t)
	s.Interpolate("[define [a <> b] as [not [a == b]]]")
	result := s.Interpolate("[1 <> 2]")
	assert.Equal(t, "true", result)
}

// The following seed scenarios are the concrete end-to-end scenarios named
// in spec.md's testable-properties section, carried over from
// original_source/translator/src/main.cpp's translator_f test fixture
// (user_vars_work, unnamed_test_1, can_bind_different_functions_with_same_prefix,
// fluent_features_lol) so a regression in dispatch, grouping, or the
// "number" type alias is caught the same way the original's suite catches it.

func Test_Scenario_killedMonstersPluralizes(t *testing.T) {
	s := newTestScope(t)
	const tmpl = "Killed [.kills] [ [.kills == 1] ? monster. : monsters. ]"

	s.SetUserVar("kills", value.OfInt(2))
	assert.Equal(t, "Killed 2 monsters.", s.Interpolate(tmpl))

	s.SetUserVar("kills", value.OfInt(1))
	assert.Equal(t, "Killed 1 monster.", s.Interpolate(tmpl))
}

func Test_Scenario_listAndCatVariants(t *testing.T) {
	s := newTestScope(t)
	assert.Equal(t, "567", s.Interpolate("[5,6,7]"))
	assert.Equal(t, "[5 6 7]", s.Interpolate("[list 5,6,7]"))
	assert.Equal(t, "abcd", s.Interpolate("[cat a, b, c and d]"))
}

func Test_Scenario_killsIsNumber(t *testing.T) {
	s := newTestScope(t)
	s.SetUserVar("kills", value.OfInt(25))
	assert.Equal(t, "true", s.Interpolate("[.kills is number]"))
}

func Test_Scenario_sameCallableBoundUnderThreeDistinctSignaturesYieldsDistinctDefinitions(t *testing.T) {
	s := newTestScope(t)
	a, err := s.BindFunction("a arg", ifThenElse)
	require.NoError(t, err)
	b, err := s.BindFunction("a arg b arg", ifThenElse)
	require.NoError(t, err)
	c, err := s.BindFunction("a arg b arg c arg", ifThenElse)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, b.ID(), c.ID())
	assert.NotEqual(t, a.ID(), c.ID())
}

func Test_Scenario_fluentStyleTemplate(t *testing.T) {
	s := newTestScope(t)
	_, err := s.BindFunction("arg 1? arg else arg", func(cs *tsexpr.Scope, args []value.Value) value.Value {
		num := cs.EvalArgSteal(args, 0)
		if num.Int() == 1 {
			return cs.EvalArgSteal(args, 1)
		}
		return cs.EvalArgSteal(args, 2)
	})
	require.NoError(t, err)

	const tmpl = `[.userName] [.photoCount
		1? "added a new photo"
		else ["added ", .photoCount, " new photos"]
	] to [
		match .userGender
		with [male "his stream"]
		with [female "her stream"]
		default "their stream"
	].`

	s.SetUserVar("userName", value.OfString("Ghassan"))
	s.SetUserVar("photoCount", value.OfInt(1))
	s.SetUserVar("userGender", value.OfString("female"))
	assert.Equal(t, "Ghassan added a new photo to her stream.", s.Interpolate(tmpl))

	s.SetUserVar("userName", value.OfString("Steve"))
	s.SetUserVar("photoCount", value.OfInt(3))
	s.SetUserVar("userGender", value.OfString("male"))
	assert.Equal(t, "Steve added 3 new photos to his stream.", s.Interpolate(tmpl))

	s.SetUserVar("userName", value.OfString("Xen"))
	s.SetUserVar("photoCount", value.OfInt(0))
	s.SetUserVar("userGender", value.OfString("non-binary"))
	assert.Equal(t, "Xen added 0 new photos to their stream.", s.Interpolate(tmpl))
}
