package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/transcribble/tsexpr/lex"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

type fn func(args []value.Value) value.Value

func bind(t *testing.T, r *Registry[fn], sigStr string, f fn) {
	t.Helper()
	_, err := r.Bind(sigStr, f, lex.Default())
	require.NoError(t, err)
}

func strs(ss ...string) []value.Value {
	out := make([]value.Value, len(ss))
	for i, s := range ss {
		out[i] = value.OfString(s)
	}
	return out
}

func Test_Registry_Bind_and_Find_prefixNoArgs(t *testing.T) {
	r := NewRegistry[fn]()
	bind(t, r, "ping", func(args []value.Value) value.Value { return value.OfString("pong") })

	matches := r.Find(strs("ping"), false)
	require.Len(t, matches, 1)
	assert.Equal(t, "ping", matches[0].Signature)
}

func Test_Registry_Bind_and_Find_prefixFixedArity(t *testing.T) {
	r := NewRegistry[fn]()
	bind(t, r, "add arg to arg", nil)

	args := []value.Value{value.OfString("add"), value.OfInt(1), value.OfString("to"), value.OfInt(2)}
	matches := r.Find(args, false)
	require.Len(t, matches, 1)
	assert.Equal(t, "add arg to arg", matches[0].Signature)
}

func Test_Registry_Bind_and_Find_infix(t *testing.T) {
	r := NewRegistry[fn]()
	bind(t, r, "arg == arg", nil)

	args := []value.Value{value.OfInt(1), value.OfString("=="), value.OfInt(2)}
	matches := r.Find(args, false)
	require.Len(t, matches, 1)
	assert.Equal(t, "arg == arg", matches[0].Signature)
}

func Test_Registry_Bind_rebindSameSignatureOverwritesCallablePreservingID(t *testing.T) {
	r := NewRegistry[fn]()
	first, err := r.Bind("ping", func(args []value.Value) value.Value { return value.OfString("pong") }, lex.Default())
	require.NoError(t, err)

	second, err := r.Bind("ping", func(args []value.Value) value.Value { return value.OfString("new pong") }, lex.Default())
	require.NoError(t, err)

	assert.Same(t, first, second, "rebinding the same canonical signature must return the existing Definition")
	assert.Equal(t, first.ID(), second.ID())

	matches := r.Find(strs("ping"), false)
	require.Len(t, matches, 1)
	assert.Equal(t, value.OfString("new pong"), matches[0].Fn(nil))
}

func Test_Registry_Bind_rebindSameInfixSignatureOverwritesCallablePreservingID(t *testing.T) {
	r := NewRegistry[fn]()
	first, err := r.Bind("arg == arg", func(args []value.Value) value.Value { return value.OfBool(true) }, lex.Default())
	require.NoError(t, err)

	second, err := r.Bind("arg == arg", func(args []value.Value) value.Value { return value.OfBool(false) }, lex.Default())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, first.ID(), second.ID())

	args := []value.Value{value.OfInt(1), value.OfString("=="), value.OfInt(2)}
	matches := r.Find(args, false)
	require.Len(t, matches, 1)
	assert.Equal(t, value.OfBool(false), matches[0].Fn(nil))
}

func Test_Registry_Bind_infixFirstParamWithModifierErrors(t *testing.T) {
	r := NewRegistry[fn]()
	_, err := r.Bind("arg* == arg", nil, lex.Default())
	assert.Error(t, err)
}

func Test_Registry_FindMatches_variadicGrouping(t *testing.T) {
	r := NewRegistry[fn]()
	bind(t, r, "arg , arg+", nil)

	// "a" "," "b" "," "c" "," "d"
	args := []value.Value{
		value.OfString("a"), value.OfString(","),
		value.OfString("b"), value.OfString(","),
		value.OfString("c"), value.OfString(","),
		value.OfString("d"),
	}
	matches := r.FindMatches(args, false)
	require.Len(t, matches, 1)
	m := matches[0]
	require.Len(t, m.Slots, 2)
	assert.Equal(t, Modifier(None), m.Slots[0].Modifier)
	assert.Equal(t, []int{0}, m.Slots[0].Values)
	assert.Equal(t, OneOrMore, m.Slots[1].Modifier)
	assert.Equal(t, []int{2, 4, 6}, m.Slots[1].Values)
}

func Test_Registry_Find_zeroMatchesWhenNoSignatureFits(t *testing.T) {
	r := NewRegistry[fn]()
	bind(t, r, "ping", nil)

	matches := r.Find(strs("pong"), false)
	assert.Len(t, matches, 0)
}

func Test_Registry_Find_fallsBackToParent(t *testing.T) {
	parent := NewRegistry[fn]()
	bind(t, parent, "ping", nil)

	child := NewRegistry[fn]()
	child.Parent = parent

	matches := child.Find(strs("ping"), false)
	assert.Len(t, matches, 1)
}

func Test_Registry_Find_localOnlyIgnoresParent(t *testing.T) {
	parent := NewRegistry[fn]()
	bind(t, parent, "ping", nil)

	child := NewRegistry[fn]()
	child.Parent = parent

	matches := child.Find(strs("ping"), true)
	assert.Len(t, matches, 0)
}

func Test_Registry_Suggest(t *testing.T) {
	r := NewRegistry[fn]()
	bind(t, r, "add arg to arg", nil)
	bind(t, r, "subtract arg from arg", nil)

	suggestions := r.Suggest("add")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "add arg to arg", suggestions[0])

	assert.Empty(t, r.Suggest("nonexistent"))
}

func Test_Registry_optionalSlotMatchesWhenOmitted(t *testing.T) {
	r := NewRegistry[fn]()
	bind(t, r, "greet arg?", nil)

	matches := r.FindMatches(strs("greet"), false)
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Slots, 1)
	assert.Equal(t, Optional, matches[0].Slots[0].Modifier)
	assert.Empty(t, matches[0].Slots[0].Values)
}
