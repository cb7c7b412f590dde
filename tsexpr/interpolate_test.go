package tsexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/transcribble/tsexpr/value"
)

func Test_Scope_Interpolate_plainTextPassesThrough(t *testing.T) {
	s := NewScope(nil)
	assert.Equal(t, "nothing special here", s.Interpolate("nothing special here"))
}

func Test_Scope_Interpolate_embeddedCallIsEvaluated(t *testing.T) {
	s := NewScope(nil)
	s.SetUserVar("name", value.OfString("Fenn"))
	result := s.Interpolate("hello, [.name]!")
	assert.Equal(t, "hello, Fenn!", result)
}

func Test_Scope_Interpolate_multipleCallsAndText(t *testing.T) {
	s := NewScope(nil)
	_, err := s.BindFunction("double arg", func(s *Scope, args []value.Value) value.Value {
		return value.OfInt(2 * s.EvalArgSteal(args, 0).Int())
	})
	require.NoError(t, err)

	result := s.Interpolate("two doubled is [double 2] and three doubled is [double 3]")
	assert.Equal(t, "two doubled is 4 and three doubled is 6", result)
}

func Test_Scope_Parse_thenInterpolateParsed_canBeReused(t *testing.T) {
	s := NewScope(nil)
	s.SetUserVar("x", value.OfInt(1))

	p, err := s.Parse("x is [.x]")
	require.NoError(t, err)

	first := s.InterpolateParsed(p)
	s.SetUserVar("x", value.OfInt(2))
	second := s.InterpolateParsed(p)

	assert.Equal(t, "x is 1", first)
	assert.Equal(t, "x is 2", second)
}

func Test_Scope_ParseCall_parsesBareCallWithoutDelimiters(t *testing.T) {
	s := NewScope(nil)
	call, err := s.ParseCall("double 21")
	require.NoError(t, err)
	elems := call.Array()
	require.Len(t, elems, 2)
	assert.Equal(t, "double", elems[0].String())
}

func Test_Scope_Interpolate_parseErrorRoutesThroughErrorHandler(t *testing.T) {
	s := NewScope(nil)
	opts := s.Options()
	opts.StrictSyntax = true
	s.SetOptions(opts)
	s.OnError(func(s *Scope, msg string) string {
		return "<parse error>"
	})

	result := s.Interpolate("unterminated [call")
	assert.Equal(t, "<parse error>", result)
}
