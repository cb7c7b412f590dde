package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_modifierOf(t *testing.T) {
	testCases := []struct {
		name   string
		token  string
		expect Modifier
	}{
		{name: "no suffix", token: "arg", expect: None},
		{name: "optional suffix", token: "arg?", expect: Optional},
		{name: "zero or more suffix", token: "arg*", expect: ZeroOrMore},
		{name: "one or more suffix", token: "arg+", expect: OneOrMore},
		{name: "empty token", token: "", expect: None},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, modifierOf(tc.token))
		})
	}
}

func Test_Modifier_String(t *testing.T) {
	assert.Equal(t, "", None.String())
	assert.Equal(t, "?", Optional.String())
	assert.Equal(t, "*", ZeroOrMore.String())
	assert.Equal(t, "+", OneOrMore.String())
}
