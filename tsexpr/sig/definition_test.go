package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/transcribble/tsexpr/lex"
)

func Test_Definition_ID_isStableAndUnique(t *testing.T) {
	r := NewRegistry[fn]()
	d1, err := r.Bind("ping", nil, lex.Default())
	assert.NoError(t, err)
	d2, err := r.Bind("pong", nil, lex.Default())
	assert.NoError(t, err)

	assert.NotEqual(t, d1.ID(), d2.ID())
	assert.Equal(t, d1.ID(), d1.ID())
}
