package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Value_Truthy(t *testing.T) {
	testCases := []struct {
		name   string
		v      Value
		expect bool
	}{
		{name: "null is false", v: OfNull(), expect: false},
		{name: "false bool is false", v: OfBool(false), expect: false},
		{name: "true bool is true", v: OfBool(true), expect: true},
		{name: "zero int is true", v: OfInt(0), expect: true},
		{name: "empty string is true", v: OfString(""), expect: true},
		{name: "empty array is true", v: OfArray(nil), expect: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.v.Truthy())
		})
	}
}

func Test_Value_Equal(t *testing.T) {
	testCases := []struct {
		name   string
		a, b   Value
		expect bool
	}{
		{name: "same ints", a: OfInt(5), b: OfInt(5), expect: true},
		{name: "different ints", a: OfInt(5), b: OfInt(6), expect: false},
		{name: "int vs uint never equal despite same magnitude", a: OfInt(5), b: OfUint(5), expect: false},
		{name: "equal strings", a: OfString("hi"), b: OfString("hi"), expect: true},
		{name: "equal arrays", a: OfArray([]Value{OfInt(1), OfInt(2)}), b: OfArray([]Value{OfInt(1), OfInt(2)}), expect: true},
		{name: "arrays differing length", a: OfArray([]Value{OfInt(1)}), b: OfArray([]Value{OfInt(1), OfInt(2)}), expect: false},
		{name: "null equals null", a: OfNull(), b: OfNull(), expect: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.a.Equal(tc.b))
		})
	}
}

func Test_Value_Int_coercion(t *testing.T) {
	testCases := []struct {
		name   string
		v      Value
		expect int64
	}{
		{name: "int is itself", v: OfInt(42), expect: 42},
		{name: "float rounds to nearest", v: OfFloat(3.6), expect: 4},
		{name: "negative float rounds to nearest", v: OfFloat(-3.6), expect: -4},
		{name: "true is 1", v: OfBool(true), expect: 1},
		{name: "false is 0", v: OfBool(false), expect: 0},
		{name: "parsable string", v: OfString("123"), expect: 123},
		{name: "unparsable string is 0", v: OfString("nope"), expect: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.v.Int())
		})
	}
}

func Test_Value_String(t *testing.T) {
	testCases := []struct {
		name   string
		v      Value
		expect string
	}{
		{name: "null", v: OfNull(), expect: "<null>"},
		{name: "true", v: OfBool(true), expect: "true"},
		{name: "false", v: OfBool(false), expect: "false"},
		{name: "int", v: OfInt(-8), expect: "-8"},
		{name: "float drops trailing zeros", v: OfFloat(1.50), expect: "1.5"},
		{name: "string is raw", v: OfString("hello"), expect: "hello"},
		{name: "array is bracketed and space joined", v: OfArray([]Value{OfInt(1), OfInt(2)}), expect: "[1 2]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.v.String())
		})
	}
}

func Test_Value_Of_panicsOnUnsupportedType(t *testing.T) {
	assert.Panics(t, func() {
		Of(struct{}{})
	})
}

func Test_Value_Size(t *testing.T) {
	assert.Equal(t, 5, OfString("hello").Size())
	assert.Equal(t, 3, OfArray([]Value{OfNull(), OfNull(), OfNull()}).Size())
	assert.Equal(t, 0, OfInt(123).Size())
}
