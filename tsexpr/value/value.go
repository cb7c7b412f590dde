// Package value implements the dynamically-typed Value used throughout
// tsexpr: the parsed call tree, variable bindings, and function arguments
// and results are all Values.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Type identifies which variant of Value is active.
type Type int

const (
	Null Type = iota
	Bool
	Int
	Uint
	Float
	String
	Array
	Binary

	// Discarded is a sentinel used only by type-assertion APIs to mean "any
	// type is acceptable". It is never the type of a stored Value.
	Discarded
)

func (t Type) String() string {
	switch t {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Binary:
		return "binary"
	case Discarded:
		return "any"
	default:
		return "unknown"
	}
}

// Value is a tagged variant. Exactly one of its fields is meaningful at any
// time, selected by vType. Values are copied by value; Array payloads share
// backing storage the way a Go slice normally does.
type Value struct {
	vType Type
	b     bool
	i     int64
	u     uint64
	f     float64
	s     string
	arr   []Value
	bin   []byte
}

// OfNull returns the null Value.
func OfNull() Value { return Value{vType: Null} }

// OfBool returns a Value holding a bool.
func OfBool(b bool) Value { return Value{vType: Bool, b: b} }

// OfInt returns a Value holding a signed integer.
func OfInt(i int64) Value { return Value{vType: Int, i: i} }

// OfUint returns a Value holding an unsigned integer.
func OfUint(u uint64) Value { return Value{vType: Uint, u: u} }

// OfFloat returns a Value holding a float64.
func OfFloat(f float64) Value { return Value{vType: Float, f: f} }

// OfString returns a Value holding a string.
func OfString(s string) Value { return Value{vType: String, s: s} }

// OfArray returns a Value holding an ordered sequence of Values.
func OfArray(elems []Value) Value { return Value{vType: Array, arr: elems} }

// OfBinary returns a Value holding an opaque byte payload. The parser never
// produces this variant; it exists for host code to pass foreign data
// through the evaluator untouched.
func OfBinary(b []byte) Value { return Value{vType: Binary, bin: b} }

// Of constructs a Value from a Go primitive; nil becomes null. It panics if
// v is not nil or one of bool, int64 (or int), uint64, float64, string,
// []Value, or []byte - it is
// meant for call sites that already know the shape of what they are boxing.
func Of(v any) Value {
	switch typed := v.(type) {
	case bool:
		return OfBool(typed)
	case int:
		return OfInt(int64(typed))
	case int64:
		return OfInt(typed)
	case uint64:
		return OfUint(typed)
	case float64:
		return OfFloat(typed)
	case string:
		return OfString(typed)
	case []Value:
		return OfArray(typed)
	case []byte:
		return OfBinary(typed)
	case nil:
		return OfNull()
	default:
		panic(fmt.Sprintf("value.Of: unsupported Go type %T", v))
	}
}

// Type returns the active variant tag.
func (v Value) Type() Type { return v.vType }

// IsNumber returns whether v is Int, Uint, or Float.
func (v Value) IsNumber() bool {
	return v.vType == Int || v.vType == Uint || v.vType == Float
}

// Truthy returns the Value's boolean interpretation: null is false, bool is
// itself, and every other variant - including empty strings and arrays - is
// true.
func (v Value) Truthy() bool {
	switch v.vType {
	case Null:
		return false
	case Bool:
		return v.b
	default:
		return true
	}
}

// Size returns the string's byte length, the array's element count, or 0 for
// every other variant.
func (v Value) Size() int {
	switch v.vType {
	case String:
		return len(v.s)
	case Array:
		return len(v.arr)
	default:
		return 0
	}
}

// Equal returns whether v and o have the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.vType != o.vType {
		return false
	}
	switch v.vType {
	case Null:
		return true
	case Bool:
		return v.b == o.b
	case Int:
		return v.i == o.i
	case Uint:
		return v.u == o.u
	case Float:
		return v.f == o.f
	case String:
		return v.s == o.s
	case Binary:
		return string(v.bin) == string(o.bin)
	case Array:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Bool coerces v to a plain Go bool using Truthy.
func (v Value) Bool() bool { return v.Truthy() }

// Int coerces v to int64. Floats round to nearest, unparsable strings yield
// 0, true is 1 and false is 0.
func (v Value) Int() int64 {
	switch v.vType {
	case Int:
		return v.i
	case Uint:
		return int64(v.u)
	case Float:
		return int64(v.f + sign(v.f)*0.5)
	case String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case Bool:
		if v.b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

// Uint coerces v to uint64 the same way Int does, clamping negatives to 0.
func (v Value) Uint() uint64 {
	if v.vType == Uint {
		return v.u
	}
	i := v.Int()
	if i < 0 {
		return 0
	}
	return uint64(i)
}

// Float coerces v to float64. Unparsable strings yield 0, true is 1.0.
func (v Value) Float() float64 {
	switch v.vType {
	case Float:
		return v.f
	case Int:
		return float64(v.i)
	case Uint:
		return float64(v.u)
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0
		}
		return f
	case Bool:
		if v.b {
			return 1.0
		}
		return 0.0
	default:
		return 0
	}
}

// Array returns the element slice if v is an Array, else nil.
func (v Value) Array() []Value {
	if v.vType == Array {
		return v.arr
	}
	return nil
}

// Binary returns the byte payload if v is Binary, else nil.
func (v Value) Binary() []byte {
	if v.vType == Binary {
		return v.bin
	}
	return nil
}

// String implements the default stringification policy: string returns its
// raw characters, binary returns the literal text "<binary>", null returns
// "<null>", array is bracket-delimited and space-joined, and bool/number use
// their shortest unambiguous textual form.
func (v Value) String() string {
	switch v.vType {
	case Null:
		return "<null>"
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Uint:
		return strconv.FormatUint(v.u, 10)
	case Float:
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		return s
	case String:
		return v.s
	case Binary:
		return "<binary>"
	case Array:
		parts := make([]string, len(v.arr))
		for i := range v.arr {
			parts[i] = v.arr[i].String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return ""
	}
}
