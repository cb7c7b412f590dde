package value

// The arithmetic and comparison helpers below are not used by the core
// evaluator - the spec treats them as exposed-but-stdlib-owned rules (see
// spec.md §4.1) - but they live here so that tsexpr/stdlib and any other
// client share one implementation of the promotion rule instead of
// reinventing it.
//
// Promotion: mixing Float with any other numeric promotes both to Float;
// mixing Int with Uint promotes both to Int. Arithmetic on any other
// non-numeric combination yields integer zero, preserving the original
// implementation's documented behavior; the only exceptions are a String on
// the left of Add (concatenation) or Multiply (repetition).

// Add returns v + v2. If v is a String, both are stringified and
// concatenated. Otherwise numeric promotion applies; non-numeric operands
// that reach this branch yield integer zero.
func (v Value) Add(v2 Value) Value {
	if v.vType == String {
		return OfString(v.s + v2.String())
	}
	return numericBinary(v, v2,
		func(a, b int64) Value { return OfInt(a + b) },
		func(a, b uint64) Value { return OfUint(a + b) },
		func(a, b float64) Value { return OfFloat(a + b) },
	)
}

// Subtract returns v - v2 under the same promotion rule as Add.
func (v Value) Subtract(v2 Value) Value {
	return numericBinary(v, v2,
		func(a, b int64) Value { return OfInt(a - b) },
		func(a, b uint64) Value { return OfUint(a - b) },
		func(a, b float64) Value { return OfFloat(a - b) },
	)
}

// Multiply returns v * v2. If v is a String, it is repeated v2.Int() times
// (0 or negative repeats produce "").
func (v Value) Multiply(v2 Value) Value {
	if v.vType == String {
		n := v2.Int()
		if n < 0 {
			n = 0
		}
		var sb []byte
		for i := int64(0); i < n; i++ {
			sb = append(sb, v.s...)
		}
		return OfString(string(sb))
	}
	return numericBinary(v, v2,
		func(a, b int64) Value { return OfInt(a * b) },
		func(a, b uint64) Value { return OfUint(a * b) },
		func(a, b float64) Value { return OfFloat(a * b) },
	)
}

// Divide returns v / v2. Integer division that would truncate falls back to
// float division, mirroring the original implementation.
func (v Value) Divide(v2 Value) Value {
	if !v.IsNumber() || !v2.IsNumber() {
		return OfInt(0)
	}
	if v.vType == Float || v2.vType == Float {
		return OfFloat(v.Float() / v2.Float())
	}
	if v.vType == Uint && v2.vType == Uint {
		if v2.u == 0 {
			return OfInt(0)
		}
		return OfUint(v.u / v2.u)
	}
	i1, i2 := v.Int(), v2.Int()
	if i2 == 0 {
		return OfInt(0)
	}
	if i1%i2 != 0 {
		return OfFloat(v.Float() / v2.Float())
	}
	return OfInt(i1 / i2)
}

// Negate returns the numeric negation of v.
func (v Value) Negate() Value {
	switch v.vType {
	case Float:
		return OfFloat(-v.f)
	case Uint:
		return OfInt(-int64(v.u))
	default:
		return OfInt(-v.Int())
	}
}

// Not returns the logical negation of v's truthiness.
func (v Value) Not() Value { return OfBool(!v.Truthy()) }

// And returns the logical AND of v and v2's truthiness.
func (v Value) And(v2 Value) Value { return OfBool(v.Truthy() && v2.Truthy()) }

// Or returns the logical OR of v and v2's truthiness.
func (v Value) Or(v2 Value) Value { return OfBool(v.Truthy() || v2.Truthy()) }

// EqualTo compares v to v2 using TunaScript-style semantics: v2 is coerced to
// v's type rather than doing a strict variant comparison (use Equal for
// that).
func (v Value) EqualTo(v2 Value) Value {
	switch v.vType {
	case String:
		return OfBool(v.s == v2.String())
	case Bool:
		return OfBool(v.b == v2.Bool())
	case Float:
		return OfBool(v.f == v2.Float())
	case Uint:
		return OfBool(v.u == v2.Uint())
	default:
		return OfBool(v.Int() == v2.Int())
	}
}

// LessThan compares v and v2 numerically.
func (v Value) LessThan(v2 Value) Value {
	if v.vType == Float || v2.vType == Float {
		return OfBool(v.Float() < v2.Float())
	}
	return OfBool(v.Int() < v2.Int())
}

// LessThanEqualTo compares v and v2 numerically.
func (v Value) LessThanEqualTo(v2 Value) Value {
	return OfBool(v.LessThan(v2).Bool() || v.EqualTo(v2).Bool())
}

// GreaterThan compares v and v2 numerically.
func (v Value) GreaterThan(v2 Value) Value {
	return OfBool(!v.LessThanEqualTo(v2).Bool())
}

// GreaterThanEqualTo compares v and v2 numerically.
func (v Value) GreaterThanEqualTo(v2 Value) Value {
	return OfBool(!v.LessThan(v2).Bool())
}

func numericBinary(
	v, v2 Value,
	intOp func(a, b int64) Value,
	uintOp func(a, b uint64) Value,
	floatOp func(a, b float64) Value,
) Value {
	if !v.IsNumber() || !v2.IsNumber() {
		// Non-numeric combination (string concatenation and repetition are
		// handled by Add and Multiply before reaching here): preserve the
		// original implementation's documented fallback of integer zero.
		return OfInt(0)
	}

	if v.vType == Float || v2.vType == Float {
		return floatOp(v.Float(), v2.Float())
	}
	if v.vType == Uint && v2.vType == Uint {
		return uintOp(v.u, v2.u)
	}
	return intOp(v.Int(), v2.Int())
}
