package mpf

import "math/big"

// Add sets z = x + y with quiet-NaN semantics: opposite infinities produce
// NaN, a single infinity dominates.
func (z *Float) Add(x, y *Float) *Float {
	if nan == x.k || nan == y.k {
		return z.setNaN()
	}
	if inf == x.k || inf == y.k {
		if inf == x.k && inf == y.k && x.neg != y.neg {
			return z.setNaN()
		}
		if inf == x.k {
			return z.setInf(x.neg)
		}
		return z.setInf(y.neg)
	}
	z.k = finite
	z.f.Add(x.f, y.f)
	return z
}

// AddUI sets z = x + v.
func (z *Float) AddUI(x *Float, v uint64) *Float { return z.Add(x, New().SetUI(v)) }

// AddSI sets z = x + v.
func (z *Float) AddSI(x *Float, v int64) *Float { return z.Add(x, New().SetSI(v)) }

// Sub sets z = x - y.
func (z *Float) Sub(x, y *Float) *Float {
	return z.Add(x, New().Neg(y))
}

// SubUI sets z = x - v.
func (z *Float) SubUI(x *Float, v uint64) *Float { return z.Sub(x, New().SetUI(v)) }

// SubSI sets z = x - v.
func (z *Float) SubSI(x *Float, v int64) *Float { return z.Sub(x, New().SetSI(v)) }

// Mul sets z = x * y; infinity times zero is NaN.
func (z *Float) Mul(x, y *Float) *Float {
	if nan == x.k || nan == y.k {
		return z.setNaN()
	}
	if inf == x.k || inf == y.k {
		if x.IsZero() || y.IsZero() {
			return z.setNaN()
		}
		return z.setInf(x.IsNeg() != y.IsNeg())
	}
	z.k = finite
	z.f.Mul(x.f, y.f)
	return z
}

// MulUI sets z = x * v.
func (z *Float) MulUI(x *Float, v uint64) *Float { return z.Mul(x, New().SetUI(v)) }

// MulSI sets z = x * v.
func (z *Float) MulSI(x *Float, v int64) *Float { return z.Mul(x, New().SetSI(v)) }

// Mul2Exp sets z = x * 2^s.
func (z *Float) Mul2Exp(x *Float, s uint) *Float {
	if finite != x.k {
		return z.Set(x)
	}
	z.k = finite
	z.f.SetMantExp(x.f, int(s))
	return z
}

// Div2Exp sets z = x / 2^s.
func (z *Float) Div2Exp(x *Float, s uint) *Float {
	if finite != x.k {
		return z.Set(x)
	}
	z.k = finite
	z.f.SetMantExp(x.f, -int(s))
	return z
}

// Div sets z = x / y: division by zero yields a signed infinity, zero over
// zero and infinity over infinity yield NaN, and a finite value over an
// infinity collapses to zero.
func (z *Float) Div(x, y *Float) *Float {
	if nan == x.k || nan == y.k {
		return z.setNaN()
	}
	if inf == x.k {
		if inf == y.k {
			return z.setNaN()
		}
		return z.setInf(x.neg != (y.Sign() < 0))
	}
	if inf == y.k {
		z.k = finite
		z.f.SetInt64(0)
		return z
	}
	if y.IsZero() {
		if x.IsZero() {
			return z.setNaN()
		}
		return z.setInf(x.f.Sign() < 0)
	}
	z.k = finite
	z.f.Quo(x.f, y.f)
	return z
}

// DivUI sets z = x / v.
func (z *Float) DivUI(x *Float, v uint64) *Float { return z.Div(x, New().SetUI(v)) }

// DivSI sets z = x / v.
func (z *Float) DivSI(x *Float, v int64) *Float { return z.Div(x, New().SetSI(v)) }

// Sqrt sets z to the square root of x; negative input yields NaN and a
// positive infinity passes through.
func (z *Float) Sqrt(x *Float) *Float {
	switch {
	case nan == x.k:
		return z.setNaN()
	case inf == x.k:
		if x.neg {
			return z.setNaN()
		}
		return z.setInf(false)
	case x.f.Sign() < 0:
		return z.setNaN()
	}
	z.k = finite
	z.f.Sqrt(x.f)
	return z
}

// SqrtUI sets z to the square root of v.
func (z *Float) SqrtUI(v uint64) *Float { return z.Sqrt(New().SetUI(v)) }

// PowUI sets z = x^e by binary exponentiation; x^0 is one for every x
// including NaN and infinities, and an infinity raised to a positive power
// keeps the parity of its sign.
func (z *Float) PowUI(x *Float, e uint64) *Float {
	if 0 == e {
		return z.SetUI(1)
	}
	if nan == x.k {
		return z.setNaN()
	}
	if inf == x.k {
		return z.setInf(x.neg && 1 == e&1)
	}

	result := New().SetUI(1)
	base := New().Set(x)
	for e != 0 {
		if e&1 != 0 {
			result.Mul(result, base)
		}
		base.Mul(base, base)
		e >>= 1
	}
	return z.Set(result)
}

// Floor sets z to the largest integer not above x.
func (z *Float) Floor(x *Float) *Float {
	if finite != x.k {
		return z.Set(x)
	}
	z.k = finite
	i, acc := x.f.Int(nil)
	z.f.SetInt(i)
	if acc == big.Above && x.f.Sign() < 0 {
		// Truncation rounded toward zero; step down for negatives
		z.f.Sub(z.f, big.NewFloat(1))
	}
	return z
}
