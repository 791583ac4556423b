package mpf

import "math/big"

// ln2At computes log(2) at the given precision from the hyperbolic
// arctangent series: log(2) = 2*atanh(1/3).
func ln2At(prec uint) *big.Float {
	guard := prec + 32
	sum := new(big.Float).SetPrec(guard)
	third := new(big.Float).SetPrec(guard).Quo(big.NewFloat(1), big.NewFloat(3))
	nineInv := new(big.Float).SetPrec(guard).Quo(big.NewFloat(1), big.NewFloat(9))

	x := new(big.Float).SetPrec(guard).Set(third)
	t := new(big.Float).SetPrec(guard)
	for k := 0; ; k++ {
		t.Quo(x, new(big.Float).SetInt64(int64(2*k+1)))
		sum.Add(sum, t)
		if t.Sign() == 0 || t.MantExp(nil) < -int(guard) {
			break
		}
		x.Mul(x, nineInv)
	}
	sum.Add(sum, sum)
	return sum.SetPrec(prec + 16)
}

// expSeries evaluates exp(r) by Taylor series for |r| < log(2).
func expSeries(r *big.Float, prec uint) *big.Float {
	guard := prec + 32
	sum := new(big.Float).SetPrec(guard).SetInt64(1)
	term := new(big.Float).SetPrec(guard).SetInt64(1)
	for k := int64(1); ; k++ {
		term.Mul(term, r)
		term.Quo(term, new(big.Float).SetInt64(k))
		sum.Add(sum, term)
		if term.Sign() == 0 || term.MantExp(nil) < -int(guard) {
			break
		}
	}
	return sum
}

// Exp sets z = exp(x). The argument is reduced against log(2) so the series
// converges quickly at any magnitude; exp(-inf) is zero and exp(+inf)
// infinite.
func (z *Float) Exp(x *Float) *Float {
	switch x.k {
	case nan:
		return z.setNaN()
	case inf:
		if x.neg {
			z.k = finite
			z.f.SetInt64(0)
			return z
		}
		return z.setInf(false)
	}

	prec := z.f.Prec()
	if prec < x.f.Prec() {
		prec = x.f.Prec()
	}
	guard := prec + 32

	// x = k*log(2) + r with k truncated toward zero, so |r| < log(2) and
	// exp(x) = 2^k * exp(r)
	ln2 := ln2At(guard)
	q := new(big.Float).SetPrec(guard).Quo(x.f, ln2)
	qi, _ := q.Int(nil)
	k64 := qi.Int64()

	r := new(big.Float).SetPrec(guard).SetInt(qi)
	r.Mul(r, ln2)
	r.Sub(new(big.Float).SetPrec(guard).Set(x.f), r)

	e := expSeries(r, prec)
	e.SetMantExp(e, int(k64))

	z.k = finite
	z.f.Set(e)
	return z
}

// Log sets z = log(x): log of zero is negative infinity, log of a negative
// value is NaN, and log of positive infinity passes through.
func (z *Float) Log(x *Float) *Float {
	switch {
	case nan == x.k:
		return z.setNaN()
	case inf == x.k:
		if x.neg {
			return z.setNaN()
		}
		return z.setInf(false)
	case x.IsZero():
		return z.setInf(true)
	case x.f.Sign() < 0:
		return z.setNaN()
	}

	prec := z.f.Prec()
	if prec < x.f.Prec() {
		prec = x.f.Prec()
	}
	guard := prec + 32

	// x = m * 2^e with m in [0.5, 1): log(x) = e*log(2) + log(m), and
	// log(m) = 2*atanh((m-1)/(m+1)) converges geometrically.
	mant := new(big.Float).SetPrec(guard)
	e := x.f.MantExp(mant)

	one := new(big.Float).SetPrec(guard).SetInt64(1)
	num := new(big.Float).SetPrec(guard).Sub(mant, one)
	den := new(big.Float).SetPrec(guard).Add(mant, one)
	t := new(big.Float).SetPrec(guard).Quo(num, den)

	t2 := new(big.Float).SetPrec(guard).Mul(t, t)
	sum := new(big.Float).SetPrec(guard)
	pow := new(big.Float).SetPrec(guard).Set(t)
	term := new(big.Float).SetPrec(guard)
	for k := 0; ; k++ {
		term.Quo(pow, new(big.Float).SetInt64(int64(2*k+1)))
		sum.Add(sum, term)
		if term.Sign() == 0 || term.MantExp(nil) < -int(guard) {
			break
		}
		pow.Mul(pow, t2)
	}
	sum.Add(sum, sum)

	ln2 := ln2At(guard)
	el := new(big.Float).SetPrec(guard).SetInt64(int64(e))
	el.Mul(el, ln2)
	sum.Add(sum, el)

	z.k = finite
	z.f.Set(sum)
	return z
}

// Pi sets z to the circle constant at the value's precision, by the Machin
// formula pi = 16*atan(1/5) - 4*atan(1/239).
func (z *Float) Pi() *Float {
	prec := z.f.Prec()
	guard := prec + 32

	atanInv := func(x int64) *big.Float {
		sum := new(big.Float).SetPrec(guard)
		invX2 := new(big.Float).SetPrec(guard).Quo(
			big.NewFloat(1), new(big.Float).SetInt64(x*x))
		pow := new(big.Float).SetPrec(guard).Quo(
			big.NewFloat(1), new(big.Float).SetInt64(x))
		term := new(big.Float).SetPrec(guard)
		for k := 0; ; k++ {
			term.Quo(pow, new(big.Float).SetInt64(int64(2*k+1)))
			if 0 == k&1 {
				sum.Add(sum, term)
			} else {
				sum.Sub(sum, term)
			}
			if term.MantExp(nil) < -int(guard) {
				break
			}
			pow.Mul(pow, invX2)
		}
		return sum
	}

	pi := new(big.Float).SetPrec(guard)
	a := atanInv(5)
	a.SetMantExp(a, 4) // *16
	b := atanInv(239)
	b.SetMantExp(b, 2) // *4
	pi.Sub(a, b)

	z.k = finite
	z.f.Set(pi)
	return z
}
