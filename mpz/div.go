package mpz

import "fmt"

// DivQR computes the Euclidean division of n by d, returning q and r with
// n = q*d + r and 0 <= r < |d|.
func DivQR(n, d *Int) (q, r *Int, err error) {
	if 0 == d.used {
		return nil, nil, fmt.Errorf("integer division by zero")
	}

	qm, rm := natDivmod(n.mag(), d.mag())

	q = New().setNat(qm, (n.used < 0) != (d.used < 0))
	r = New().setNat(rm, false)

	if n.used < 0 && !r.IsZero() {
		// Truncated toward zero; shift to a non-negative remainder
		q.AddUI(New().Abs(q), 1)
		if d.used >= 0 {
			q.Neg(q)
		}
		r.Sub(New().Abs(d), r)
	}

	return q, r, nil
}

// Div sets q and r to the Euclidean quotient and remainder of n / d.
func Div(q, r, n, d *Int) error {
	qq, rr, err := DivQR(n, d)
	if err != nil {
		return err
	}
	if q != nil {
		q.Copy(qq)
	}
	if r != nil {
		r.Copy(rr)
	}
	return nil
}

// Mod sets out = in mod m with 0 <= out < |m|.
func Mod(out, in, m *Int) error {
	return Div(nil, out, in, m)
}

// ModUI returns in mod m for a single-limb modulus.
func ModUI(in *Int, m uint64) (uint64, error) {
	if 0 == m {
		return 0, fmt.Errorf("integer division by zero")
	}
	_, r := natDivmod(in.mag(), []uint64{m})
	var rem uint64
	if len(r) > 0 {
		rem = r[0]
	}
	if in.used < 0 && rem != 0 {
		rem = m - rem
	}
	return rem, nil
}

// GCD sets g to the non-negative greatest common divisor of a and b.
func GCD(g, a, b *Int) {
	x := New().Abs(a)
	y := New().Abs(b)

	for !y.IsZero() {
		_, r, _ := DivQR(x, y)
		x, y = y, r
	}
	g.Copy(x)
}

// XGCD computes g = gcd(a, b) together with Bezout coefficients x and y such
// that a*x + b*y = g with g >= 0. Inputs of either order are accepted.
func XGCD(a, b, g, x, y *Int) {
	// Iterative extended Euclid on the absolute values
	r0 := New().Abs(a)
	r1 := New().Abs(b)
	s0 := NewSetUI(1)
	s1 := New()
	t0 := New()
	t1 := NewSetUI(1)

	for !r1.IsZero() {
		q, r, _ := DivQR(r0, r1)

		r0, r1 = r1, r
		s0, s1 = s1, New().Sub(s0, New().Mul(q, s1))
		t0, t1 = t1, New().Sub(t0, New().Mul(q, t1))
	}

	g.Copy(r0)
	x.Copy(s0)
	y.Copy(t0)

	// Undo the absolute-value folding
	if a.used < 0 {
		x.Neg(x)
	}
	if b.used < 0 {
		y.Neg(y)
	}
}

// InvMod sets out to the inverse of a modulo m, with 0 <= out < |m|. It
// fails when gcd(a, m) != 1. A unit modulus yields zero.
func InvMod(out, a, m *Int) error {
	if 0 == m.used {
		return fmt.Errorf("inverse with zero modulus")
	}

	mAbs := New().Abs(m)
	if mAbs.IsOne() {
		out.SetUI(0)
		return nil
	}
	if 0 == a.used {
		return fmt.Errorf("zero is not invertible")
	}

	g := New()
	x := New()
	y := New()
	XGCD(a, mAbs, g, x, y)

	if !g.IsOne() {
		return fmt.Errorf("inverse does not exist, gcd is %s", g.String())
	}

	return Mod(out, x, mAbs)
}
