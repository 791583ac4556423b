package mpz

import (
	"fmt"
	"math/bits"
)

// BarrettMod is a single-limb modulus context: the modulus, its Barrett-style
// reciprocal and the normalization shift, built once per prime.
type BarrettMod struct {
	M    uint64
	MInv uint64
	Norm uint
}

// NewMod builds a modulus context for m.
func NewMod(m uint64) (*BarrettMod, error) {
	if 0 == m {
		return nil, fmt.Errorf("modulus context for zero modulus")
	}
	norm := uint(bits.LeadingZeros64(m))
	mn := m << norm
	// Reciprocal of the normalized modulus: floor((2^128 - 1)/mn) - 2^64
	inv, _ := bits.Div64(^mn, ^uint64(0), mn)
	return &BarrettMod{M: m, MInv: inv, Norm: norm}, nil
}

// Red reduces a single limb.
func (mod *BarrettMod) Red(x uint64) uint64 { return x % mod.M }

// AddMod returns (a + b) mod m.
func (mod *BarrettMod) AddMod(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 || s >= mod.M {
		s -= mod.M
	}
	return s
}

// SubMod returns (a - b) mod m for a, b < m.
func (mod *BarrettMod) SubMod(a, b uint64) uint64 {
	d, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		d += mod.M
	}
	return d
}

// MulMod returns (a * b) mod m.
func (mod *BarrettMod) MulMod(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a%mod.M, b%mod.M)
	_, r := bits.Div64(hi, lo, mod.M)
	return r
}

// BarrettMu computes the reduction constant mu = floor(b^(2k) / m) for the
// limb base b, for use with ModBarrett on moduli of k limbs.
func BarrettMu(m *Int, k int) (*Int, error) {
	if m.IsZero() {
		return nil, fmt.Errorf("barrett constant for zero modulus")
	}
	b2k := New().SetUI(1)
	b2k.Mul2Exp(b2k, uint(128*k))
	mu, _, err := DivQR(b2k, m)
	if err != nil {
		return nil, err
	}
	return mu, nil
}

// ModBarrett sets out = in mod m using the precomputed reciprocal mu for a
// modulus of at most k limbs: two coarse quotient shifts, two multiplies, and
// at most a short run of final subtractions.
func ModBarrett(out, in, m *Int, k int, mu *Int) {
	temp := New()
	q := New()

	// q1 = floor(in / b^(k-1)), q2 = q1 * mu, q3 = floor(q2 / b^(k+1))
	q.DivQuo2Exp(in, uint(64*(k-1)))
	temp.Mul(q, mu)
	q.DivQuo2Exp(temp, uint(64*(k+1)))

	// r = (in mod b^(k+1)) - (q3 * m mod b^(k+1))
	temp.Mul(q, m)
	r1 := New().Copy(in)
	if abs(r1.Size()) > k+1 {
		r1.SetSize(k + 1)
	}
	if abs(temp.Size()) > k+1 {
		temp.SetSize(k + 1)
	}
	out.Sub(r1, temp)

	if out.IsNeg() {
		shift := New().SetUI(1)
		shift.Mul2Exp(shift, uint(64*(k+1)))
		out.Add(out, shift)
	}
	for out.Cmp(m) >= 0 {
		out.Sub(out, m)
	}
}
