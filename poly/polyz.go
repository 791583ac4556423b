package poly

import (
	"fmt"

	"github.com/safecrypto/libsafecrypto-go/mpz"
)

// Z is a polynomial over the integers: coefficient i multiplies x^i. The
// declared length is fixed at creation; the degree is the index of the last
// non-zero coefficient, -1 for the zero polynomial.
type Z struct {
	coeffs []*mpz.Int
}

// NewZ creates a zero polynomial of declared length n.
func NewZ(n int) *Z {
	p := &Z{coeffs: make([]*mpz.Int, n)}
	for i := range p.coeffs {
		p.coeffs[i] = mpz.New()
	}
	return p
}

// Len returns the declared length.
func (p *Z) Len() int { return len(p.coeffs) }

// Coeff returns the coefficient of x^i.
func (p *Z) Coeff(i int) *mpz.Int { return p.coeffs[i] }

// SetCoeffSI assigns a signed value to the coefficient of x^i.
func (p *Z) SetCoeffSI(i int, v int64) { p.coeffs[i].SetSI(v) }

// GetCoeffSI returns the coefficient of x^i as a signed limb.
func (p *Z) GetCoeffSI(i int) int64 { return p.coeffs[i].GetSI() }

// Clear zeroes every coefficient.
func (p *Z) Clear() {
	for _, c := range p.coeffs {
		c.Clear()
	}
}

// Reset zeroes coefficients from offset onward.
func (p *Z) Reset(offset int) {
	for i := offset; i < len(p.coeffs); i++ {
		p.coeffs[i].SetUI(0)
	}
}

// Copy copies in into p coefficient by coefficient.
func (p *Z) Copy(in *Z) {
	n := len(p.coeffs)
	if len(in.coeffs) < n {
		n = len(in.coeffs)
	}
	for i := 0; i < n; i++ {
		p.coeffs[i].Copy(in.coeffs[i])
	}
	p.Reset(n)
}

// CopySI32 loads machine-integer coefficients.
func (p *Z) CopySI32(in []int32) {
	for i := range p.coeffs {
		if i < len(in) {
			p.coeffs[i].SetSI(int64(in[i]))
		} else {
			p.coeffs[i].SetUI(0)
		}
	}
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p *Z) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if !p.coeffs[i].IsZero() {
			return i
		}
	}
	return -1
}

// Add sets p = a + b pointwise.
func (p *Z) Add(a, b *Z) {
	for i := range p.coeffs {
		p.coeffs[i].Add(a.coeffs[i], b.coeffs[i])
	}
}

// Sub sets p = a - b pointwise.
func (p *Z) Sub(a, b *Z) {
	for i := range p.coeffs {
		p.coeffs[i].Sub(a.coeffs[i], b.coeffs[i])
	}
}

// MulGradeschool multiplies a and b by the schoolbook method; p must be
// able to hold len(a)+len(b)-1 coefficients.
func (p *Z) MulGradeschool(a, b *Z) {
	n := len(a.coeffs)
	m := len(b.coeffs)
	p.Reset(0)
	for i := 0; i < n; i++ {
		if a.coeffs[i].IsZero() {
			continue
		}
		for j := 0; j < m; j++ {
			p.coeffs[i+j].AddMul(a.coeffs[i], b.coeffs[j])
		}
	}
}

// Mul multiplies a and b, selecting the widest applicable kernel.
func (p *Z) Mul(a, b *Z) {
	if len(a.coeffs) == len(b.coeffs) && len(a.coeffs) >= 16 {
		p.MulKaratsuba(a, b)
		return
	}
	p.MulGradeschool(a, b)
}

const karatsubaCutoff = 16

// MulKaratsuba multiplies two equal-length polynomials by Karatsuba
// splitting, falling back to the schoolbook method below the cutoff.
func (p *Z) MulKaratsuba(a, b *Z) {
	n := len(a.coeffs)
	out := karatsuba(a.coeffs, b.coeffs, n)
	p.Reset(0)
	for i := 0; i < len(out) && i < len(p.coeffs); i++ {
		p.coeffs[i].Copy(out[i])
	}
}

func karatsuba(a, b []*mpz.Int, n int) []*mpz.Int {
	out := make([]*mpz.Int, 2*n-1)
	for i := range out {
		out[i] = mpz.New()
	}

	if n <= karatsubaCutoff {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				out[i+j].AddMul(a[i], b[j])
			}
		}
		return out
	}

	h := n / 2
	// a = a0 + x^h a1, b = b0 + x^h b1
	a0, a1 := a[:h], a[h:]
	b0, b1 := b[:h], b[h:]

	// Unequal halves when n is odd: pad the low halves up to the high size
	hh := n - h
	pad := func(xs []*mpz.Int) []*mpz.Int {
		if len(xs) == hh {
			return xs
		}
		padded := make([]*mpz.Int, hh)
		copy(padded, xs)
		for i := len(xs); i < hh; i++ {
			padded[i] = mpz.New()
		}
		return padded
	}
	a0p, b0p := pad(a0), pad(b0)

	z0 := karatsuba(a0p, b0p, hh)
	z2 := karatsuba(a1, b1, hh)

	sa := make([]*mpz.Int, hh)
	sb := make([]*mpz.Int, hh)
	for i := 0; i < hh; i++ {
		sa[i] = mpz.New().Add(a0p[i], a1[i])
		sb[i] = mpz.New().Add(b0p[i], b1[i])
	}
	z1 := karatsuba(sa, sb, hh)
	for i := range z1 {
		z1[i].Sub(z1[i], z0[i])
		z1[i].Sub(z1[i], z2[i])
	}

	for i := range z0 {
		out[i].Add(out[i], z0[i])
	}
	for i := range z1 {
		out[i+h].Add(out[i+h], z1[i])
	}
	for i := range z2 {
		out[i+2*h].Add(out[i+2*h], z2[i])
	}
	return out
}

// maxCoeffBits returns the bit width of the largest coefficient magnitude.
func (p *Z) maxCoeffBits() int {
	maxBits := 1
	for _, c := range p.coeffs {
		if c.IsZero() {
			continue
		}
		if b := c.SizeInBase(2); b > maxBits {
			maxBits = b
		}
	}
	return maxBits
}

// KSBitPack packs the coefficients of p into a single integer at the given
// bit width per coefficient. Negative coefficients borrow from the digit
// above, so the packing is exact for any |coefficient| < 2^(width-1).
func (p *Z) KSBitPack(width uint) *mpz.Int {
	packed := mpz.New()
	shifted := mpz.New()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		shifted.Mul2Exp(packed, width)
		packed.Add(shifted, p.coeffs[i])
	}
	return packed
}

// KSBitUnpack reverses KSBitPack into a polynomial of the given length,
// resolving the borrow chain so signed coefficients are recovered exactly.
func KSBitUnpack(packed *mpz.Int, width uint, n int) *Z {
	p := NewZ(n)

	work := mpz.New().Copy(packed)
	negated := work.IsNeg()
	if negated {
		work.Neg(work)
	}

	half := mpz.New().SetUI(1)
	half.Mul2Exp(half, width-1)
	full := mpz.New().SetUI(1)
	full.Mul2Exp(full, width)

	for i := 0; i < n; i++ {
		// Low digit, then signed fold with carry into the next digit
		rem := mpz.New()
		shifted := mpz.New().DivQuo2Exp(work, width)
		rem.Sub(work, mpz.New().Mul2Exp(shifted, width))

		work.Copy(shifted)
		if rem.Cmp(half) >= 0 {
			rem.Sub(rem, full)
			work.AddUI(work, 1)
		}
		p.coeffs[i].Copy(rem)
	}

	if negated {
		for i := 0; i < n; i++ {
			p.coeffs[i].Neg(p.coeffs[i])
		}
	}
	return p
}

// MulKronecker multiplies by Kronecker substitution: both operands are
// packed into single integers wide enough that product digits cannot
// overlap, multiplied once, and the result unpacked.
func (p *Z) MulKronecker(a, b *Z) {
	n := len(a.coeffs)
	m := len(b.coeffs)

	// Each product coefficient is a sum of at most min(n, m) products
	width := uint(a.maxCoeffBits()+b.maxCoeffBits()) + scmathCeilLog2(n) + 2

	pa := a.KSBitPack(width)
	pb := b.KSBitPack(width)
	prod := mpz.New().Mul(pa, pb)

	out := KSBitUnpack(prod, width, n+m-1)
	p.Reset(0)
	for i := 0; i < len(out.coeffs) && i < len(p.coeffs); i++ {
		p.coeffs[i].Copy(out.coeffs[i])
	}
}

func scmathCeilLog2(n int) uint {
	b := uint(0)
	for v := n - 1; v > 0; v >>= 1 {
		b++
	}
	return b
}

// Div performs pseudo-division of n by d: with delta = deg(n) - deg(d), it
// finds q and r such that lc(d)^(delta+1) * n = q*d + r with deg(r) < deg(d).
func Div(q, r, n, d *Z) error {
	degD := d.Degree()
	if degD < 0 {
		return fmt.Errorf("polynomial division by zero")
	}

	degN := n.Degree()
	q.Reset(0)
	r.Copy(n)
	if degN < degD {
		return nil
	}

	lc := d.coeffs[degD]
	t := mpz.New()

	for k := degN - degD; k >= 0; k-- {
		// Scale everything so the next elimination is integral
		for i := range q.coeffs {
			q.coeffs[i].Mul(q.coeffs[i], lc)
		}
		qk := mpz.New().Copy(r.coeffs[degD+k])
		for i := range r.coeffs {
			r.coeffs[i].Mul(r.coeffs[i], lc)
		}

		q.coeffs[k].Add(q.coeffs[k], qk)
		for j := 0; j <= degD; j++ {
			t.Mul(qk, d.coeffs[j])
			r.coeffs[j+k].Sub(r.coeffs[j+k], t)
		}
	}

	return nil
}

// PseudoRemainder computes only the remainder of the pseudo-division.
func PseudoRemainder(r, n, d *Z) error {
	q := NewZ(len(n.coeffs))
	return Div(q, r, n, d)
}

// Content sets c to the gcd of the coefficients, non-negative.
func (p *Z) Content(c *mpz.Int) {
	c.SetUI(0)
	g := mpz.New()
	for _, coeff := range p.coeffs {
		if coeff.IsZero() {
			continue
		}
		mpz.GCD(g, c, coeff)
		c.Copy(g)
	}
}

// ContentScale divides every coefficient by the content c exactly.
func (p *Z) ContentScale(out *Z, c *mpz.Int) error {
	if c.IsZero() {
		out.Copy(p)
		return nil
	}
	for i := range p.coeffs {
		q, rem, err := mpz.DivQR(p.coeffs[i], c)
		if err != nil {
			return err
		}
		if !rem.IsZero() {
			return fmt.Errorf("content %s does not divide coefficient %d", c.String(), i)
		}
		out.coeffs[i].Copy(q)
	}
	return nil
}

// Resultant computes the resultant of a and b by fraction-free Gaussian
// elimination of the Sylvester matrix.
func Resultant(res *mpz.Int, a, b *Z) error {
	degA := a.Degree()
	degB := b.Degree()

	if degA < 0 || degB < 0 {
		res.SetUI(0)
		return nil
	}
	if 0 == degA && 0 == degB {
		res.SetUI(1)
		return nil
	}

	size := degA + degB
	m := make([][]*mpz.Int, size)
	for i := range m {
		m[i] = make([]*mpz.Int, size)
		for j := range m[i] {
			m[i][j] = mpz.New()
		}
	}

	// degB rows of a's coefficients, then degA rows of b's
	for i := 0; i < degB; i++ {
		for j := 0; j <= degA; j++ {
			m[i][i+j].Copy(a.coeffs[degA-j])
		}
	}
	for i := 0; i < degA; i++ {
		for j := 0; j <= degB; j++ {
			m[degB+i][i+j].Copy(b.coeffs[degB-j])
		}
	}

	// Bareiss elimination keeps every entry integral
	sign := 1
	prev := mpz.NewSetUI(1)
	t := mpz.New()
	for k := 0; k < size-1; k++ {
		if m[k][k].IsZero() {
			swap := -1
			for i := k + 1; i < size; i++ {
				if !m[i][k].IsZero() {
					swap = i
					break
				}
			}
			if swap < 0 {
				res.SetUI(0)
				return nil
			}
			m[k], m[swap] = m[swap], m[k]
			sign = -sign
		}

		for i := k + 1; i < size; i++ {
			for j := k + 1; j < size; j++ {
				t.Mul(m[i][j], m[k][k])
				t.SubMul(m[i][k], m[k][j])
				q, rem, err := mpz.DivQR(t, prev)
				if err != nil {
					return err
				}
				if !rem.IsZero() {
					return fmt.Errorf("non-exact division in resultant elimination")
				}
				m[i][j].Copy(q)
			}
			m[i][k].SetUI(0)
		}
		prev.Copy(m[k][k])
	}

	res.Copy(m[size-1][size-1])
	if sign < 0 {
		res.Neg(res)
	}
	return nil
}

// XGCD runs the extended Euclidean algorithm on a and b over the rationals,
// scaled to stay in the integers: on success u*a + v*b = g where g is an
// integer multiple of the monic gcd.
func XGCD(a, b *Z, g, u, v *Z) error {
	width := len(a.coeffs)
	if len(b.coeffs) > width {
		width = len(b.coeffs)
	}

	r0 := NewZ(2 * width)
	r1 := NewZ(2 * width)
	r0.Copy(a)
	r1.Copy(b)

	u0 := NewZ(2 * width)
	u1 := NewZ(2 * width)
	v0 := NewZ(2 * width)
	v1 := NewZ(2 * width)
	u0.SetCoeffSI(0, 1)
	v1.SetCoeffSI(0, 1)

	scratchQ := NewZ(2 * width)
	scratchR := NewZ(2 * width)
	prod := NewZ(4 * width)

	for r1.Degree() >= 0 {
		degR0 := r0.Degree()
		degR1 := r1.Degree()
		if degR0 < degR1 {
			r0, r1 = r1, r0
			u0, u1 = u1, u0
			v0, v1 = v1, v0
			continue
		}

		// lc^(delta+1) r0 = q r1 + r2
		if err := Div(scratchQ, scratchR, r0, r1); err != nil {
			return err
		}
		delta := degR0 - degR1
		scale := mpz.New().PowUI(r1.coeffs[degR1], uint64(delta+1))

		// Cofactors follow the same scaling
		next := func(x0, x1 *Z) *Z {
			out := NewZ(2 * width)
			for i := range out.coeffs {
				out.coeffs[i].Mul(x0.coeffs[i], scale)
			}
			prod.MulGradeschool(scratchQ, x1)
			for i := range out.coeffs {
				out.coeffs[i].Sub(out.coeffs[i], prod.coeffs[i])
			}
			return out
		}
		nu := next(u0, u1)
		nv := next(v0, v1)

		r0, r1 = r1, NewZ(2*width)
		r1.Copy(scratchR)
		u0, u1 = u1, nu
		v0, v1 = v1, nv
	}

	g.Copy(r0)
	u.Copy(u0)
	v.Copy(v0)
	return nil
}
