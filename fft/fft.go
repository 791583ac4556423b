package fft

import "fmt"

// complex helpers over (re, im) pairs

func cmul(aRe, aIm, bRe, bIm float64) (float64, float64) {
	return aRe*bRe - aIm*bIm, aRe*bIm + aIm*bRe
}

func cinv(aRe, aIm float64) (float64, float64) {
	m := aRe*aRe + aIm*aIm
	return aRe / m, -aIm / m
}

func cdiv(aRe, aIm, bRe, bIm float64) (float64, float64) {
	m := bRe*bRe + bIm*bIm
	return (aRe*bRe + aIm*bIm) / m, (aIm*bRe - aRe*bIm) / m
}

func checkLogN(logn uint) error {
	if logn < 1 || logn > MaxLogN {
		return fmt.Errorf("fft size 2^%d out of range", logn)
	}
	return nil
}

// FFT transforms f in place from coefficient to FFT representation.
func FFT(f []float64, logn uint) error {
	if err := checkLogN(logn); err != nil {
		return err
	}

	// The first butterfly layer is free: the twiddle is i, which the
	// half-complex layout absorbs.
	n := 1 << logn
	hn := n >> 1
	t := hn
	for u, m := 1, 2; u < int(logn); u, m = u+1, m<<1 {
		ht := t >> 1
		hm := m >> 1
		for i1, j1 := 0, 0; i1 < hm; i1, j1 = i1+1, j1+t {
			sRe := gmTab[(m+i1)<<1]
			sIm := gmTab[(m+i1)<<1|1]
			for j := j1; j < j1+ht; j++ {
				xRe, xIm := f[j], f[j+hn]
				yRe, yIm := f[j+ht], f[j+ht+hn]
				yRe, yIm = cmul(yRe, yIm, sRe, sIm)
				f[j], f[j+hn] = xRe+yRe, xIm+yIm
				f[j+ht], f[j+ht+hn] = xRe-yRe, xIm-yIm
			}
		}
		t = ht
	}
	return nil
}

// IFFT transforms f in place from FFT back to coefficient representation.
func IFFT(f []float64, logn uint) error {
	if err := checkLogN(logn); err != nil {
		return err
	}

	n := 1 << logn
	hn := n >> 1
	t := 1
	m := n
	for u := logn; u > 1; u-- {
		hm := m >> 1
		dt := t << 1
		for i1, j1 := 0, 0; j1 < hn; i1, j1 = i1+1, j1+dt {
			sRe := gmTab[(hm+i1)<<1]
			sIm := -gmTab[(hm+i1)<<1|1]
			for j := j1; j < j1+t; j++ {
				xRe, xIm := f[j], f[j+hn]
				yRe, yIm := f[j+t], f[j+t+hn]
				f[j], f[j+hn] = xRe+yRe, xIm+yIm
				xRe, xIm = xRe-yRe, xIm-yIm
				f[j+t], f[j+t+hn] = cmul(xRe, xIm, sRe, sIm)
			}
		}
		t = dt
		m = hm
	}

	// The last layer is again free, leaving a factor of n/2 to remove
	ni := 2.0 / float64(n)
	for u := 0; u < n; u++ {
		f[u] *= ni
	}
	return nil
}

// Add accumulates b into a pointwise; valid in either representation.
func Add(a, b []float64, logn uint) {
	for u := 0; u < 1<<logn; u++ {
		a[u] += b[u]
	}
}

// Sub subtracts b from a pointwise.
func Sub(a, b []float64, logn uint) {
	for u := 0; u < 1<<logn; u++ {
		a[u] -= b[u]
	}
}

// Neg negates a pointwise.
func Neg(a []float64, logn uint) {
	for u := 0; u < 1<<logn; u++ {
		a[u] = -a[u]
	}
}

// AddConst adds x to the constant coefficient (coefficient domain).
func AddConst(a []float64, x float64, logn uint) {
	a[0] += x
}

// AddConstFFT adds the constant polynomial x in FFT representation: every
// evaluation shifts by x.
func AddConstFFT(a []float64, x float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		a[u] += x
	}
}

// Adj conjugates a in coefficient representation: f(1/x) mirrors all
// non-constant coefficients with negation.
func Adj(a []float64, logn uint) {
	n := 1 << logn
	for u := 1; u < n-u; u++ {
		a[u], a[n-u] = -a[n-u], -a[u]
	}
	if n > 1 {
		a[n>>1] = -a[n>>1]
	}
}

// AdjFFT conjugates a in FFT representation.
func AdjFFT(a []float64, logn uint) {
	n := 1 << logn
	for u := n >> 1; u < n; u++ {
		a[u] = -a[u]
	}
}

// MulFFT multiplies a by b pointwise in FFT representation.
func MulFFT(a, b []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cmul(a[u], a[u+hn], b[u], b[u+hn])
	}
}

// SqrFFT squares a pointwise.
func SqrFFT(a []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		re, im := a[u], a[u+hn]
		a[u] = re*re - im*im
		a[u+hn] = 2 * re * im
	}
}

// MulAdjFFT multiplies a by the conjugate of b pointwise.
func MulAdjFFT(a, b []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cmul(a[u], a[u+hn], b[u], -b[u+hn])
	}
}

// MulSelfAdjFFT multiplies a by its own conjugate, yielding the purely real
// squared magnitudes.
func MulSelfAdjFFT(a []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		a[u] = a[u]*a[u] + a[u+hn]*a[u+hn]
		a[u+hn] = 0
	}
}

// MulConst scales a by x.
func MulConst(a []float64, x float64, logn uint) {
	for u := 0; u < 1<<logn; u++ {
		a[u] *= x
	}
}

// InvFFT inverts a pointwise.
func InvFFT(a []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cinv(a[u], a[u+hn])
	}
}

// DivFFT divides a by b pointwise.
func DivFFT(a, b []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cdiv(a[u], a[u+hn], b[u], b[u+hn])
	}
}

// DivAdjFFT divides a by the conjugate of b pointwise.
func DivAdjFFT(a, b []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cdiv(a[u], a[u+hn], b[u], -b[u+hn])
	}
}

// InvNorm2FFT sets d to 1/(|a|^2 + |b|^2) pointwise; the result is
// self-adjoint (purely real).
func InvNorm2FFT(d, a, b []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		an := a[u]*a[u] + a[u+hn]*a[u+hn]
		bn := b[u]*b[u] + b[u+hn]*b[u+hn]
		d[u] = 1 / (an + bn)
		d[u+hn] = 0
	}
}

// AddMulAdjFFT sets d = F*conj(f) + G*conj(g) pointwise.
func AddMulAdjFFT(d, F, G, f, g []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		aRe, aIm := cmul(F[u], F[u+hn], f[u], -f[u+hn])
		bRe, bIm := cmul(G[u], G[u+hn], g[u], -g[u+hn])
		d[u] = aRe + bRe
		d[u+hn] = aIm + bIm
	}
}

// MulAutoAdjFFT multiplies a by the self-adjoint b (imaginary parts zero).
func MulAutoAdjFFT(a, b []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		a[u] *= b[u]
		a[u+hn] *= b[u]
	}
}

// DivAutoAdjFFT divides a by the self-adjoint b.
func DivAutoAdjFFT(a, b []float64, logn uint) {
	hn := 1 << (logn - 1)
	for u := 0; u < hn; u++ {
		ib := 1 / b[u]
		a[u] *= ib
		a[u+hn] *= ib
	}
}

// SplitFFT halves the ring degree: f (FFT, size 2^logn) splits into f0 and
// f1 of half the size, such that f = f0(x^2) + x*f1(x^2).
func SplitFFT(f0, f1, f []float64, logn uint) {
	hn := 1 << (logn - 1)
	qn := hn >> 1

	// For logn = 1 the loop is empty: one complex value moves across
	f0[0] = f[0]
	f1[0] = f[hn]

	for u := 0; u < qn; u++ {
		aRe, aIm := f[(u<<1)+0], f[(u<<1)+0+hn]
		bRe, bIm := f[(u<<1)+1], f[(u<<1)+1+hn]

		tRe, tIm := aRe+bRe, aIm+bIm
		f0[u] = tRe * 0.5
		f0[u+qn] = tIm * 0.5

		tRe, tIm = aRe-bRe, aIm-bIm
		tRe, tIm = cmul(tRe, tIm, gmTab[(u+hn)<<1], -gmTab[(u+hn)<<1|1])
		f1[u] = tRe * 0.5
		f1[u+qn] = tIm * 0.5
	}
}

// MergeFFT doubles the ring degree, reversing SplitFFT.
func MergeFFT(f, f0, f1 []float64, logn uint) {
	hn := 1 << (logn - 1)
	qn := hn >> 1

	f[0] = f0[0]
	f[hn] = f1[0]

	for u := 0; u < qn; u++ {
		aRe, aIm := f0[u], f0[u+qn]
		bRe, bIm := cmul(f1[u], f1[u+qn], gmTab[(u+hn)<<1], gmTab[(u+hn)<<1|1])

		f[(u<<1)+0], f[(u<<1)+0+hn] = aRe+bRe, aIm+bIm
		f[(u<<1)+1], f[(u<<1)+1+hn] = aRe-bRe, aIm-bIm
	}
}
