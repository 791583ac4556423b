package fft

// The FFT3 family operates on the trinomial ring X^n - X^(n/2) + 1. With
// full == 1 the coefficient count is n = 3*2^(logn-1) and the transform
// finishes with a degree-tripling stage; with full == 0 it is the plain
// power-of-two ring X^n - X^(n/2) + 1 with n = 2^logn.

// MKN3 returns the coefficient count of the ring selected by (logn, full).
func MKN3(logn, full uint) int {
	return (1 + int(full)<<1) << (logn - full)
}

// FFT3 transforms a in place to FFT representation in the trinomial ring.
func FFT3(a []float64, logn, full uint) {
	n := MKN3(logn, full)
	hn := n >> 1

	// First pass: each pair (u, u+hn) is a polynomial a0 + a1*Y modulo
	// Y^2 - Y + 1, evaluated at Y = w = exp(i*pi/3).
	for u := 0; u < hn; u++ {
		a0, a1 := a[u], a[u+hn]
		a[u] = a0 + a1*w1R
		a[u+hn] = a1 * w1I
	}

	// Radix-2 stages on the complex values
	t := hn
	tmin := 1 + int(full)<<1
	for m := 2; t > tmin; m <<= 1 {
		ht := t >> 1
		hm := m >> 1
		for u1, v1 := 0, 0; u1 < hm; u1, v1 = u1+1, v1+t {
			sr := gm3Square[(m+u1)<<1]
			si := gm3Square[(m+u1)<<1|1]
			for v := v1; v < v1+ht; v++ {
				a0r, a0i := a[v], a[v+hn]
				a1r, a1i := a[v+ht], a[v+ht+hn]
				a1r, a1i = cmul(a1r, a1i, sr, si)
				a[v], a[v+hn] = a0r+a1r, a0i+a1i
				a[v+ht], a[v+ht+hn] = a0r-a1r, a0i-a1i
			}
		}
		t = ht
	}

	// Degree-tripling stage over leaf triples
	if 1 == full {
		for u, kk := 0, 1<<(logn-1); u < hn; u, kk = u+3, kk+1 {
			fAr, fAi := a[u], a[u+hn]
			fBr, fBi := a[u+1], a[u+1+hn]
			fCr, fCi := a[u+2], a[u+2+hn]

			xr := gm3Cubic[2*kk]
			xi := gm3Cubic[2*kk+1]

			fB0r, fB0i := cmul(fBr, fBi, xr, xi)
			fB1r, fB1i := cmul(fB0r, fB0i, w2R, w2I)
			fB2r, fB2i := cmul(fB0r, fB0i, w4R, w4I)
			xr, xi = cmul(xr, xi, xr, xi)
			fC0r, fC0i := cmul(fCr, fCi, xr, xi)
			fC1r, fC1i := cmul(fC0r, fC0i, w2R, w2I)
			fC2r, fC2i := cmul(fC0r, fC0i, w4R, w4I)

			fB0r, fB0i = fB0r+fC0r, fB0i+fC0i
			fB1r, fB1i = fB1r+fC2r, fB1i+fC2i
			fB2r, fB2i = fB2r+fC1r, fB2i+fC1i
			a[u+0], a[u+0+hn] = fAr+fB0r, fAi+fB0i
			a[u+1], a[u+1+hn] = fAr+fB1r, fAi+fB1i
			a[u+2], a[u+2+hn] = fAr+fB2r, fAi+fB2i
		}
	}
}

// IFFT3 reverses FFT3.
func IFFT3(a []float64, logn, full uint) {
	n := MKN3(logn, full)
	hn := n >> 1

	// Inverse of the tripling stage
	if 1 == full {
		for u, kk := 0, 1<<(logn-1); u < hn; u, kk = u+3, kk+1 {
			f0r, f0i := a[u], a[u+hn]
			f1r, f1i := a[u+1], a[u+1+hn]
			f2r, f2i := a[u+2], a[u+2+hn]

			xr := gm3Cubic[2*kk]
			xi := -gm3Cubic[2*kk+1]

			f11r, f11i := cmul(f1r, f1i, w4R, w4I)
			f12r, f12i := cmul(f1r, f1i, w2R, w2I)
			f21r, f21i := cmul(f2r, f2i, w4R, w4I)
			f22r, f22i := cmul(f2r, f2i, w2R, w2I)

			f1r, f1i = f1r+f2r, f1i+f2i
			a[u], a[u+hn] = f0r+f1r, f0i+f1i

			f11r, f11i = f11r+f22r, f11i+f22i
			f11r, f11i = f11r+f0r, f11i+f0i
			a[u+1], a[u+1+hn] = cmul(xr, xi, f11r, f11i)

			xr, xi = cmul(xr, xi, xr, xi)
			f12r, f12i = f12r+f21r, f12i+f21i
			f12r, f12i = f12r+f0r, f12i+f0i
			a[u+2], a[u+2+hn] = cmul(xr, xi, f12r, f12i)
		}
	}

	// Inverse radix-2 stages
	t := 2 + int(full)<<2
	for m := 1 << (logn - 1 - full); t < n; m >>= 1 {
		ht := t >> 1
		hm := m >> 1
		for u1, v1 := 0, 0; u1 < hm; u1, v1 = u1+1, v1+t {
			sr := gm3Square[(m+u1)<<1]
			si := -gm3Square[(m+u1)<<1|1]
			for v := v1; v < v1+ht; v++ {
				a0r, a0i := a[v], a[v+hn]
				a1r, a1i := a[v+ht], a[v+ht+hn]
				a[v], a[v+hn] = a0r+a1r, a0i+a1i
				a0r, a0i = a0r-a1r, a0i-a1i
				a[v+ht], a[v+ht+hn] = cmul(a0r, a0i, sr, si)
			}
		}
		t <<= 1
	}

	// Undo the modulo Y^2 - Y + 1 evaluation: a1 = Im/Im(w), a0 = Re - a1/2
	for u := 0; u < hn; u++ {
		xr, xi := a[u], a[u+hn]
		a1 := xi * iw1I
		a0 := xr - a1*0.5
		a[u] = a0
		a[u+hn] = a1
	}

	// Remove the accumulated n/2 multiplier
	ni := 1 / float64(hn)
	for u := 0; u < n; u++ {
		a[u] *= ni
	}
}

// Add3 accumulates b into a pointwise.
func Add3(a, b []float64, logn, full uint) {
	n := MKN3(logn, full)
	for u := 0; u < n; u++ {
		a[u] += b[u]
	}
}

// Sub3 subtracts b from a pointwise.
func Sub3(a, b []float64, logn, full uint) {
	n := MKN3(logn, full)
	for u := 0; u < n; u++ {
		a[u] -= b[u]
	}
}

// Neg3 negates a pointwise.
func Neg3(a []float64, logn, full uint) {
	n := MKN3(logn, full)
	for u := 0; u < n; u++ {
		a[u] = -a[u]
	}
}

// AddConst3 adds x to the constant coefficient.
func AddConst3(a []float64, x float64, logn, full uint) {
	a[0] += x
}

// AddConstFFT3 adds the constant x in FFT representation.
func AddConstFFT3(a []float64, x float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		a[u] += x
	}
}

// AdjFFT3 conjugates a in FFT representation.
func AdjFFT3(a []float64, logn, full uint) {
	n := MKN3(logn, full)
	for u := n >> 1; u < n; u++ {
		a[u] = -a[u]
	}
}

// MulFFT3 multiplies a by b pointwise.
func MulFFT3(a, b []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cmul(a[u], a[u+hn], b[u], b[u+hn])
	}
}

// SqrFFT3 squares a pointwise.
func SqrFFT3(a []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		re, im := a[u], a[u+hn]
		a[u] = re*re - im*im
		a[u+hn] = 2 * re * im
	}
}

// MulAdjFFT3 multiplies a by the conjugate of b pointwise.
func MulAdjFFT3(a, b []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cmul(a[u], a[u+hn], b[u], -b[u+hn])
	}
}

// MulSelfAdjFFT3 multiplies a by its own conjugate.
func MulSelfAdjFFT3(a []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		a[u] = a[u]*a[u] + a[u+hn]*a[u+hn]
		a[u+hn] = 0
	}
}

// MulConst3 scales a by x.
func MulConst3(a []float64, x float64, logn, full uint) {
	n := MKN3(logn, full)
	for u := 0; u < n; u++ {
		a[u] *= x
	}
}

// InvFFT3 inverts a pointwise.
func InvFFT3(a []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cinv(a[u], a[u+hn])
	}
}

// DivFFT3 divides a by b pointwise.
func DivFFT3(a, b []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cdiv(a[u], a[u+hn], b[u], b[u+hn])
	}
}

// DivAdjFFT3 divides a by the conjugate of b pointwise.
func DivAdjFFT3(a, b []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		a[u], a[u+hn] = cdiv(a[u], a[u+hn], b[u], -b[u+hn])
	}
}

// InvNorm2FFT3 sets d to 1/(|a|^2 + |b|^2) pointwise.
func InvNorm2FFT3(d, a, b []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		an := a[u]*a[u] + a[u+hn]*a[u+hn]
		bn := b[u]*b[u] + b[u+hn]*b[u+hn]
		d[u] = 1 / (an + bn)
		d[u+hn] = 0
	}
}

// AddMulAdjFFT3 sets d = F*conj(f) + G*conj(g) pointwise.
func AddMulAdjFFT3(d, F, G, f, g []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		aRe, aIm := cmul(F[u], F[u+hn], f[u], -f[u+hn])
		bRe, bIm := cmul(G[u], G[u+hn], g[u], -g[u+hn])
		d[u] = aRe + bRe
		d[u+hn] = aIm + bIm
	}
}

// MulAutoAdjFFT3 multiplies a by the self-adjoint b.
func MulAutoAdjFFT3(a, b []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		a[u] *= b[u]
		a[u+hn] *= b[u]
	}
}

// DivAutoAdjFFT3 divides a by the self-adjoint b.
func DivAutoAdjFFT3(a, b []float64, logn, full uint) {
	hn := MKN3(logn, full) >> 1
	for u := 0; u < hn; u++ {
		ib := 1 / b[u]
		a[u] *= ib
		a[u+hn] *= ib
	}
}

// SplitTopFFT3 splits the full trinomial ring (size 3*2^(logn-1)) into
// three sub-transforms of a third the size, inverting the tripling stage
// per leaf triple.
func SplitTopFFT3(f0, f1, f2, f []float64, logn uint) {
	n := 3 << (logn - 1)
	hn := n >> 1
	qn := 1 << (logn - 2)

	const third = 1.0 / 3.0

	for u, v := 0, 0; u < hn; u, v = u+3, v+1 {
		fAr, fAi := f[u], f[u+hn]
		fBr, fBi := f[u+1], f[u+1+hn]
		fCr, fCi := f[u+2], f[u+2+hn]

		kk := (1 << (logn - 1)) + v
		xr := gm3Cubic[2*kk]
		xi := -gm3Cubic[2*kk+1]

		fB1r, fB1i := cmul(fBr, fBi, w4R, w4I)
		fB2r, fB2i := cmul(fBr, fBi, w2R, w2I)
		fC1r, fC1i := cmul(fCr, fCi, w4R, w4I)
		fC2r, fC2i := cmul(fCr, fCi, w2R, w2I)

		fBr, fBi = fBr+fCr, fBi+fCi
		t0r, t0i := fAr+fBr, fAi+fBi

		fB1r, fB1i = fB1r+fC2r, fB1i+fC2i
		fB1r, fB1i = fB1r+fAr, fB1i+fAi
		t1r, t1i := cmul(xr, xi, fB1r, fB1i)

		xr, xi = cmul(xr, xi, xr, xi)
		fB2r, fB2i = fB2r+fC1r, fB2i+fC1i
		fB2r, fB2i = fB2r+fAr, fB2i+fAi
		t2r, t2i := cmul(xr, xi, fB2r, fB2i)

		f0[v], f0[v+qn] = t0r*third, t0i*third
		f1[v], f1[v+qn] = t1r*third, t1i*third
		f2[v], f2[v+qn] = t2r*third, t2i*third
	}
}

// MergeTopFFT3 reverses SplitTopFFT3.
func MergeTopFFT3(f, f0, f1, f2 []float64, logn uint) {
	n := 3 << (logn - 1)
	hn := n >> 1
	qn := 1 << (logn - 2)

	for u, v := 0, 0; u < hn; u, v = u+3, v+1 {
		fAr, fAi := f0[v], f0[v+qn]
		fBr, fBi := f1[v], f1[v+qn]
		fCr, fCi := f2[v], f2[v+qn]

		kk := (1 << (logn - 1)) + v
		xr := gm3Cubic[2*kk]
		xi := gm3Cubic[2*kk+1]

		fB0r, fB0i := cmul(fBr, fBi, xr, xi)
		fB1r, fB1i := cmul(fB0r, fB0i, w2R, w2I)
		fB2r, fB2i := cmul(fB0r, fB0i, w4R, w4I)
		xr, xi = cmul(xr, xi, xr, xi)
		fC0r, fC0i := cmul(fCr, fCi, xr, xi)
		fC1r, fC1i := cmul(fC0r, fC0i, w2R, w2I)
		fC2r, fC2i := cmul(fC0r, fC0i, w4R, w4I)

		fB0r, fB0i = fB0r+fC0r, fB0i+fC0i
		fB1r, fB1i = fB1r+fC2r, fB1i+fC2i
		fB2r, fB2i = fB2r+fC1r, fB2i+fC1i
		f[u+0], f[u+0+hn] = fAr+fB0r, fAi+fB0i
		f[u+1], f[u+1+hn] = fAr+fB1r, fAi+fB1i
		f[u+2], f[u+2+hn] = fAr+fB2r, fAi+fB2i
	}
}

// SplitDeepFFT3 halves a power-of-two sub-transform of the trinomial tower.
func SplitDeepFFT3(f0, f1, f []float64, logn uint) {
	if 1 == logn {
		re, im := f[0], f[1]
		xx := iw1I * im
		f1[0] = xx
		f0[0] = re - xx*0.5
		return
	}

	n := 1 << logn
	hn := n >> 1
	qn := hn >> 1
	m := 1 << (logn - 1)

	for u := 0; u < qn; u++ {
		aRe, aIm := f[(u<<1)+0], f[(u<<1)+0+hn]
		bRe, bIm := f[(u<<1)+1], f[(u<<1)+1+hn]

		tRe, tIm := aRe+bRe, aIm+bIm
		f0[u] = tRe * 0.5
		f0[u+qn] = tIm * 0.5

		tRe, tIm = aRe-bRe, aIm-bIm
		tRe, tIm = cmul(tRe, tIm, gm3Square[(u+m)<<1], -gm3Square[(u+m)<<1|1])
		f1[u] = tRe * 0.5
		f1[u+qn] = tIm * 0.5
	}
}

// MergeDeepFFT3 reverses SplitDeepFFT3.
func MergeDeepFFT3(f, f0, f1 []float64, logn uint) {
	if 1 == logn {
		x, y := f0[0], f1[0]
		f[0] = x + y*w1R
		f[1] = y * w1I
		return
	}

	n := 1 << logn
	hn := n >> 1
	qn := hn >> 1
	m := 1 << (logn - 1)

	for u := 0; u < qn; u++ {
		aRe, aIm := f0[u], f0[u+qn]
		tRe, tIm := cmul(f1[u], f1[u+qn], gm3Square[(u+m)<<1], gm3Square[(u+m)<<1|1])
		f[(u<<1)+0], f[(u<<1)+0+hn] = aRe+tRe, aIm+tIm
		f[(u<<1)+1], f[(u<<1)+1+hn] = aRe-tRe, aIm-tIm
	}
}
