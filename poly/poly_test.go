package poly_test

import (
	"math/rand"
	"testing"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/mpz"
	"github.com/safecrypto/libsafecrypto-go/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrng(t *testing.T) *csprng.Ctx {
	t.Helper()
	prng, err := csprng.NewSeeded(make([]byte, 32))
	require.NoError(t, err)
	return prng
}

func TestMul32(t *testing.T) {
	// (1 + 2x)(3 + 4x) = 3 + 10x + 8x^2
	out := make([]int32, 3)
	poly.Mul32(out, 2, []int32{1, 2}, []int32{3, 4})
	assert.Equal(t, []int32{3, 10, 8}, out)
}

func TestDegree32(t *testing.T) {
	assert.Equal(t, -1, poly.Degree32([]int32{0, 0, 0}))
	assert.Equal(t, 0, poly.Degree32([]int32{5, 0, 0}))
	assert.Equal(t, 2, poly.Degree32([]int32{5, 0, -1}))
}

func TestUniformRand32(t *testing.T) {
	prng := testPrng(t)

	v := make([]int32, 64)
	c := []uint16{3, 5}
	require.NoError(t, poly.UniformRand32(prng, v, c))

	counts := map[int32]int{}
	for _, x := range v {
		if x != 0 {
			counts[abs32(x)]++
		}
	}
	assert.Equal(t, 3, counts[2], "three symbols of the first value")
	assert.Equal(t, 5, counts[1], "five symbols of the second value")

	// Oversized multisets are rejected rather than spinning.
	assert.Error(t, poly.UniformRand32(prng, make([]int32, 4), []uint16{3, 3}))
	assert.Error(t, poly.UniformRand32(prng, make([]int32, 63), []uint16{1}))
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestZ2MulDiv(t *testing.T) {
	n := 8
	a := []int32{1, 1, 0, 1, 0, 0, 0, 0} // 1 + x + x^3
	b := []int32{1, 0, 1, 0, 0, 0, 0, 0} // 1 + x^2

	prod := make([]int32, 2*n)
	poly.Z2Mul(prod, n, a, b)
	// (1+x+x^3)(1+x^2) = 1 + x + x^2 + x^5
	assert.Equal(t, []int32{1, 1, 1, 0, 0, 1, 0, 0}, prod[:n])

	q := make([]int32, 2*n)
	r := make([]int32, 2*n)
	bWide := make([]int32, 2*n)
	copy(bWide, b)
	require.NoError(t, poly.Z2Div(q, r, 2*n, prod, bWide))
	assert.Equal(t, a, q[:n])
	assert.Equal(t, -1, degreeOf(r))

	assert.Error(t, poly.Z2Div(q, r, n, a, make([]int32, n)))
}

func degreeOf(p []int32) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

func randOddParity(r *rand.Rand, n int) []int32 {
	for {
		f := make([]int32, n)
		parity := int32(0)
		for i := range f {
			f[i] = int32(r.Intn(2))
			parity ^= f[i]
		}
		if 1 == parity {
			return f
		}
	}
}

func TestZ2InvRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	n := 16

	for trial := 0; trial < 50; trial++ {
		f := randOddParity(r, n)

		inv := make([]int32, n)
		if err := poly.Z2Inv(inv, f, n); err != nil {
			continue
		}

		prod := make([]int32, n)
		poly.Z2MulMod2(f, inv, n, prod)
		assert.Equal(t, int32(1), prod[0], "f=%v inv=%v", f, inv)
		for i := 1; i < n; i++ {
			require.Equal(t, int32(0), prod[i], "f=%v inv=%v coeff %d", f, inv, i)
		}
	}
}

func TestZ2ExtEuclideanAgreesWithAlmostInverse(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	n := 16

	for trial := 0; trial < 50; trial++ {
		f := randOddParity(r, n)

		inv1 := make([]int32, n)
		inv2 := make([]int32, n)
		err1 := poly.Z2Inv(inv1, f, n)
		err2 := poly.Z2ExtEuclidean(inv2, f, n)

		if err1 != nil || err2 != nil {
			continue
		}
		assert.Equal(t, inv1, inv2, "f=%v", f)
	}
}

func TestZ2InvRejectsEvenParity(t *testing.T) {
	f := []int32{1, 1, 0, 0, 0, 0, 0, 0}
	assert.Error(t, poly.Z2Inv(make([]int32, 8), f, 8))
}

func newPolyFrom(t *testing.T, coeffs []int64) *poly.Z {
	t.Helper()
	p := poly.NewZ(len(coeffs))
	for i, c := range coeffs {
		p.SetCoeffSI(i, c)
	}
	return p
}

func TestMulKernelsAgree(t *testing.T) {
	r := rand.New(rand.NewSource(9))

	for trial := 0; trial < 20; trial++ {
		n := 32
		a := poly.NewZ(n)
		b := poly.NewZ(n)
		for i := 0; i < n; i++ {
			a.SetCoeffSI(i, int64(r.Intn(2001)-1000))
			b.SetCoeffSI(i, int64(r.Intn(2001)-1000))
		}

		school := poly.NewZ(2*n - 1)
		kara := poly.NewZ(2*n - 1)
		kron := poly.NewZ(2*n - 1)

		school.MulGradeschool(a, b)
		kara.MulKaratsuba(a, b)
		kron.MulKronecker(a, b)

		for i := 0; i < 2*n-1; i++ {
			require.Equal(t, 0, school.Coeff(i).Cmp(kara.Coeff(i)), "karatsuba coeff %d", i)
			require.Equal(t, 0, school.Coeff(i).Cmp(kron.Coeff(i)), "kronecker coeff %d", i)
		}
	}
}

func TestKSBitPackRoundTrip(t *testing.T) {
	p := newPolyFrom(t, []int64{5, -3, 0, 127, -128, 1})
	packed := p.KSBitPack(12)
	back := poly.KSBitUnpack(packed, 12, 6)
	for i := 0; i < 6; i++ {
		assert.Equal(t, p.GetCoeffSI(i), back.GetCoeffSI(i), "coeff %d", i)
	}
}

func TestPseudoDivision(t *testing.T) {
	// n = x^3 + 2x + 7, d = 2x + 1:
	// lc(d)^(delta+1) n = q d + r must hold exactly.
	n := newPolyFrom(t, []int64{7, 2, 0, 1})
	d := newPolyFrom(t, []int64{1, 2, 0, 0})

	q := poly.NewZ(4)
	r := poly.NewZ(4)
	require.NoError(t, poly.Div(q, r, n, d))

	// Rebuild lc^(delta+1) * n and compare against q*d + r.
	lhs := poly.NewZ(8)
	lc := mpz.NewSetSI(2)
	scale := mpz.New().PowUI(lc, 3) // delta = 3-1 = 2
	for i := 0; i < 4; i++ {
		lhs.Coeff(i).Mul(n.Coeff(i), scale)
	}

	rhs := poly.NewZ(8)
	rhs.MulGradeschool(q, d)
	for i := 0; i < 4; i++ {
		rhs.Coeff(i).Add(rhs.Coeff(i), r.Coeff(i))
	}

	for i := 0; i < 8; i++ {
		require.Equal(t, 0, lhs.Coeff(i).Cmp(rhs.Coeff(i)), "coeff %d", i)
	}

	assert.Error(t, poly.Div(q, r, n, poly.NewZ(4)))
}

func TestResultant(t *testing.T) {
	res := mpz.New()

	// res(x^2 - 1, x - 2) = (2)^2 - 1 = 3
	a := newPolyFrom(t, []int64{-1, 0, 1})
	b := newPolyFrom(t, []int64{-2, 1, 0})
	require.NoError(t, poly.Resultant(res, a, b))
	assert.Equal(t, int64(3), res.GetSI())

	// Shared root x=1: resultant vanishes.
	c := newPolyFrom(t, []int64{-1, 1, 0})
	require.NoError(t, poly.Resultant(res, a, c))
	assert.True(t, res.IsZero())

	// res(3x + 1, 2x + 5) = 3*5*... = det [[3,1],[2,5]] = 13
	d := newPolyFrom(t, []int64{1, 3})
	e := newPolyFrom(t, []int64{5, 2})
	require.NoError(t, poly.Resultant(res, d, e))
	assert.Equal(t, int64(13), res.GetSI())
}

func TestXGCDIdentity(t *testing.T) {
	// a = (x+1)(x+2), b = (x+1)(x+3): gcd is x+1 up to scale.
	a := newPolyFrom(t, []int64{2, 3, 1, 0})
	b := newPolyFrom(t, []int64{3, 4, 1, 0})

	g := poly.NewZ(8)
	u := poly.NewZ(8)
	v := poly.NewZ(8)
	require.NoError(t, poly.XGCD(a, b, g, u, v))

	// u*a + v*b == g
	ua := poly.NewZ(16)
	vb := poly.NewZ(16)
	aw := poly.NewZ(8)
	bw := poly.NewZ(8)
	aw.Copy(a)
	bw.Copy(b)
	ua.MulGradeschool(u, aw)
	vb.MulGradeschool(v, bw)

	for i := 0; i < 8; i++ {
		sum := mpz.New().Add(ua.Coeff(i), vb.Coeff(i))
		require.Equal(t, 0, sum.Cmp(g.Coeff(i)), "coeff %d", i)
	}

	// g is a scalar multiple of x+1: g(x) = c*(x+1) => g(-1) == 0.
	gm1 := mpz.New()
	pow := mpz.NewSetSI(1)
	for i := 0; i < 8; i++ {
		gm1.AddMul(g.Coeff(i), pow)
		pow.MulSI(pow, -1)
	}
	assert.True(t, gm1.IsZero())
	assert.Equal(t, 1, g.Degree())
}

func TestContent(t *testing.T) {
	p := newPolyFrom(t, []int64{6, -9, 12})
	c := mpz.New()
	p.Content(c)
	assert.Equal(t, int64(3), c.GetSI())

	scaled := poly.NewZ(3)
	require.NoError(t, p.ContentScale(scaled, c))
	assert.Equal(t, int64(2), scaled.GetCoeffSI(0))
	assert.Equal(t, int64(-3), scaled.GetCoeffSI(1))
	assert.Equal(t, int64(4), scaled.GetCoeffSI(2))
}

func TestZ2ConvMod2MatchesCoefficientForm(t *testing.T) {
	n := 32
	a := []int32{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1, 0, 0, 0, 1, 1,
		0, 1, 0, 1, 1, 0, 0, 1, 0, 0, 0, 1, 1, 0, 1, 0}
	b := []int32{0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0,
		1, 0, 0, 0, 1, 1, 0, 1, 0, 1, 0, 0, 1, 0, 0, 1}

	want := make([]int32, n)
	poly.Z2MulMod2(a, b, n, want)

	// Pack a and b into big-endian words; b reversed per the kernel's
	// calling convention.
	pack := func(p []int32) []uint32 {
		out := make([]uint32, n/32)
		for i, bit := range p {
			if bit != 0 {
				out[i/32] |= 1 << uint(31-(i%32))
			}
		}
		return out
	}
	aw := pack(a)
	bRev := make([]int32, n)
	for i := range b {
		bRev[i] = b[n-1-i]
	}
	bw := pack(bRev)

	got := make([]uint32, n/32)
	require.NoError(t, poly.Z2ConvMod2(aw, bw, n, got))

	wantw := pack(want)
	assert.Equal(t, wantw, got)
}
