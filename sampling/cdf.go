package sampling

import (
	"fmt"
	"math"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/mpf"
	"github.com/safecrypto/libsafecrypto-go/scmath"
)

// cdf32, cdf64 and cdf128 sample by inverting a cumulative distribution
// table with a binary search. The table holds the running CDF of the
// one-sided Gaussian scaled to the full precision range; entry 0 is zero and
// saturated entries are all-ones so the search never escapes the table.

type cdf32 struct {
	cdf  []uint32
	k    int32
	prng *csprng.Ctx
}

// The k field is the Kullback-Leibler halving factor: a non-zero k shrinks
// the table to sigma/sqrt(1+k^2) and extends each draw with k times a second
// table walk. Construction leaves it at zero — the halving is disabled and
// every draw is a single full-width table inversion, so the table always
// spans the whole [0, ceil(tail*sigma)) range. The extended sampling path is
// retained for a build that re-enables the size cap.
type cdf64 struct {
	cdf  []uint64
	k    int32
	prng *csprng.Ctx
}

type cdf128 struct {
	hi   []uint64
	lo   []uint64
	k    int32
	prng *csprng.Ctx
}

func newCDF(prng *csprng.Ctx, tail, sigma float64, precision Precision, maxLUTBytes uint, blinding Blinding) (Gaussian, error) {
	if tail*sigma < 1 {
		return nil, fmt.Errorf("cdf sampler needs tail*sigma >= 1, got %f", tail*sigma)
	}

	switch precision {
	case Sampling32Bit:
		return newCDF32(prng, tail, sigma, blinding), nil
	case Sampling64Bit:
		return newCDF64(prng, tail, sigma, blinding), nil
	case Sampling128Bit:
		return newCDF128(prng, tail, sigma, blinding), nil
	default:
		return nil, fmt.Errorf("cdf sampler does not support %d-bit precision", precision)
	}
}

func newCDF32(prng *csprng.Ctx, tail, sigma float64, blinding Blinding) *cdf32 {
	bits := scmath.CeilLog2_64(uint64(tail * sigma))
	size := 1 << bits

	g := &cdf32{
		cdf:  make([]uint32, size),
		prng: prng,
	}

	sigma = blindSigma(sigma, blinding)

	// 2/sqrt(2*Pi) * 2^32 / sigma
	d := 2.0 / math.Sqrt(2*math.Pi) * 4294967296.0 / sigma

	e := -0.5 / (sigma * sigma)
	s := 0.5 * d
	g.cdf[0] = 0
	i := 1
	for ; i < size-1; i++ {
		if s >= 4294967296.0 || uint32(s) == 0 {
			break
		}
		g.cdf[i] = uint32(s)
		s += d * math.Exp(e*float64(i*i))
	}
	for ; i < size; i++ {
		g.cdf[i] = 0xFFFFFFFF
	}

	return g
}

func (g *cdf32) Prng() *csprng.Ctx { return g.prng }

func binarySearch32(x uint32, l []uint32) int32 {
	var a int32
	for st := int32(len(l)) >> 1; st > 0; st >>= 1 {
		b := a + st
		if b < int32(len(l)) && x >= l[b] {
			a = b
		}
	}
	return a
}

func (g *cdf32) Sample() int32 {
	x := g.prng.Uint32()
	a := binarySearch32(x, g.cdf)
	if x&1 != 0 {
		return a
	}
	return -a
}

func newCDF64(prng *csprng.Ctx, tail, sigma float64, blinding Blinding) *cdf64 {
	bits := scmath.CeilLog2_64(uint64(tail * sigma))
	size := 1 << bits

	g := &cdf64{
		cdf:  make([]uint64, size),
		prng: prng,
	}

	sigma = blindSigma(sigma, blinding)

	// 2/sqrt(2*Pi) * 2^64 / sigma
	d := 2.0 / math.Sqrt(2*math.Pi) * 18446744073709551616.0 / sigma

	e := -0.5 / (sigma * sigma)
	s := 0.5 * d
	g.cdf[0] = 0
	i := 1
	for ; i < size-1; i++ {
		if s >= 18446744073709551616.0 || uint64(s) == 0 {
			break
		}
		g.cdf[i] = uint64(s)
		s += d * math.Exp(e*float64(i*i))
	}
	for ; i < size; i++ {
		g.cdf[i] = 0xFFFFFFFFFFFFFFFF
	}

	return g
}

func (g *cdf64) Prng() *csprng.Ctx { return g.prng }

func binarySearch64(x uint64, l []uint64) int32 {
	var a int32
	for st := int32(len(l)) >> 1; st > 0; st >>= 1 {
		b := a + st
		if b < int32(len(l)) && x >= l[b] {
			a = b
		}
	}
	return a
}

func (g *cdf64) Sample() int32 {
	x := g.prng.Uint64()
	a := binarySearch64(x, g.cdf)
	if g.k > 0 {
		y := g.prng.Uint64()
		a += g.k * binarySearch64(y, g.cdf)
	}

	if x&1 != 0 {
		return a
	}
	return -a
}

// newCDF128 builds the high-precision table with multi-precision floats;
// guard bits beyond the 128-bit target improve the rounding of the deep tail.
func newCDF128(prng *csprng.Ctx, tail, sigma float64, blinding Blinding) *cdf128 {
	bits := scmath.CeilLog2_64(uint64(tail * sigma))
	size := 1 << bits

	g := &cdf128{
		hi:   make([]uint64, size),
		lo:   make([]uint64, size),
		prng: prng,
	}

	prev := mpf.DefaultPrecision()
	mpf.SetDefaultPrecision(160)
	defer mpf.SetDefaultPrecision(prev)

	sig := mpf.NewSetD(blindSigma(sigma, blinding))
	half := mpf.NewSetD(0.5)

	// 2/sqrt(2*Pi)
	t0 := mpf.New().Pi()
	t0.Mul2Exp(t0, 1)
	t0.Sqrt(t0)
	twoSqrt2Pi := mpf.New().SetUI(2)
	twoSqrt2Pi.Div(twoSqrt2Pi, t0)

	// d = 2/sqrt(2*Pi) * 2^128 / sigma
	d := mpf.New().SetUI(2)
	d.PowUI(d, 128)
	d.Div(d, sig)
	d.Mul(d, twoSqrt2Pi)

	// e = -1 / (2*sigma^2)
	e := mpf.New().Mul(sig, sig)
	e.Div(half, e)
	e.Neg(e)

	s := mpf.New().Mul(d, half)

	two64 := mpf.New().SetUI(2)
	two64.PowUI(two64, 64)
	two128 := mpf.New().Mul(two64, two64)

	t1 := mpf.New()
	t2 := mpf.New()

	i := 1
	for ; i < size-1; i++ {
		if s.IsZero() || s.Cmp(two128) >= 0 {
			break
		}

		// Split the integer part of s into two 64-bit words
		t1.Div2Exp(s, 64)
		t1.Floor(t1)
		hi := t1.GetUI()
		t1.Mul(t1, two64)
		t2.Sub(s, t1)
		t2.Floor(t2)
		lo := t2.GetUI()

		g.hi[i] = hi
		g.lo[i] = lo
		if 0 == hi && 0 == lo {
			i++
			break
		}

		// s += d * exp(e * i^2)
		t1.MulUI(e, uint64(i*i))
		t1.Exp(t1)
		t1.Mul(d, t1)
		s.Add(s, t1)
	}
	for ; i < size; i++ {
		g.hi[i] = 0xFFFFFFFFFFFFFFFF
		g.lo[i] = 0xFFFFFFFFFFFFFFFF
	}

	return g
}

func (g *cdf128) Prng() *csprng.Ctx { return g.prng }

func (g *cdf128) Sample() int32 {
	xhi, xlo := g.prng.Uint128()

	var a int32
	for st := int32(len(g.hi)) >> 1; st > 0; st >>= 1 {
		b := a + st
		if b < int32(len(g.hi)) &&
			(xhi > g.hi[b] || (xhi == g.hi[b] && xlo >= g.lo[b])) {
			a = b
		}
	}

	if xlo&1 != 0 {
		return a
	}
	return -a
}
