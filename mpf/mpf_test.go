package mpf_test

import (
	"math"
	"testing"

	"github.com/safecrypto/libsafecrypto-go/mpf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicArithmetic(t *testing.T) {
	a := mpf.NewSetD(1.5)
	b := mpf.NewSetD(2.25)

	assert.InDelta(t, 3.75, mpf.New().Add(a, b).GetD(), 1e-15)
	assert.InDelta(t, -0.75, mpf.New().Sub(a, b).GetD(), 1e-15)
	assert.InDelta(t, 3.375, mpf.New().Mul(a, b).GetD(), 1e-15)
	assert.InDelta(t, 1.5/2.25, mpf.New().Div(a, b).GetD(), 1e-15)
}

func TestNaNPropagation(t *testing.T) {
	nan := mpf.NewSetD(math.NaN())
	x := mpf.NewSetD(2.0)

	assert.True(t, mpf.New().Add(x, nan).IsNaN())
	assert.True(t, mpf.New().Sub(nan, x).IsNaN())
	assert.True(t, mpf.New().Mul(x, nan).IsNaN())
	assert.True(t, mpf.New().Div(nan, x).IsNaN())
	assert.True(t, mpf.New().Sqrt(nan).IsNaN())
	assert.True(t, mpf.New().Exp(nan).IsNaN())
	assert.True(t, mpf.New().Log(nan).IsNaN())
}

func TestInfinityRules(t *testing.T) {
	posInf := mpf.NewSetD(math.Inf(+1))
	negInf := mpf.NewSetD(math.Inf(-1))
	zero := mpf.New()
	one := mpf.NewSetD(1.0)
	minusOne := mpf.NewSetD(-1.0)

	// Opposite infinities cancel to NaN; like signs stay infinite.
	assert.True(t, mpf.New().Add(posInf, negInf).IsNaN())
	sum := mpf.New().Add(posInf, posInf)
	assert.True(t, sum.IsInf())
	assert.False(t, sum.IsNeg())

	// Infinity times zero is NaN.
	assert.True(t, mpf.New().Mul(posInf, zero).IsNaN())

	// 1/0 = +inf, -1/0 = -inf, 0/0 = NaN.
	d := mpf.New().Div(one, zero)
	assert.True(t, d.IsInf())
	assert.False(t, d.IsNeg())
	d.Div(minusOne, zero)
	assert.True(t, d.IsInf())
	assert.True(t, d.IsNeg())
	assert.True(t, mpf.New().Div(zero, zero).IsNaN())

	// sqrt of a negative value is NaN.
	assert.True(t, mpf.New().Sqrt(minusOne).IsNaN())

	// x^0 = 1 for everything, including NaN and infinities.
	assert.Equal(t, 1.0, mpf.New().PowUI(posInf, 0).GetD())
	assert.Equal(t, 1.0, mpf.New().PowUI(mpf.NewSetD(math.NaN()), 0).GetD())

	// Infinity powers keep parity.
	p := mpf.New().PowUI(negInf, 2)
	assert.True(t, p.IsInf())
	assert.False(t, p.IsNeg())
	p.PowUI(negInf, 3)
	assert.True(t, p.IsInf())
	assert.True(t, p.IsNeg())
	p.PowUI(posInf, 5)
	assert.True(t, p.IsInf())
	assert.False(t, p.IsNeg())
}

func TestExpLog(t *testing.T) {
	mpf.SetDefaultPrecision(128)
	defer mpf.SetDefaultPrecision(128)

	for _, x := range []float64{0, 0.5, 1, -1, 3.25, -7.5, 20} {
		got := mpf.New().Exp(mpf.NewSetD(x)).GetD()
		assert.InEpsilon(t, math.Exp(x), got, 1e-12, "exp(%f)", x)
	}

	for _, x := range []float64{0.25, 1, 2, 10, 12345.678} {
		got := mpf.New().Log(mpf.NewSetD(x)).GetD()
		if 1 == x {
			assert.InDelta(t, 0, got, 1e-15)
		} else {
			assert.InEpsilon(t, math.Log(x), got, 1e-12, "log(%f)", x)
		}
	}

	// log and exp are inverses well beyond double precision.
	x := mpf.NewSetD(2.0)
	roundTrip := mpf.New().Exp(mpf.New().Log(x))
	diff := mpf.New().Sub(roundTrip, x)
	assert.Less(t, math.Abs(diff.GetD()), 1e-30)

	// Edge cases.
	assert.True(t, mpf.New().Log(mpf.New()).IsInf())
	assert.True(t, mpf.New().Log(mpf.New()).IsNeg())
	assert.True(t, mpf.New().Log(mpf.NewSetD(-2)).IsNaN())
	assert.Equal(t, 0.0, mpf.New().Exp(mpf.NewSetD(math.Inf(-1))).GetD())
}

func TestPi(t *testing.T) {
	pi := mpf.New().Pi()
	assert.InEpsilon(t, math.Pi, pi.GetD(), 1e-15)

	// sqrt(pi)^2 == pi at working precision
	s := mpf.New().Sqrt(pi)
	sq := mpf.New().Mul(s, s)
	diff := mpf.New().Sub(sq, pi)
	assert.Less(t, math.Abs(diff.GetD()), 1e-30)
}

func TestFloor(t *testing.T) {
	assert.Equal(t, 2.0, mpf.New().Floor(mpf.NewSetD(2.9)).GetD())
	assert.Equal(t, -3.0, mpf.New().Floor(mpf.NewSetD(-2.1)).GetD())
	assert.Equal(t, 5.0, mpf.New().Floor(mpf.NewSetD(5.0)).GetD())
}

func TestPrecisionSetting(t *testing.T) {
	mpf.SetDefaultPrecision(256)
	defer mpf.SetDefaultPrecision(128)

	z := mpf.New()
	assert.Equal(t, uint(256), z.Prec())

	// exp(1) at 256 bits should agree with e to double precision and be
	// stable when recomputed.
	e1 := mpf.New().Exp(mpf.NewSetD(1))
	e2 := mpf.New().Exp(mpf.NewSetD(1))
	assert.Equal(t, 0, e1.Cmp(e2))
	assert.InEpsilon(t, math.E, e1.GetD(), 1e-15)
}

func TestFits(t *testing.T) {
	assert.True(t, mpf.NewSetD(12345).FitsUlimb())
	assert.True(t, mpf.NewSetD(12345).FitsSlimb())
	assert.False(t, mpf.NewSetD(-1).FitsUlimb())
	assert.False(t, mpf.NewSetD(math.Inf(1)).FitsUlimb())

	big := mpf.New().SetUI(1)
	big.Mul2Exp(big, 80)
	assert.False(t, big.FitsUlimb())
	assert.False(t, big.FitsSlimb())
}

func TestGetUIExtractsChunks(t *testing.T) {
	// Build the 128-bit value (3 << 64) + 9 and take it apart again.
	v := mpf.New().SetUI(3)
	v.Mul2Exp(v, 64)
	v.AddUI(v, 9)

	hiPart := mpf.New().Div2Exp(v, 64)
	hiPart.Floor(hiPart)
	require.Equal(t, uint64(3), hiPart.GetUI())

	lo := mpf.New().Mul2Exp(hiPart, 64)
	lo.Sub(v, lo)
	assert.Equal(t, uint64(9), lo.GetUI())
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, mpf.NewSetD(1).Cmp(mpf.NewSetD(2)))
	assert.Equal(t, 1, mpf.NewSetD(2).Cmp(mpf.NewSetD(1)))
	assert.Equal(t, 0, mpf.NewSetD(2).Cmp(mpf.NewSetD(2)))
	assert.Equal(t, -1, mpf.NewSetD(math.Inf(-1)).Cmp(mpf.New()))
	assert.Equal(t, 1, mpf.NewSetD(math.Inf(1)).Cmp(mpf.NewSetD(1e300)))
	assert.Equal(t, 0, mpf.NewSetD(math.NaN()).Cmp(mpf.NewSetD(1)))
}
