// Package mpf provides the arbitrary-precision floating point used when
// building sampler tables: a binary mantissa/exponent float of configurable
// precision with explicit NaN and infinity sentinels and quiet-NaN
// propagation through every operation.
//
// The working precision is a process-wide setting consulted when a value is
// initialized; changing it never re-rounds existing values.
package mpf

import (
	"math"
	"math/big"
)

// kind distinguishes the sentinel states of a value.
type kind int

const (
	finite kind = iota
	inf
	nan
)

var defaultPrec uint = 128

// SetDefaultPrecision sets the precision in bits applied to subsequently
// initialized values.
func SetDefaultPrecision(bits uint) {
	if bits < 2 {
		bits = 2
	}
	defaultPrec = bits
}

// DefaultPrecision returns the current global precision in bits.
func DefaultPrecision() uint { return defaultPrec }

// Float is one arbitrary-precision value. The zero value is not ready for
// use; construct with New.
type Float struct {
	k   kind
	neg bool // sign of an infinity
	f   *big.Float
}

// New returns a zero value at the global precision.
func New() *Float {
	return &Float{f: new(big.Float).SetPrec(defaultPrec)}
}

// NewWithPrec returns a zero value at an explicit precision.
func NewWithPrec(bits uint) *Float {
	return &Float{f: new(big.Float).SetPrec(bits)}
}

// NewSetD returns a fresh value holding v.
func NewSetD(v float64) *Float { return New().SetD(v) }

// Prec returns the value's precision in bits.
func (z *Float) Prec() uint { return z.f.Prec() }

// Clear resets the value to zero.
func (z *Float) Clear() {
	z.k = finite
	z.neg = false
	z.f.SetInt64(0)
}

func (z *Float) setNaN() *Float {
	z.k = nan
	z.neg = false
	z.f.SetInt64(0)
	return z
}

func (z *Float) setInf(negative bool) *Float {
	z.k = inf
	z.neg = negative
	z.f.SetInt64(0)
	return z
}

// IsNaN reports whether z is NaN.
func (z *Float) IsNaN() bool { return nan == z.k }

// IsInf reports whether z is an infinity of either sign.
func (z *Float) IsInf() bool { return inf == z.k }

// IsZero reports whether z is zero.
func (z *Float) IsZero() bool { return finite == z.k && 0 == z.f.Sign() }

// IsNeg reports whether z is negative; a negative infinity is negative and
// NaN is not.
func (z *Float) IsNeg() bool {
	switch z.k {
	case inf:
		return z.neg
	case finite:
		return z.f.Sign() < 0
	default:
		return false
	}
}

// Sign returns -1, 0 or 1; the sign of NaN is 0.
func (z *Float) Sign() int {
	switch z.k {
	case nan:
		return 0
	case inf:
		if z.neg {
			return -1
		}
		return 1
	default:
		return z.f.Sign()
	}
}

// SetUI sets z to the unsigned integer v.
func (z *Float) SetUI(v uint64) *Float {
	z.k = finite
	z.neg = false
	z.f.SetUint64(v)
	return z
}

// SetSI sets z to the signed integer v.
func (z *Float) SetSI(v int64) *Float {
	z.k = finite
	z.neg = false
	z.f.SetInt64(v)
	return z
}

// SetD sets z to the double v, mapping IEEE NaN and infinities onto the
// sentinels.
func (z *Float) SetD(v float64) *Float {
	switch {
	case math.IsNaN(v):
		return z.setNaN()
	case math.IsInf(v, +1):
		return z.setInf(false)
	case math.IsInf(v, -1):
		return z.setInf(true)
	default:
		z.k = finite
		z.neg = false
		z.f.SetFloat64(v)
		return z
	}
}

// Set copies x into z.
func (z *Float) Set(x *Float) *Float {
	z.k = x.k
	z.neg = x.neg
	z.f.Set(x.f)
	return z
}

// GetD returns the closest double, with sentinel states mapped onto IEEE
// specials.
func (z *Float) GetD() float64 {
	switch z.k {
	case nan:
		return math.NaN()
	case inf:
		if z.neg {
			return math.Inf(-1)
		}
		return math.Inf(+1)
	default:
		v, _ := z.f.Float64()
		return v
	}
}

// GetUI returns the low 64 bits of the integer part of |z|; infinities
// saturate and NaN yields zero.
func (z *Float) GetUI() uint64 {
	switch z.k {
	case nan:
		return 0
	case inf:
		return math.MaxUint64
	}
	i, _ := new(big.Float).Abs(z.f).Int(nil)
	if i.IsUint64() {
		return i.Uint64()
	}
	// Low 64 bits of an oversized integer part
	return i.And(i, new(big.Int).SetUint64(^uint64(0))).Uint64()
}

// GetSI returns the integer part as a signed limb, saturating.
func (z *Float) GetSI() int64 {
	switch z.k {
	case nan:
		return 0
	case inf:
		if z.neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	i, _ := z.f.Int64()
	return i
}

// FitsSlimb reports whether the integer part fits a signed limb.
func (z *Float) FitsSlimb() bool {
	if finite != z.k {
		return false
	}
	t := new(big.Float).SetPrec(z.f.Prec())
	return t.Abs(z.f).Cmp(new(big.Float).SetUint64(1<<63)) < 0
}

// FitsUlimb reports whether z is non-negative and its integer part fits an
// unsigned limb.
func (z *Float) FitsUlimb() bool {
	if finite != z.k || z.f.Sign() < 0 {
		return false
	}
	limit := new(big.Float).SetUint64(math.MaxUint64)
	limit.Add(limit, big.NewFloat(1))
	return z.f.Cmp(limit) < 0
}

// Cmp compares z and x: -1, 0 or +1. The ordering places -Inf below every
// finite value and +Inf above; comparison with NaN returns 0 with ok=false
// semantics folded to 0, matching an unordered compare.
func (z *Float) Cmp(x *Float) int {
	if nan == z.k || nan == x.k {
		return 0
	}
	if inf == z.k || inf == x.k {
		zs, xs := z.infRank(), x.infRank()
		switch {
		case zs < xs:
			return -1
		case zs > xs:
			return 1
		default:
			return 0
		}
	}
	return z.f.Cmp(x.f)
}

// infRank ranks values as -2 (-Inf), 0 (finite) or +2 (+Inf) for mixed
// comparisons.
func (z *Float) infRank() int {
	if inf != z.k {
		return 0
	}
	if z.neg {
		return -2
	}
	return 2
}

// CmpUI compares z against an unsigned integer.
func (z *Float) CmpUI(v uint64) int { return z.Cmp(New().SetUI(v)) }

// CmpD compares z against a double.
func (z *Float) CmpD(v float64) int { return z.Cmp(New().SetD(v)) }

// Neg sets z = -x.
func (z *Float) Neg(x *Float) *Float {
	switch x.k {
	case nan:
		return z.setNaN()
	case inf:
		return z.setInf(!x.neg)
	}
	z.k = finite
	z.f.Neg(x.f)
	return z
}

// Abs sets z = |x|.
func (z *Float) Abs(x *Float) *Float {
	switch x.k {
	case nan:
		return z.setNaN()
	case inf:
		return z.setInf(false)
	}
	z.k = finite
	z.f.Abs(x.f)
	return z
}
