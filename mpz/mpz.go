// Package mpz implements the signed multi-precision integers used by the
// polynomial and table-construction layers. Values are signed-magnitude limb
// arrays: the magnitude is a little-endian uint64 slice whose top limb is
// non-zero, and the sign lives in a signed limb count, negative for negative
// values and zero for zero.
package mpz

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Int is one signed multi-precision integer. The zero value is the integer
// zero and ready to use.
type Int struct {
	limbs []uint64
	used  int
}

// New returns a fresh zero integer.
func New() *Int { return &Int{} }

// NewSetSI returns a fresh integer holding v.
func NewSetSI(v int64) *Int { return New().SetSI(v) }

// NewSetUI returns a fresh integer holding v.
func NewSetUI(v uint64) *Int { return New().SetUI(v) }

// Clear zeroes the limb storage and resets the value to zero.
func (z *Int) Clear() {
	for i := range z.limbs {
		z.limbs[i] = 0
	}
	z.limbs = nil
	z.used = 0
}

func (z *Int) setNat(mag []uint64, neg bool) *Int {
	z.limbs = mag
	z.used = len(mag)
	if neg && len(mag) > 0 {
		z.used = -z.used
	}
	return z
}

func (z *Int) mag() []uint64 {
	return z.limbs[:abs(z.used)]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Size returns the signed limb count.
func (z *Int) Size() int { return z.used }

// SetSize overrides the signed limb count, truncating the magnitude. Used by
// the Barrett reduction to mask a value to its low limbs.
func (z *Int) SetSize(size int) {
	n := abs(size)
	if n > len(z.limbs) {
		n = len(z.limbs)
	}
	mag := natNorm(z.limbs[:n])
	z.setNat(append([]uint64(nil), mag...), size < 0)
}

// Limbs returns a copy of the magnitude limbs, little-endian.
func (z *Int) Limbs() []uint64 {
	return append([]uint64(nil), z.mag()...)
}

// IsZero reports whether z is zero.
func (z *Int) IsZero() bool { return 0 == z.used }

// IsOne reports whether z is one.
func (z *Int) IsOne() bool { return 1 == z.used && 1 == z.limbs[0] }

// IsNeg reports whether z is negative.
func (z *Int) IsNeg() bool { return z.used < 0 }

// Sign returns -1, 0 or 1.
func (z *Int) Sign() int {
	switch {
	case z.used < 0:
		return -1
	case z.used > 0:
		return 1
	default:
		return 0
	}
}

// Copy sets z to x and returns z.
func (z *Int) Copy(x *Int) *Int {
	if z == x {
		return z
	}
	return z.setNat(append([]uint64(nil), x.mag()...), x.used < 0)
}

// SetUI sets z to the unsigned limb v.
func (z *Int) SetUI(v uint64) *Int {
	if 0 == v {
		return z.setNat(nil, false)
	}
	return z.setNat([]uint64{v}, false)
}

// SetSI sets z to the signed limb v.
func (z *Int) SetSI(v int64) *Int {
	if 0 == v {
		return z.setNat(nil, false)
	}
	neg := v < 0
	var mag uint64
	if neg {
		mag = uint64(-(v + 1)) + 1
	} else {
		mag = uint64(v)
	}
	return z.setNat([]uint64{mag}, neg)
}

// SetD sets z to the integer part of v.
func (z *Int) SetD(v float64) *Int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return z.setNat(nil, false)
	}
	neg := v < 0
	v = math.Trunc(math.Abs(v))
	var mag []uint64
	for v >= 1 {
		mag = append(mag, uint64(math.Mod(v, 18446744073709551616.0)))
		v = math.Floor(v / 18446744073709551616.0)
	}
	return z.setNat(natNorm(mag), neg)
}

// SetBytes sets z to the non-negative integer with the given little-endian
// byte representation.
func (z *Int) SetBytes(b []byte) *Int {
	mag := make([]uint64, (len(b)+7)/8)
	for i, v := range b {
		mag[i/8] |= uint64(v) << uint(8*(i%8))
	}
	return z.setNat(natNorm(mag), false)
}

// SetLimbs sets z to the non-negative integer with the given little-endian
// limb representation.
func (z *Int) SetLimbs(limbs []uint64) *Int {
	return z.setNat(natNorm(append([]uint64(nil), limbs...)), false)
}

// SetString parses s in the given base (10 or 16, with an optional leading
// minus sign).
func (z *Int) SetString(base int, s string) error {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if 16 == base {
		s = strings.TrimPrefix(s, "0x")
	}
	if 0 == len(s) {
		return fmt.Errorf("empty integer literal")
	}

	z.setNat(nil, false)
	for _, r := range s {
		d, err := strconv.ParseUint(string(r), base, 8)
		if err != nil {
			return fmt.Errorf("invalid base-%d digit %q", base, r)
		}
		mag := natMulUI(z.mag(), uint64(base))
		mag = natAdd(mag, []uint64{d})
		z.setNat(mag, false)
	}
	if neg && z.used > 0 {
		z.used = -z.used
	}
	return nil
}

// GetUI returns the low limb of the magnitude.
func (z *Int) GetUI() uint64 {
	if 0 == z.used {
		return 0
	}
	return z.limbs[0]
}

// GetSI returns the low limb with the sign applied.
func (z *Int) GetSI() int64 {
	if 0 == z.used {
		return 0
	}
	v := int64(z.limbs[0])
	if z.used < 0 {
		return -v
	}
	return v
}

// GetD returns the closest float64.
func (z *Int) GetD() float64 {
	var v float64
	for i := abs(z.used) - 1; i >= 0; i-- {
		v = v*18446744073709551616.0 + float64(z.limbs[i])
	}
	if z.used < 0 {
		return -v
	}
	return v
}

// GetBytes returns the little-endian byte representation of the magnitude.
func (z *Int) GetBytes() []byte {
	mag := z.mag()
	out := make([]byte, len(mag)*8)
	for i, limb := range mag {
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(limb >> uint(8*j))
		}
	}
	// Trim leading (most significant) zero bytes
	n := len(out)
	for n > 0 && 0 == out[n-1] {
		n--
	}
	return out[:n]
}

// String formats z in decimal.
func (z *Int) String() string {
	if 0 == z.used {
		return "0"
	}
	var sb strings.Builder
	if z.used < 0 {
		sb.WriteByte('-')
	}

	mag := append([]uint64(nil), z.mag()...)
	var digits []byte
	for len(mag) > 0 {
		var rem uint64
		for i := len(mag) - 1; i >= 0; i-- {
			mag[i], rem = bits.Div64(rem, mag[i], 10)
		}
		digits = append(digits, byte('0')+byte(rem))
		mag = natNorm(mag)
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

// SizeInBase returns the number of digits needed to express |z| in the given
// base, at least 1.
func (z *Int) SizeInBase(base int) int {
	if 0 == z.used {
		return 1
	}
	if 2 == base {
		mag := z.mag()
		return 64*(len(mag)-1) + bits.Len64(mag[len(mag)-1])
	}
	return len(strings.TrimPrefix(z.String(), "-"))
}

// Cmp compares z against x, returning <0, 0 or >0.
func (z *Int) Cmp(x *Int) int {
	if z.Sign() != x.Sign() {
		if z.Sign() < x.Sign() {
			return -1
		}
		return 1
	}
	c := natCmp(z.mag(), x.mag())
	if z.used < 0 {
		return -c
	}
	return c
}

// CmpUI compares z against an unsigned limb.
func (z *Int) CmpUI(v uint64) int { return z.Cmp(NewSetUI(v)) }

// CmpSI compares z against a signed limb.
func (z *Int) CmpSI(v int64) int { return z.Cmp(NewSetSI(v)) }

// CmpD compares z against the integer part of a double.
func (z *Int) CmpD(v float64) int { return z.Cmp(New().SetD(v)) }

// CmpAbs compares |z| against |x|.
func (z *Int) CmpAbs(x *Int) int { return natCmp(z.mag(), x.mag()) }

// CmpAbsUI compares |z| against an unsigned limb.
func (z *Int) CmpAbsUI(v uint64) int { return z.CmpAbs(NewSetUI(v)) }

// CmpAbsD compares |z| against |v|.
func (z *Int) CmpAbsD(v float64) int { return z.CmpAbs(New().SetD(v)) }

// Neg sets z to -x.
func (z *Int) Neg(x *Int) *Int {
	z.Copy(x)
	z.used = -z.used
	return z
}

// Abs sets z to |x|.
func (z *Int) Abs(x *Int) *Int {
	z.Copy(x)
	z.used = abs(z.used)
	return z
}

// addMag combines two signed magnitudes.
func (z *Int) addMag(xMag []uint64, xNeg bool, yMag []uint64, yNeg bool) *Int {
	if xNeg == yNeg {
		return z.setNat(natAdd(xMag, yMag), xNeg)
	}
	switch natCmp(xMag, yMag) {
	case 0:
		return z.setNat(nil, false)
	case 1:
		return z.setNat(natSub(xMag, yMag), xNeg)
	default:
		return z.setNat(natSub(yMag, xMag), yNeg)
	}
}

// Add sets z = x + y.
func (z *Int) Add(x, y *Int) *Int {
	return z.addMag(x.mag(), x.used < 0, y.mag(), y.used < 0)
}

// AddUI sets z = x + v.
func (z *Int) AddUI(x *Int, v uint64) *Int { return z.Add(x, NewSetUI(v)) }

// Sub sets z = x - y.
func (z *Int) Sub(x, y *Int) *Int {
	return z.addMag(x.mag(), x.used < 0, y.mag(), y.used >= 0)
}

// SubUI sets z = x - v.
func (z *Int) SubUI(x *Int, v uint64) *Int { return z.Sub(x, NewSetUI(v)) }

// Mul sets z = x * y.
func (z *Int) Mul(x, y *Int) *Int {
	neg := (x.used < 0) != (y.used < 0)
	return z.setNat(natMul(x.mag(), y.mag()), neg)
}

// MulUI sets z = x * v.
func (z *Int) MulUI(x *Int, v uint64) *Int {
	return z.setNat(natMulUI(x.mag(), v), x.used < 0)
}

// MulSI sets z = x * v.
func (z *Int) MulSI(x *Int, v int64) *Int { return z.Mul(x, NewSetSI(v)) }

// AddMul sets z += x * y.
func (z *Int) AddMul(x, y *Int) *Int {
	return z.Add(z, New().Mul(x, y))
}

// SubMul sets z -= x * y.
func (z *Int) SubMul(x, y *Int) *Int {
	return z.Sub(z, New().Mul(x, y))
}

// AddMulUI sets z += x * v.
func (z *Int) AddMulUI(x *Int, v uint64) *Int {
	return z.Add(z, New().MulUI(x, v))
}

// SubMulUI sets z -= x * v.
func (z *Int) SubMulUI(x *Int, v uint64) *Int {
	return z.Sub(z, New().MulUI(x, v))
}

// AddSqr sets z += x^2.
func (z *Int) AddSqr(x *Int) *Int { return z.AddMul(x, x) }

// SubSqr sets z -= x^2.
func (z *Int) SubSqr(x *Int) *Int { return z.SubMul(x, x) }

// Mul2Exp sets z = x << s.
func (z *Int) Mul2Exp(x *Int, s uint) *Int {
	return z.setNat(natShl(x.mag(), s), x.used < 0)
}

// DivQuo2Exp sets z = x >> s, truncating toward zero.
func (z *Int) DivQuo2Exp(x *Int, s uint) *Int {
	return z.setNat(natShr(x.mag(), s), x.used < 0)
}

// PowUI sets z = x^e.
func (z *Int) PowUI(x *Int, e uint64) *Int {
	result := NewSetUI(1)
	base := New().Copy(x)
	for e != 0 {
		if e&1 != 0 {
			result.Mul(result, base)
		}
		base.Mul(base, base)
		e >>= 1
	}
	return z.Copy(result)
}

// Sqrt sets z = floor(sqrt(x)); x must be non-negative.
func (z *Int) Sqrt(x *Int) error {
	if x.used < 0 {
		return fmt.Errorf("square root of negative integer")
	}
	if 0 == x.used {
		z.setNat(nil, false)
		return nil
	}

	// Newton iteration starting above the root
	r := New().SetUI(1)
	r.Mul2Exp(r, uint(x.SizeInBase(2)+1)/2+1)
	t := New()
	u := New()
	for {
		// t = (r + x/r) / 2
		q, _, err := DivQR(x, r)
		if err != nil {
			return err
		}
		t.Add(r, q)
		t.DivQuo2Exp(t, 1)
		if t.CmpAbs(r) >= 0 {
			break
		}
		r.Copy(t)
	}
	// Adjust down while r^2 > x
	for u.Mul(r, r); u.CmpAbs(x) > 0; u.Mul(r, r) {
		r.SubUI(r, 1)
	}
	z.Copy(r)
	return nil
}
