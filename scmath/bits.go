// Package scmath provides the scalar integer helpers used throughout the
// library: population counts, leading/trailing zero counts, bit reversal and
// rotation, integer square roots, constant-time comparison and the binary
// fraction expansions consumed by the Gaussian table builders.
//
// Every function in this package is constant-time with respect to its value
// arguments unless noted otherwise. Noted otherwise: Log2* and CeilLog2*
// branch on a zero or non-power-of-two argument, ModLimitS* branch on the
// range of x, and the BinaryFraction* expansions branch on x bit by bit.
package scmath

import "math/bits"

// LimbBits is the width of a multi-precision limb on this build.
const LimbBits = 64

// Hamming64 returns the number of set bits in x.
func Hamming64(x uint64) uint32 { return uint32(bits.OnesCount64(x)) }

// Hamming32 returns the number of set bits in x.
func Hamming32(x uint32) uint32 { return uint32(bits.OnesCount32(x)) }

// Hamming16 returns the number of set bits in x.
func Hamming16(x uint16) uint32 { return uint32(bits.OnesCount16(x)) }

// Hamming8 returns the number of set bits in x.
func Hamming8(x uint8) uint32 { return uint32(bits.OnesCount8(x)) }

// Parity64 returns the bit parity of x.
func Parity64(x uint64) uint32 { return uint32(bits.OnesCount64(x)) & 1 }

// Parity32 returns the bit parity of x.
func Parity32(x uint32) uint32 { return uint32(bits.OnesCount32(x)) & 1 }

// Parity16 returns the bit parity of x.
func Parity16(x uint16) uint32 { return uint32(bits.OnesCount16(x)) & 1 }

// Parity8 returns the bit parity of x.
func Parity8(x uint8) uint32 { return uint32(bits.OnesCount8(x)) & 1 }

// Ctz64 returns the number of trailing zero bits in x; 64 if x is zero.
func Ctz64(x uint64) uint32 { return uint32(bits.TrailingZeros64(x)) }

// Ctz32 returns the number of trailing zero bits in x; 32 if x is zero.
func Ctz32(x uint32) uint32 { return uint32(bits.TrailingZeros32(x)) }

// Ctz16 returns the number of trailing zero bits in x; 16 if x is zero.
func Ctz16(x uint16) uint32 { return uint32(bits.TrailingZeros16(x)) }

// Ctz8 returns the number of trailing zero bits in x; 8 if x is zero.
func Ctz8(x uint8) uint32 { return uint32(bits.TrailingZeros8(x)) }

// Clz64 returns the number of leading zero bits in x; 64 if x is zero.
func Clz64(x uint64) uint32 { return uint32(bits.LeadingZeros64(x)) }

// Clz32 returns the number of leading zero bits in x; 32 if x is zero.
func Clz32(x uint32) uint32 { return uint32(bits.LeadingZeros32(x)) }

// Clz16 returns the number of leading zero bits in x; 16 if x is zero.
func Clz16(x uint16) uint32 { return uint32(bits.LeadingZeros16(x)) }

// Clz8 returns the number of leading zero bits in x; 8 if x is zero.
func Clz8(x uint8) uint32 { return uint32(bits.LeadingZeros8(x)) }

// Log2_64 returns floor(log2(x)) for x >= 1, and 0 for x == 0.
func Log2_64(x uint64) uint32 {
	if 0 == x {
		return 0
	}
	return uint32(63 - bits.LeadingZeros64(x))
}

// Log2_32 returns floor(log2(x)) for x >= 1, and 0 for x == 0.
func Log2_32(x uint32) uint32 {
	if 0 == x {
		return 0
	}
	return uint32(31 - bits.LeadingZeros32(x))
}

// Log2_16 returns floor(log2(x)) for x >= 1, and 0 for x == 0.
func Log2_16(x uint16) uint32 { return Log2_32(uint32(x)) }

// Log2_8 returns floor(log2(x)) for x >= 1, and 0 for x == 0.
func Log2_8(x uint8) uint32 { return Log2_32(uint32(x)) }

// Log2 returns floor(log2(x)) for the host word size.
func Log2(x uint) uint32 { return Log2_64(uint64(x)) }

// CeilLog2_64 returns ceil(log2(x)), i.e. Log2 incremented when x is not a
// power of two.
func CeilLog2_64(x uint64) uint32 {
	l := Log2_64(x)
	if x&(x-1) != 0 {
		l++
	}
	return l
}

// CeilLog2_32 returns ceil(log2(x)).
func CeilLog2_32(x uint32) uint32 {
	l := Log2_32(x)
	if x&(x-1) != 0 {
		l++
	}
	return l
}

// CeilLog2_16 returns ceil(log2(x)).
func CeilLog2_16(x uint16) uint32 { return CeilLog2_32(uint32(x)) }

// CeilLog2_8 returns ceil(log2(x)).
func CeilLog2_8(x uint8) uint32 { return CeilLog2_32(uint32(x)) }

// CeilLog2 returns ceil(log2(x)) for the host word size.
func CeilLog2(x uint) uint32 { return CeilLog2_64(uint64(x)) }

// BitReverse64 reverses the bit order of x.
func BitReverse64(x uint64) uint64 { return bits.Reverse64(x) }

// BitReverse32 reverses the bit order of x.
func BitReverse32(x uint32) uint32 { return bits.Reverse32(x) }

// BitReverse16 reverses the bit order of x.
func BitReverse16(x uint16) uint16 { return bits.Reverse16(x) }

// BitReverse8 reverses the bit order of x.
func BitReverse8(x uint8) uint8 { return bits.Reverse8(x) }

// Rotl64 rotates w left by n bit positions.
func Rotl64(w uint64, n int32) uint64 { return bits.RotateLeft64(w, int(n&0x3F)) }

// Rotl32 rotates w left by n bit positions.
func Rotl32(w uint32, n int32) uint32 { return bits.RotateLeft32(w, int(n&0x1F)) }

// Rotl16 rotates w left by n bit positions.
func Rotl16(w uint16, n int32) uint16 { return bits.RotateLeft16(w, int(n&0xF)) }

// Rotl8 rotates w left by n bit positions.
func Rotl8(w uint8, n int32) uint8 { return bits.RotateLeft8(w, int(n&0x7)) }

// ConstTimeLessThan returns 1 if a < b and 0 otherwise without branching on
// the operands.
func ConstTimeLessThan(a, b uint64) int32 {
	return int32(((((a ^ b) & ((a - b) ^ b)) ^ (a - b)) & 0x8000000000000000) >> 63)
}

// ConstTimeLessThan32 returns 1 if a < b and 0 otherwise without branching on
// the operands.
func ConstTimeLessThan32(a, b uint32) int32 {
	return int32(((((a ^ b) & ((a - b) ^ b)) ^ (a - b)) & 0x80000000) >> 31)
}

// ModLimitS64 clamps x into (-q, q) by a single conditional add or subtract
// of q.
func ModLimitS64(x, q int64) int64 {
	if x >= q {
		x -= q
	}
	if x <= -q {
		x += q
	}
	return x
}

// ModLimitS32 clamps x into (-q, q) by a single conditional add or subtract
// of q.
func ModLimitS32(x, q int32) int32 {
	if x >= q {
		x -= q
	}
	if x <= -q {
		x += q
	}
	return x
}

// ModLimitS16 clamps x into (-q, q).
func ModLimitS16(x, q int16) int16 {
	if x >= q {
		x -= q
	}
	if x <= -q {
		x += q
	}
	return x
}

// ModLimitS8 clamps x into (-q, q).
func ModLimitS8(x, q int8) int8 {
	if x >= q {
		x -= q
	}
	if x <= -q {
		x += q
	}
	return x
}
