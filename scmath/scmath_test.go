package scmath_test

import (
	"testing"

	"github.com/safecrypto/libsafecrypto-go/scmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog2(t *testing.T) {
	tests := []struct {
		name string
		x    uint64
		want uint32
	}{
		{"zero", 0, 0},
		{"one", 1, 0},
		{"two", 2, 1},
		{"three", 3, 1},
		{"pow2", 1 << 17, 17},
		{"pow2 minus one", (1 << 17) - 1, 16},
		{"max", 0xFFFFFFFFFFFFFFFF, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scmath.Log2_64(tt.x))
		})
	}
}

func TestCeilLog2(t *testing.T) {
	tests := []struct {
		name string
		x    uint64
		want uint32
	}{
		{"one", 1, 0},
		{"two", 2, 1},
		{"three", 3, 2},
		{"pow2", 4096, 12},
		{"pow2 plus one", 4097, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scmath.CeilLog2_64(tt.x))
		})
	}
}

func TestSqrt(t *testing.T) {
	tests := []struct {
		x    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{15, 3},
		{16, 4},
		{1 << 32, 1 << 16},
		{(1 << 32) - 1, (1 << 16) - 1},
		{0xFFFFFFFFFFFFFFFF, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, scmath.Sqrt64(tt.x), "sqrt(%d)", tt.x)
	}

	for x := uint32(0); x < 2000; x++ {
		r := scmath.Sqrt32(x)
		assert.LessOrEqual(t, r*r, x)
		assert.Greater(t, (r+1)*(r+1), x)
	}
}

func TestConstTimeLessThan(t *testing.T) {
	tests := []struct {
		a, b uint64
		want int32
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 0},
		{0xFFFFFFFFFFFFFFFF, 0, 0},
		{0, 0xFFFFFFFFFFFFFFFF, 1},
		{0x8000000000000000, 0x7FFFFFFFFFFFFFFF, 0},
		{0x7FFFFFFFFFFFFFFF, 0x8000000000000000, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, scmath.ConstTimeLessThan(tt.a, tt.b), "%#x < %#x", tt.a, tt.b)
	}
}

func TestModLimit(t *testing.T) {
	assert.Equal(t, int32(3), scmath.ModLimitS32(3, 7))
	assert.Equal(t, int32(0), scmath.ModLimitS32(7, 7))
	assert.Equal(t, int32(0), scmath.ModLimitS32(-7, 7))
	assert.Equal(t, int32(-6), scmath.ModLimitS32(-6, 7))
	assert.Equal(t, int32(1), scmath.ModLimitS32(8, 7))
}

func TestBinaryFraction(t *testing.T) {
	// The expansion of 1/2 leaves the top bit clear and sets every later bit
	// (strict less-than rejects 2^-1 itself).
	assert.Equal(t, uint32(0), scmath.BinaryFraction32(0.0))
	assert.Equal(t, uint32(0x7FFFFFFF), scmath.BinaryFraction32(0.5))
	assert.Equal(t, uint32(0xFFFFFFFF), scmath.BinaryFraction32(1.0))

	// 0.25 => 0.00111... (first two bits fail, all later bits accumulate)
	assert.Equal(t, uint32(0x3FFFFFFF), scmath.BinaryFraction32(0.25))

	hi, lo := scmath.BinaryFraction128(1.0)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), hi)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), lo)
}

func TestArrRotl32(t *testing.T) {
	w := []uint32{0x80000000, 0x00000001}
	require.NoError(t, scmath.ArrRotl32(w, 1))
	assert.Equal(t, []uint32{0x00000000, 0x00000003}, w)

	w = []uint32{0x00000000, 0x00000003}
	require.NoError(t, scmath.ArrRotl32(w, -1))
	assert.Equal(t, []uint32{0x80000000, 0x00000001}, w)

	require.Error(t, scmath.ArrRotl32(w, 32))
	require.Error(t, scmath.ArrRotl32(w, -32))
}

func TestBitReverseRoundTrip(t *testing.T) {
	for _, x := range []uint32{0, 1, 0xDEADBEEF, 0x80000001} {
		assert.Equal(t, x, scmath.BitReverse32(scmath.BitReverse32(x)))
	}
	assert.Equal(t, uint8(0x80), scmath.BitReverse8(1))
	assert.Equal(t, uint16(0x8000), scmath.BitReverse16(1))
}
