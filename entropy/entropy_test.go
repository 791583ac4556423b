package entropy_test

import (
	"testing"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/entropy"
	"github.com/safecrypto/libsafecrypto-go/packer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip32(t *testing.T, coder *entropy.Coder, in []int32, bitw uint, sign entropy.Signedness) []int32 {
	t.Helper()

	pk, err := packer.New(16384, nil)
	require.NoError(t, err)

	var coded uint
	require.NoError(t, coder.PolyEncode32(pk, in, bitw, sign, 0, &coded))
	assert.Greater(t, coded, uint(0))

	buf, err := pk.GetBuffer()
	require.NoError(t, err)

	rd, err := packer.NewReader(16384, buf)
	require.NoError(t, err)

	out := make([]int32, len(in))
	require.NoError(t, coder.PolyDecode32(rd, out, bitw, sign, 0))
	return out
}

func TestRawSignedRoundTrip(t *testing.T) {
	coder := &entropy.Coder{Type: entropy.None}
	in := []int32{-2, -1, 0, 1}
	assert.Equal(t, in, roundTrip32(t, coder, in, 3, entropy.Signed))
}

func TestHuffmanSmallRoundTrip(t *testing.T) {
	coder := &entropy.Coder{Type: entropy.HuffmanStatic}
	in := []int32{-2, -1, 0, 1}
	assert.Equal(t, in, roundTrip32(t, coder, in, 3, entropy.Signed))
}

func TestHuffmanLargeRoundTrip(t *testing.T) {
	coder := &entropy.Coder{Type: entropy.HuffmanStatic}
	in := []int32{102, -41, -239, 176, 146, 107, 55, 164, 61, 248, 249, 81, 79, 177, 43, 29,
		140, 134, 98, 169, -189, 10, 30, 189, -234, 0, -64, 138, -163, 202, 191, 118}
	assert.Equal(t, in, roundTrip32(t, coder, in, 9, entropy.Signed))
}

func TestHuffmanUnsignedRoundTrip(t *testing.T) {
	coder := &entropy.Coder{Type: entropy.HuffmanStatic}

	signed := []int32{0, 1, -2, 3, -60, 100, -127}
	assert.Equal(t, signed, roundTrip32(t, coder, signed, 8, entropy.Signed))

	// The unsigned head is narrow; only small magnitudes are codeable.
	unsigned := []int32{0, 1, 3, 7, 2, 5}
	assert.Equal(t, unsigned, roundTrip32(t, coder, unsigned, 8, entropy.Unsigned))
}

func TestBacDispatcherRoundTrip(t *testing.T) {
	dist := make([]uint64, 8)
	entropy.BacDistFreq64(dist, []uint64{12, 42, 9, 30, 7, 1, 0, 0}, 8)

	coder := &entropy.Coder{Type: entropy.BAC, Dist: [][]uint64{dist}}
	in := []int32{-1, 0, 1, 1, 0, -1, -2, 3}
	assert.Equal(t, in, roundTrip32(t, coder, in, 3, entropy.Signed))
}

func TestRaw16And8RoundTrip(t *testing.T) {
	coder := &entropy.Coder{Type: entropy.None}

	pk, err := packer.New(4096, nil)
	require.NoError(t, err)
	in16 := []int16{-100, 0, 99, 1}
	require.NoError(t, coder.PolyEncode16(pk, in16, 9, entropy.Signed, nil))
	buf, err := pk.GetBuffer()
	require.NoError(t, err)
	rd, err := packer.NewReader(4096, buf)
	require.NoError(t, err)
	out16 := make([]int16, len(in16))
	require.NoError(t, coder.PolyDecode16(rd, out16, 9, entropy.Signed))
	assert.Equal(t, in16, out16)

	pk, err = packer.New(4096, nil)
	require.NoError(t, err)
	in8 := []int8{-4, -1, 0, 3}
	require.NoError(t, coder.PolyEncode8(pk, in8, 4, entropy.Signed, nil))
	buf, err = pk.GetBuffer()
	require.NoError(t, err)
	rd, err = packer.NewReader(4096, buf)
	require.NoError(t, err)
	out8 := make([]int8, len(in8))
	require.NoError(t, coder.PolyDecode8(rd, out8, 4, entropy.Signed))
	assert.Equal(t, in8, out8)
}

func TestHuffmanGaussianBuilder(t *testing.T) {
	table, err := entropy.CreateHuffmanGaussian(6, 12.8)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, uint32(64), table.Depth)

	pk, err := packer.New(16384, nil)
	require.NoError(t, err)
	for v := uint32(0); v < table.Depth; v++ {
		require.NoError(t, entropy.EncodeHuffman(pk, table, v))
	}
	buf, err := pk.GetBuffer()
	require.NoError(t, err)

	rd, err := packer.NewReader(16384, buf)
	require.NoError(t, err)
	for v := uint32(0); v < table.Depth; v++ {
		got, err := entropy.DecodeHuffman(rd, table)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestHuffmanEncodeOutOfBounds(t *testing.T) {
	pk, err := packer.New(256, nil)
	require.NoError(t, err)
	assert.Error(t, entropy.EncodeHuffman(pk, entropy.HuffTableGaussian2, 4))
}

func TestFixedTablesAreConsistent(t *testing.T) {
	tables := []*entropy.HuffmanTable{
		entropy.HuffTableGaussian2,
		entropy.HuffTableGaussian3,
		entropy.HuffTableGaussian4,
		entropy.HuffTableGaussian5,
		entropy.HuffTableGaussian6,
	}

	for _, table := range tables {
		assert.Len(t, table.Codes, int(table.Depth))
		assert.Len(t, table.Nodes, 2*int(table.Depth)-1)

		// Every symbol must decode back to itself through the node tree.
		pk, err := packer.New(8192, nil)
		require.NoError(t, err)
		for v := uint32(0); v < table.Depth; v++ {
			require.NoError(t, entropy.EncodeHuffman(pk, table, v))
		}
		buf, err := pk.GetBuffer()
		require.NoError(t, err)
		rd, err := packer.NewReader(8192, buf)
		require.NoError(t, err)
		for v := uint32(0); v < table.Depth; v++ {
			got, err := entropy.DecodeHuffman(rd, table)
			require.NoError(t, err)
			require.Equal(t, v, got, "table depth %d symbol %d", table.Depth, v)
		}
	}
}

func TestSampleHuffmanSignAndRange(t *testing.T) {
	table := entropy.CreateHuffmanGaussianSampler(5, 4.0)
	require.NotNil(t, table)

	prng, err := csprng.NewSeeded(make([]byte, 32))
	require.NoError(t, err)

	seenNeg, seenPos := false, false
	for i := 0; i < 4096; i++ {
		v := entropy.SampleHuffman(prng, table)
		assert.GreaterOrEqual(t, v, int32(-32))
		assert.LessOrEqual(t, v, int32(32))
		if v < 0 {
			seenNeg = true
		}
		if v > 0 {
			seenPos = true
		}
	}
	assert.True(t, seenNeg)
	assert.True(t, seenPos)
}
