package entropy_test

import (
	"testing"

	"github.com/safecrypto/libsafecrypto-go/entropy"
	"github.com/safecrypto/libsafecrypto-go/packer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bacFreq = []uint64{12, 42, 9, 30, 7, 1, 0, 0}

func bacDist(t *testing.T) []uint64 {
	t.Helper()
	dist := make([]uint64, 8)
	entropy.BacDistFreq64(dist, bacFreq, 8)
	return dist
}

func TestBacRoundTripShort(t *testing.T) {
	dist := bacDist(t)

	pk, err := packer.New(1024, nil)
	require.NoError(t, err)

	in := []int32{-1, 0, 1}
	require.NoError(t, entropy.BacEncode64_32(pk, in, dist, 3, 1<<2))

	buf, err := pk.GetBuffer()
	require.NoError(t, err)

	rd, err := packer.NewReader(1024, buf)
	require.NoError(t, err)

	out := make([]int32, 3)
	require.NoError(t, entropy.BacDecode64_32(rd, out, dist, 3, 1<<2))
	assert.Equal(t, in, out)
}

func TestBacRoundTripLong(t *testing.T) {
	dist := bacDist(t)

	pk, err := packer.New(4096, nil)
	require.NoError(t, err)

	in := make([]int32, 33)
	for i := range in {
		in[i] = int32(i%3) - 1
	}
	require.NoError(t, entropy.BacEncode64_32(pk, in, dist, 3, 1<<2))

	buf, err := pk.GetBuffer()
	require.NoError(t, err)

	rd, err := packer.NewReader(4096, buf)
	require.NoError(t, err)

	out := make([]int32, 33)
	require.NoError(t, entropy.BacDecode64_32(rd, out, dist, 3, 1<<2))
	assert.Equal(t, in, out)
}

func TestBacLengthHeader(t *testing.T) {
	dist := bacDist(t)

	pk, err := packer.New(4096, nil)
	require.NoError(t, err)

	in := make([]int32, 64)
	for i := range in {
		in[i] = int32(i%7) - 3
	}
	require.NoError(t, entropy.BacEncode64_32(pk, in, dist, 3, 1<<2))

	buf, err := pk.GetBuffer()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(buf), 2)

	payload := int(buf[0])<<8 | int(buf[1])
	assert.LessOrEqual(t, payload, len(buf)-2,
		"header must not claim more payload bytes than were emitted")
	assert.Greater(t, payload, 0)
}

func TestBacDistFreqProperties(t *testing.T) {
	dist := bacDist(t)

	// Index 0 is never populated; every power-of-two aligned midpoint is.
	assert.Equal(t, uint64(0), dist[0])
	for _, idx := range []int{1, 2, 4} {
		assert.GreaterOrEqual(t, dist[idx], uint64(4), "dist[%d]", idx)
	}

	// The zero-frequency tail still yields clamped non-degenerate entries.
	var freq [8]uint64
	var d [8]uint64
	entropy.BacDistFreq64(d[:], freq[:], 8)
	for _, idx := range []int{1, 2, 4} {
		assert.GreaterOrEqual(t, d[idx], uint64(4))
		assert.LessOrEqual(t, d[idx], ^uint64(0)-3)
	}
}

func TestBac16RoundTrip(t *testing.T) {
	dist := make([]uint64, 16)
	entropy.GaussFreqBac64(dist, 2.0, 16)

	pk, err := packer.New(4096, nil)
	require.NoError(t, err)

	in := []int16{-7, -3, -1, 0, 1, 2, 5, 7, 0, -2}
	require.NoError(t, entropy.BacEncode64_16(pk, in, dist, 4, 1<<3))

	buf, err := pk.GetBuffer()
	require.NoError(t, err)

	rd, err := packer.NewReader(4096, buf)
	require.NoError(t, err)

	out := make([]int16, len(in))
	require.NoError(t, entropy.BacDecode64_16(rd, out, dist, 4, 1<<3))
	assert.Equal(t, in, out)
}
