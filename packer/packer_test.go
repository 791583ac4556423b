package packer_test

import (
	"testing"

	"github.com/safecrypto/libsafecrypto-go/packer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []uint32
		bits   []uint
	}{
		{"single bit", []uint32{1}, []uint{1}},
		{"bytes", []uint32{0xAB, 0xCD, 0xEF}, []uint{8, 8, 8}},
		{"mixed widths", []uint32{0x3, 0x1F, 0x155, 0x7FFFFFFF}, []uint{2, 5, 9, 31}},
		{"full words", []uint32{0xDEADBEEF, 0x01234567}, []uint{32, 32}},
		{"many small", []uint32{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1, 0, 0, 0, 1, 1, 0}, []uint{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := packer.New(4096, nil)
			require.NoError(t, err)

			for i, v := range tt.values {
				require.NoError(t, p.Write(v, tt.bits[i]))
			}
			buf, err := p.GetBuffer()
			require.NoError(t, err)

			rd, err := packer.NewReader(4096, buf)
			require.NoError(t, err)
			for i, want := range tt.values {
				got, err := rd.Read(tt.bits[i])
				require.NoError(t, err)
				assert.Equal(t, want, got, "value %d", i)
			}
		})
	}
}

func TestBigEndianLayout(t *testing.T) {
	p, err := packer.New(256, nil)
	require.NoError(t, err)

	// Twelve one bits (0xFFF) followed by four zero bits of padding must
	// produce 0xFF 0xF0 on the wire.
	require.NoError(t, p.Write(0xFFF, 12))
	buf, err := p.GetBuffer()
	require.NoError(t, err)
	require.Len(t, buf, 2)
	assert.Equal(t, byte(0xFF), buf[0])
	assert.Equal(t, byte(0xF0), buf[1])
}

func TestPeekDoesNotConsume(t *testing.T) {
	p, err := packer.New(256, nil)
	require.NoError(t, err)
	require.NoError(t, p.Write(0x2D, 8))
	buf, err := p.GetBuffer()
	require.NoError(t, err)

	rd, err := packer.NewReader(256, buf)
	require.NoError(t, err)

	peeked, err := rd.Peek(8)
	require.NoError(t, err)
	read, err := rd.Read(8)
	require.NoError(t, err)
	assert.Equal(t, peeked, read)
	assert.Equal(t, uint32(0x2D), read)
}

func TestWriteBounds(t *testing.T) {
	p, err := packer.New(64, nil)
	require.NoError(t, err)

	// Writes of more than 32 bits are rejected.
	assert.Error(t, p.Write(0, 33))

	// A 64-bit buffer accepts exactly 64 bits; pushing further bits leaves
	// a partial word that can no longer be flushed.
	require.NoError(t, p.Write(0xFFFFFFFF, 32))
	require.NoError(t, p.Write(0xFFFFFFFF, 32))
	require.NoError(t, p.Write(1, 1))
	assert.Error(t, p.Flush())
}

func TestExternalBufferTooSmall(t *testing.T) {
	buf := make([]byte, 4)
	_, err := packer.New(64, buf)
	assert.Error(t, err)
}

func TestIOCounters(t *testing.T) {
	p, err := packer.New(1024, nil)
	require.NoError(t, err)
	require.NoError(t, p.Write(0x7, 3))
	require.NoError(t, p.Write(0x1, 9))
	assert.Equal(t, uint(12), p.BitsIn())

	p.ResetIOCount()
	assert.Equal(t, uint(0), p.BitsIn())
}

func TestGetBufferResetsForReuse(t *testing.T) {
	p, err := packer.New(256, nil)
	require.NoError(t, err)

	require.NoError(t, p.Write(0xAA, 8))
	first, err := p.GetBuffer()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA}, first)

	require.NoError(t, p.Write(0x55, 8))
	second, err := p.GetBuffer()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x55}, second)
	assert.Equal(t, []byte{0xAA}, first)
}
