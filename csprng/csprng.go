// Package csprng provides the pseudorandom bit source consumed by the
// Gaussian samplers and the uniform polynomial generators. The generator is
// a ChaCha20 keystream; a context is cheap to create, is not thread-safe,
// and is borrowed (never owned) by the samplers that hold it.
package csprng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

const bufLen = 512

// Ctx is a PRNG context. All draws consume the same keystream, so a context
// seeded with a fixed key produces a reproducible bit sequence.
type Ctx struct {
	cipher *chacha20.Cipher
	buf    [bufLen]byte
	pos    int
}

// New creates a context seeded from the operating system entropy source.
func New() (*Ctx, error) {
	var key [chacha20.KeySize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("failed to seed csprng: %w", err)
	}
	return NewSeeded(key[:])
}

// NewSeeded creates a context with the given 32-byte seed. Used by tests and
// by deterministic key derivation.
func NewSeeded(seed []byte) (*Ctx, error) {
	if len(seed) != chacha20.KeySize {
		return nil, fmt.Errorf("csprng seed must be %d bytes, got %d", chacha20.KeySize, len(seed))
	}
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed, nonce[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create csprng cipher: %w", err)
	}
	ctx := &Ctx{cipher: c, pos: bufLen}
	return ctx, nil
}

func (c *Ctx) refill() {
	for i := range c.buf {
		c.buf[i] = 0
	}
	c.cipher.XORKeyStream(c.buf[:], c.buf[:])
	c.pos = 0
}

func (c *Ctx) bytes(n int) []byte {
	if c.pos+n > bufLen {
		c.refill()
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

// Uint8 draws 8 random bits.
func (c *Ctx) Uint8() uint8 { return c.bytes(1)[0] }

// Uint16 draws 16 random bits.
func (c *Ctx) Uint16() uint16 { return binary.LittleEndian.Uint16(c.bytes(2)) }

// Uint32 draws 32 random bits.
func (c *Ctx) Uint32() uint32 { return binary.LittleEndian.Uint32(c.bytes(4)) }

// Uint64 draws 64 random bits.
func (c *Ctx) Uint64() uint64 { return binary.LittleEndian.Uint64(c.bytes(8)) }

// Uint128 draws 128 random bits as a (hi, lo) pair.
func (c *Ctx) Uint128() (hi, lo uint64) {
	lo = c.Uint64()
	hi = c.Uint64()
	return hi, lo
}

// Var draws the requested number of random bits (at most 32) into the low
// bits of the result.
func (c *Ctx) Var(bits uint) uint32 {
	if 0 == bits {
		return 0
	}
	if bits >= 32 {
		return c.Uint32()
	}
	return c.Uint32() & ((1 << bits) - 1)
}

// Bit draws a single random bit.
func (c *Ctx) Bit() uint32 { return uint32(c.Uint8() & 1) }
