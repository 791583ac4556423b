package sampling

import (
	"fmt"
	"math"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/scmath"
)

// knuthYao samples by walking a discrete distribution generating (DDG) tree
// stored as a bit matrix: column k of the matrix is the binary expansion,
// MSB first down the rows, of the probability of |X| = k. Column 0 holds
// twice P(X = 0); the sampler halves it by rejecting zero with probability 1/2.
type knuthYao struct {
	numRows int32
	numCols int32
	tailcut float64
	bound   int32
	hamming []int32
	pmat    []uint8
	prng    *csprng.Ctx
}

func newKnuthYao(prng *csprng.Ctx, tail, sigma float64, precision Precision, blinding Blinding) (*knuthYao, error) {
	if precision != Sampling32Bit && precision != Sampling64Bit && precision != Sampling128Bit {
		return nil, fmt.Errorf("knuth-yao sampler does not support %d-bit precision", precision)
	}

	sigma = blindSigma(sigma, blinding)

	g := &knuthYao{
		tailcut: tail,
		bound:   int32(math.Ceil(tail * sigma)),
		numRows: int32(precision),
		prng:    prng,
	}
	g.numCols = g.bound + 1
	g.pmat = make([]uint8, int(g.numRows)*int(g.numCols))
	g.hamming = make([]int32, g.numCols)

	// (2/sqrt(2*Pi)) / sigma
	d := 0.7978845608028653558798 / sigma
	e := -0.5 / (sigma * sigma)

	for col := int32(0); col < g.numCols; col++ {
		x := d
		if col > 0 {
			x = d * math.Exp(e*float64(col*col))
		}

		switch precision {
		case Sampling128Bit:
			hi, lo := scmath.BinaryFraction128(x)
			for row := int32(0); row < g.numRows; row++ {
				var bit uint64
				if row < 64 {
					bit = (hi >> uint(63-row)) & 1
				} else {
					bit = (lo >> uint(127-row)) & 1
				}
				g.pmat[row*g.numCols+col] = uint8(bit)
			}
		case Sampling64Bit:
			p := scmath.BinaryFraction64(x)
			for row := int32(0); row < g.numRows; row++ {
				g.pmat[row*g.numCols+col] = uint8((p >> uint(63-row)) & 1)
			}
		default:
			p := scmath.BinaryFraction32(x)
			for row := int32(0); row < g.numRows; row++ {
				g.pmat[row*g.numCols+col] = uint8((p >> uint(31-row)) & 1)
			}
		}
	}

	for col := int32(0); col < g.numCols; col++ {
		for row := int32(0); row < g.numRows; row++ {
			g.hamming[col] += int32(g.pmat[row*g.numCols+col])
		}
	}

	return g, nil
}

func (g *knuthYao) Prng() *csprng.Ctx { return g.prng }

// Sample walks the DDG tree: at each row the distance doubles plus a random
// bit, and the first column that drives it negative is the magnitude. A zero
// result is resampled with probability one half so that zero is not
// oversampled by the one-sided walk.
func (g *knuthYao) Sample() int32 {
restart:
	dist := int32(0)
	sample := int32(0)

	rand := g.prng.Uint32()

walk:
	for row := int32(0); row < g.numRows; row++ {
		dist = 2*dist + int32(rand&1)
		rand >>= 1
		if row&0x1F == 0x1F {
			rand = g.prng.Uint32()
		}

		base := row * g.numCols
		for col := int32(0); col < g.numCols; col++ {
			dist -= int32(g.pmat[base+col])
			if dist < 0 {
				sample = col
				break walk
			}
		}
	}

	rand = g.prng.Uint32()
	sample %= g.bound
	if 0 == sample && rand&0x1 != 0 {
		goto restart
	}
	if rand&0x2 != 0 {
		return sample
	}
	return -sample
}

// kySelect returns b when mask is all-ones and a when it is zero, without
// branching.
func kySelect(a, b, mask int32) int32 {
	return (mask & (a ^ b)) ^ a
}

// SampleConstTime is the timing-resistant walk: every matrix entry is
// visited regardless of where the zero crossing lands.
func (g *knuthYao) SampleConstTime() int32 {
restart:
	dist := int32(0)
	hit := int32(0)
	s := int32(0)
	invalid := g.bound

	rand := g.prng.Uint32()

	idx := 0
	for row := int32(0); row < g.numRows; row++ {
		dist = 2*dist + int32(rand&1)
		rand >>= 1
		if row&0x1F == 0x1F {
			rand = g.prng.Uint32()
		}
		for col := int32(0); col < g.numCols; col++ {
			dist -= int32(g.pmat[idx])
			idx++
			uhit := int32(0)
			if hit == 0 && dist < 0 {
				uhit = 1
			}
			s += kySelect(invalid, col, -uhit)
			hit += uhit
		}
	}

	rand = g.prng.Uint32()
	s %= invalid
	if 0 == s && rand&0x1 != 0 {
		goto restart
	}
	if rand&0x2 != 0 {
		return s
	}
	return -s
}
