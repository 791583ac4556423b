package sampling

import (
	"math"
	"math/bits"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/entropy"
)

// bacSampler runs the binary arithmetic decoder against the raw PRNG stream:
// decoding uniform bits through a Gaussian midpoint-split table yields
// Gaussian-distributed symbols.
type bacSampler struct {
	bac  []uint64
	v    uint64
	bits int32
	prng *csprng.Ctx
}

func newBacSampler(prng *csprng.Ctx, tail, sigma float64, blinding Blinding) (*bacSampler, error) {
	bits := int32(math.Ceil(math.Log2(tail * sigma)))
	n := 1 << uint(bits)

	sigma = blindSigma(sigma, blinding)

	g := &bacSampler{
		bac:  make([]uint64, n),
		bits: bits,
		prng: prng,
	}
	g.v = prng.Uint64()
	entropy.GaussFreqBac64(g.bac, sigma, n)

	return g, nil
}

func (g *bacSampler) Prng() *csprng.Ctx { return g.prng }

func (g *bacSampler) Sample() int32 {
	b := uint64(0)
	l := ^uint64(0)

	var ibyt uint32
	icnt := 0
	owrd := uint32(0)

	for ocnt := g.bits - 1; ocnt >= 0; ocnt-- {
		c := g.bac[(owrd&(0xFFFFFFFE<<uint(ocnt)))|(1<<uint(ocnt))]
		c = mul64hi(l, c)

		if g.v-b < c {
			l = c
		} else {
			b += c
			l -= c
			owrd |= 1 << uint(ocnt)
		}

		for l < 0x8000000000000000 {
			icnt--
			if icnt < 0 {
				ibyt = uint32(g.prng.Uint8())
				icnt = 7
			}
			g.v <<= 1
			g.v += uint64((ibyt >> uint(icnt)) & 1)

			b <<= 1
			l <<= 1
		}
	}

	return int32(owrd) - (1 << uint(g.bits-1))
}

func mul64hi(x, y uint64) uint64 {
	hi, _ := bits.Mul64(x, y)
	return hi
}
