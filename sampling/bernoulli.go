package sampling

import (
	"math"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/scmath"
)

// bernoulli samples by rejection against the binary expansions of
// exp(-2^i/(2*sigma^2)): a candidate x is accepted with probability
// exp(-x^2/(2*sigma^2)) evaluated one bit of x^2 at a time.
type bernoulli struct {
	maxGaussVal uint32
	maxGaussLog uint32
	sigma       float64
	berEntries  int
	berBytes    int
	berTable    [][]uint8
	rejects     int64
	prng        *csprng.Ctx
}

func newBernoulli(prng *csprng.Ctx, tail, sigma float64, blinding Blinding) (*bernoulli, error) {
	sigma = blindSigma(sigma, blinding)

	g := &bernoulli{
		prng:  prng,
		sigma: sigma,
	}

	maxGaussVal := math.Ceil(tail * sigma)
	g.maxGaussVal = uint32(maxGaussVal)
	g.maxGaussLog = uint32(math.Ceil(math.Log2(maxGaussVal)))

	maxVal := int(math.Ceil(math.Log2(tail * tail * sigma * sigma)))
	g.berEntries = maxVal
	g.berBytes = 8

	table := make([]uint64, maxVal)
	for i := 0; i < maxVal; i++ {
		temp := math.Exp(-math.Pow(2, float64(i)) / (2 * sigma * sigma))
		table[i] = scmath.BinaryFraction64(temp)
	}

	g.berTable = make([][]uint8, g.berEntries)
	for i := range g.berTable {
		g.berTable[i] = make([]uint8, g.berBytes)
		for j := 0; j < g.berBytes; j++ {
			g.berTable[i][j] = uint8(table[i] >> uint(56-8*j))
		}
	}

	return g, nil
}

func (g *bernoulli) Prng() *csprng.Ctx { return g.prng }

// sampleRejection draws a candidate magnitude and accepts it after a scan of
// the whole Bernoulli table: successful draws read every entry so that
// acceptance time does not depend on the candidate.
func (g *bernoulli) sampleRejection() int32 {
	for {
		val := g.prng.Var(uint(g.maxGaussLog))
		if val >= g.maxGaussVal {
			continue
		}

		x := val * val
		acceptMask := uint32(0)
		reject := false

		for j := 0; j < g.berBytes && !reject; j++ {
			for i := g.berEntries - 1; i >= 0; i-- {
				r := g.prng.Uint8()

				smaller := r < g.berTable[i][j]
				larger := r > g.berTable[i][j]

				if smaller && (acceptMask>>uint(i))&1 == 0 {
					acceptMask |= 1 << uint(i)
				}

				// A larger random byte only matters when bit i of x^2
				// participates and the comparison is still undecided
				if larger && (x>>uint(i))&1 == 1 && (acceptMask>>uint(i))&1 == 0 {
					reject = true
					g.rejects++
					break
				}
			}
		}

		if !reject {
			return int32(val)
		}
	}
}

// Sample returns one signed draw, rejecting half of the zero results and
// applying a uniform sign.
func (g *bernoulli) Sample() int32 {
	for {
		val := g.sampleRejection()
		rnd := g.prng.Var(2)

		if val == 0 {
			// Resample half of the zeros so the one-sided walk does not
			// overweight them
			if rnd&2 == 0 {
				continue
			}
			return 0
		}

		if rnd&1 != 0 {
			return -val
		}
		return val
	}
}
