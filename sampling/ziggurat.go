package sampling

import (
	"math"

	"github.com/safecrypto/libsafecrypto-go/csprng"
)

const zigLayers = 64

// ziggurat covers the one-sided Gaussian density with a tower of equal-area
// rectangles. A draw picks a layer, then a uniform point in it: points left
// of the next narrower edge are strictly under the curve and accepted with a
// single comparison; wedge points are resolved against the density; the base
// layer carries the tail, resolved by rejection out to the cutoff.
type ziggurat struct {
	x     [zigLayers]float64 // rectangle right edges, decreasing
	y     [zigLayers]float64 // curve heights at the edges, increasing
	area  float64            // common layer area
	sigma float64
	bound int32
	prng  *csprng.Ctx
}

func newZiggurat(prng *csprng.Ctx, tail, sigma float64, blinding Blinding) (*ziggurat, error) {
	sigma = blindSigma(sigma, blinding)

	g := &ziggurat{
		sigma: sigma,
		bound: int32(math.Ceil(tail * sigma)),
		prng:  prng,
	}

	rho := func(x float64) float64 { return math.Exp(-x * x / (2 * sigma * sigma)) }
	tailArea := func(r float64) float64 {
		return sigma * math.Sqrt(math.Pi/2) * math.Erfc(r/(sigma*math.Sqrt2))
	}

	// Solve the tail edge r so that the equal-area recurrence closes with
	// the top layer reaching the mode.
	build := func(r float64) float64 {
		g.x[0] = r
		g.y[0] = rho(r)
		g.area = r*g.y[0] + tailArea(r)
		for i := 1; i < zigLayers; i++ {
			g.y[i] = g.y[i-1] + g.area/g.x[i-1]
			if g.y[i] >= 1 {
				over := g.y[i] - 1
				for j := i; j < zigLayers; j++ {
					g.y[j] = 1
					g.x[j] = 0
				}
				return over
			}
			g.x[i] = sigma * math.Sqrt(-2*math.Log(g.y[i]))
		}
		return g.y[zigLayers-1] - 1
	}

	lo, hi := 0.5*sigma, tail*sigma
	for it := 0; it < 64; it++ {
		mid := 0.5 * (lo + hi)
		if build(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	build(0.5 * (lo + hi))

	return g, nil
}

func (g *ziggurat) Prng() *csprng.Ctx { return g.prng }

func (g *ziggurat) uniform() float64 {
	return float64(g.prng.Uint32()) / 4294967296.0
}

func (g *ziggurat) Sample() int32 {
	rho := func(x float64) float64 {
		return math.Exp(-x * x / (2 * g.sigma * g.sigma))
	}

	for {
		var x float64
		layer := int(g.prng.Var(6)) // 64 layers

		if 0 == layer {
			// Base layer: the rectangle below the tail edge plus the tail
			r := g.x[0]
			if g.uniform()*g.area < r*g.y[0] {
				x = g.uniform() * r
			} else {
				// Tail rejection out to the cutoff
				x = r + g.uniform()*(float64(g.bound)-r)
				if g.uniform()*rho(r) >= rho(x) {
					continue
				}
			}
		} else {
			x = g.uniform() * g.x[layer-1]
			if x >= g.x[layer] {
				// Wedge between this layer's edge and the previous one
				y := g.y[layer-1] + g.uniform()*(g.y[layer]-g.y[layer-1])
				if y >= rho(x) {
					continue
				}
			}
		}

		v := int32(math.Round(x))
		if v > g.bound {
			continue
		}

		rnd := g.prng.Uint32()
		if 0 == v && rnd&1 != 0 {
			continue
		}
		if rnd&2 != 0 {
			return v
		}
		return -v
	}
}
