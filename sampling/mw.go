package sampling

import (
	"fmt"
	"math"
)

// gaussCombiner is one level of the Micciancio-Walter combiner chain. Each
// level draws two samples from the level below it and combines them with
// integer coefficients (z1, z2), squaring up the variance as
// sigma_out^2 = (z1^2 + z2^2) * sigma_in^2.
type gaussCombiner struct {
	base   Gaussian
	deeper *gaussCombiner
	z1     int32
	z2     int32
}

func (c *gaussCombiner) sample() int32 {
	if c.base != nil {
		return c.z1*c.base.Sample() + c.z2*c.base.Sample()
	}
	return c.z1*c.deeper.sample() + c.z2*c.deeper.sample()
}

// MWBootstrapSampler widens a narrow base sampler to an arbitrary standard
// deviation and centre: a combiner chain provides wide zero-centred noise,
// and a randomized base-2^logBase rounding stage resolves the fractional
// centre with biased coin flips.
type MWBootstrapSampler struct {
	base          Gaussian
	combiners     []*gaussCombiner
	baseCentre    []float64
	maxSLevels    int
	k             int
	flips         int
	logBase       uint
	mask          uint64
	wideSigma2    float64
	invWideSigma2 float64
	rrSigma2      float64
}

// NewMWBootstrap builds the combiner chain over the given base sampler of
// known baseSigma. maxSLevels-1 combiner levels are created; precision and
// maxFlips control the randomized rounding depth and eta the smoothing
// parameter bounding each level's coefficients.
func NewMWBootstrap(base Gaussian, baseSigma float64, maxSLevels int, logBase uint,
	precision, maxFlips int, eta float64) (*MWBootstrapSampler, error) {

	if maxSLevels < 2 {
		return nil, fmt.Errorf("mw bootstrap needs at least one combiner level")
	}

	invTwoEta2 := 1.0 / (2.0 * eta * eta)

	s := &MWBootstrapSampler{
		base:       base,
		combiners:  make([]*gaussCombiner, maxSLevels-1),
		baseCentre: make([]float64, 1<<logBase),
		maxSLevels: maxSLevels,
		logBase:    logBase,
		mask:       uint64(1)<<logBase - 1,
	}

	step := 1.0 / math.Pow(2, float64(logBase))
	for i := range s.baseCentre {
		s.baseCentre[i] = float64(i) * step
	}

	s.wideSigma2 = baseSigma * baseSigma
	baseSigma2 := s.wideSigma2
	var deeper *gaussCombiner
	for i := 0; i < maxSLevels-1; i++ {
		z1 := int32(math.Floor(math.Sqrt(s.wideSigma2 * invTwoEta2)))
		z2 := z1 - 1
		if z2 < 1 {
			z2 = 1
		}
		if z1 < 1 {
			z1 = 1
		}

		c := &gaussCombiner{z1: z1, z2: z2}
		if 0 == i {
			c.base = base
		} else {
			c.deeper = deeper
		}
		s.combiners[i] = c
		s.wideSigma2 = float64(z1*z1+z2*z2) * s.wideSigma2
		deeper = c
	}
	s.invWideSigma2 = 1 / s.wideSigma2

	// Shrink the flip count so that (precision - flips) divides by logBase
	s.k = int(math.Ceil(float64(precision-maxFlips) / float64(logBase)))
	s.flips = precision - int(logBase)*s.k

	s.rrSigma2 = 1
	t := 1.0 / float64(uint64(1)<<(2*logBase))
	acc := 1.0
	for i := s.k - 1; i > 0; i-- {
		acc *= t
		s.rrSigma2 += acc
	}
	s.rrSigma2 *= baseSigma2

	return s, nil
}

// round iteratively folds the scaled centre into base-2^logBase digits,
// drawing one base sample per digit at the digit's precomputed centre.
func (s *MWBootstrapSampler) round(centre int64) int32 {
	for i := 0; i < s.k; i++ {
		sample := int64(s.baseCentre[uint64(centre)&s.mask]) + int64(s.base.Sample())
		if uint64(centre)&s.mask > 0 && centre < 0 {
			sample--
		}
		centre >>= s.logBase
		centre += sample
	}
	return int32(centre)
}

// flipAndRound resolves the fractional centre with biased coin flips against
// its scaled binary digits, rounding toward whichever base point the first
// decisive flip selects.
func (s *MWBootstrapSampler) flipAndRound(centre float64) int32 {
	// centre is the fractional part of the requested centre, scaled to the
	// full rounding precision
	precision := s.flips + int(s.logBase)*s.k
	var c uint64
	if precision >= 64 {
		c = uint64(centre * 0x1p64)
	} else {
		c = uint64(centre * float64(uint64(1)<<uint(precision)))
	}
	baseC := int64(c >> uint(s.flips))

	var rbits uint64
	for i, j := s.flips-1, 0; i >= 0; i, j = i-1, j+1 {
		if 0 == j&63 {
			rbits = s.base.Prng().Uint64()
		}
		rbit := rbits & 1
		rbits >>= 1

		cbit := (c >> uint(i)) & 1
		if rbit > cbit {
			return s.round(baseC)
		}
		if rbit < cbit {
			return s.round(baseC + 1)
		}
	}
	return s.round(baseC + 1)
}

// Sample draws at the requested sigma^2 and centre: wide noise from the top
// combiner is scaled to make up the variance the rounding stage cannot, and
// the fractional centre is resolved by flip-and-round.
func (s *MWBootstrapSampler) Sample(sigma2, centre float64) int32 {
	gauss := s.combiners[s.maxSLevels-2]

	x := float64(gauss.sample())

	c := centre + x*math.Sqrt((sigma2-s.rrSigma2)*s.invWideSigma2)
	ci := math.Floor(c)
	c -= ci

	return int32(ci) + s.flipAndRound(c)
}
