// Package sampling implements the discrete Gaussian samplers at the heart of
// the library: CDF inversion at three precisions, Knuth-Yao, Ziggurat,
// Bernoulli, Huffman-tree and BAC samplers, the Micciancio-Walter bootstrap
// that widens a narrow base sampler to arbitrary sigma and centre, and the
// facade that configures them behind a single interface.
//
// Samplers borrow their PRNG context and never own it. Tables are immutable
// after construction and may be shared across goroutines; a PRNG context may
// not.
package sampling

import (
	"fmt"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/scmath"
)

// Algorithm selects the sampling scheme.
type Algorithm int

const (
	CDFGaussianSampling Algorithm = iota
	KnuthYaoGaussianSampling
	BacGaussianSampling
	HuffmanGaussianSampling
	ZigguratGaussianSampling
	BernoulliGaussianSampling
	KnuthYaoFastGaussianSampling
)

func (a Algorithm) String() string {
	switch a {
	case CDFGaussianSampling:
		return "CDF_GAUSSIAN_SAMPLING"
	case KnuthYaoGaussianSampling:
		return "KNUTH_YAO_GAUSSIAN_SAMPLING"
	case BacGaussianSampling:
		return "BAC_GAUSSIAN_SAMPLING"
	case HuffmanGaussianSampling:
		return "HUFFMAN_GAUSSIAN_SAMPLING"
	case ZigguratGaussianSampling:
		return "ZIGGURAT_GAUSSIAN_SAMPLING"
	case BernoulliGaussianSampling:
		return "BERNOULLI_GAUSSIAN_SAMPLING"
	case KnuthYaoFastGaussianSampling:
		return "KNUTH_YAO_FAST_GAUSSIAN_SAMPLING"
	default:
		return "UNKNOWN_SAMPLING"
	}
}

// Precision selects the fixed-point width of the sampler tables.
type Precision int

const (
	Sampling32Bit  Precision = 32
	Sampling64Bit  Precision = 64
	Sampling128Bit Precision = 128
)

// Blinding enables the additive sample-splitting side-channel countermeasure.
// A blinded sampler is constructed with sigma scaled by 1/sqrt(2) so that the
// sum of two independent draws has the target variance.
type Blinding int

const (
	NormalSamples Blinding = iota
	BlindedSamples
)

// Bootstrap selects whether the configured sampler acts as the narrow base
// of a Micciancio-Walter bootstrap.
type Bootstrap int

const (
	DisableBootstrap Bootstrap = iota
	MWBootstrap
)

// MaxGaussLUTBytes bounds the precomputed table size of any one sampler.
const MaxGaussLUTBytes = 16384

// The sigma of the narrow base sampler used underneath an MW bootstrap.
const bootstrapBaseSigma = 16.0

// Gaussian is one concrete sampler: a one-sided table plus the borrowed PRNG.
type Gaussian interface {
	// Sample returns one signed draw from the configured distribution.
	Sample() int32
	// Prng exposes the borrowed PRNG context.
	Prng() *csprng.Ctx
}

// Sampler is the configured sampling facade.
type Sampler struct {
	gauss        Gaussian
	prng         *csprng.Ctx
	precision    Precision
	blinding     Blinding
	dimension    int32
	bootstrapped Bootstrap
	sigma2       float64
	bootstrap    *MWBootstrapSampler
}

// New constructs a sampler of the requested algorithm, precision and
// blinding. When bootstrapped, the configured algorithm provides the narrow
// base sampler and draws are produced by the MW combiner chain.
func New(algo Algorithm, precision Precision, blinding Blinding, dimension int32,
	bootstrapped Bootstrap, prng *csprng.Ctx, tail, sigma float64) (*Sampler, error) {

	if prng == nil {
		return nil, fmt.Errorf("sampler requires a prng context")
	}
	if KnuthYaoGaussianSampling == algo && BlindedSamples == blinding {
		return nil, fmt.Errorf("%s does not support blinded sampling", algo)
	}

	s := &Sampler{
		prng:         prng,
		precision:    precision,
		blinding:     blinding,
		dimension:    dimension,
		bootstrapped: bootstrapped,
	}

	create := func(sigma float64) (Gaussian, error) {
		switch algo {
		case CDFGaussianSampling:
			return newCDF(prng, tail, sigma, precision, MaxGaussLUTBytes, blinding)
		case KnuthYaoGaussianSampling:
			g, err := newKnuthYao(prng, tail, sigma, precision, blinding)
			return g, err
		case BacGaussianSampling:
			if Sampling64Bit != precision {
				return nil, fmt.Errorf("%s requires 64-bit precision", algo)
			}
			g, err := newBacSampler(prng, tail, sigma, blinding)
			return g, err
		case HuffmanGaussianSampling:
			g, err := newHuffmanSampler(prng, tail, sigma, blinding)
			return g, err
		case ZigguratGaussianSampling:
			g, err := newZiggurat(prng, tail, sigma, blinding)
			return g, err
		case BernoulliGaussianSampling:
			if Sampling64Bit != precision {
				return nil, fmt.Errorf("%s requires 64-bit precision", algo)
			}
			g, err := newBernoulli(prng, tail, sigma, blinding)
			return g, err
		case KnuthYaoFastGaussianSampling:
			if BlindedSamples == blinding {
				return nil, fmt.Errorf("%s does not support blinded sampling", algo)
			}
			g, err := newKnuthYao(prng, tail, sigma, precision, blinding)
			return g, err
		default:
			return nil, fmt.Errorf("unknown sampling algorithm %d", algo)
		}
	}

	if MWBootstrap == bootstrapped {
		s.sigma2 = sigma * sigma

		base, err := create(bootstrapBaseSigma)
		if err != nil {
			return nil, err
		}
		s.gauss = base
		s.bootstrap, err = NewMWBootstrap(base, bootstrapBaseSigma, 4, 1, 64, 35, 2.5)
		if err != nil {
			return nil, err
		}
	} else {
		gauss, err := create(sigma)
		if err != nil {
			return nil, err
		}
		s.gauss = gauss
	}

	return s, nil
}

// Sample returns one draw from the configured distribution.
func (s *Sampler) Sample() int32 {
	return s.gauss.Sample()
}

// BootstrapSample draws from the bootstrap at the requested sigma and centre.
// Without a bootstrap configured the result is zero.
func (s *Sampler) BootstrapSample(sigma, centre float64) int32 {
	if MWBootstrap != s.bootstrapped {
		return 0
	}
	return s.bootstrap.Sample(sigma*sigma, centre)
}

// permute applies an unbiased in-place Fisher-Yates shuffle, drawing
// rejection-sampled indices so that no modulo bias is introduced.
func permute32(prng *csprng.Ctx, v []int32) {
	n := uint32(len(v))
	if n < 2 {
		return
	}
	mask := uint32(1)<<scmath.CeilLog2_32(n) - 1

	for i := uint32(0); i < n; i++ {
		var j uint32
		for {
			j = uint32(prng.Uint16()) & mask
			if j >= i && j < n {
				break
			}
		}
		v[i], v[j] = v[j], v[i]
	}
}

func permute16(prng *csprng.Ctx, v []int16) {
	n := uint32(len(v))
	if n < 2 {
		return
	}
	mask := uint32(1)<<scmath.CeilLog2_32(n) - 1

	for i := uint32(0); i < n; i++ {
		var j uint32
		for {
			j = uint32(prng.Uint16()) & mask
			if j >= i && j < n {
				break
			}
		}
		v[i], v[j] = v[j], v[i]
	}
}

// Vector32 fills v with draws. In blinded mode each position is the
// difference of two independent draws with interleaved permutations; the
// centre is ignored. Otherwise each draw is offset by the integer part of
// centre, or produced by the bootstrap at the configured sigma when one is
// installed.
func (s *Sampler) Vector32(v []int32, centre float64) {
	if MWBootstrap == s.bootstrapped {
		for i := range v {
			v[i] = s.bootstrap.Sample(s.sigma2, centre)
		}
		return
	}

	if BlindedSamples == s.blinding {
		for i := range v {
			v[i] = s.gauss.Sample()
		}
		permute32(s.prng, v)
		for i := range v {
			v[i] -= s.gauss.Sample()
		}
		permute32(s.prng, v)
		return
	}

	for i := range v {
		v[i] = s.gauss.Sample() + int32(centre)
	}
}

// Vector16 is the 16-bit variant of Vector32.
func (s *Sampler) Vector16(v []int16, centre float64) {
	if MWBootstrap == s.bootstrapped {
		for i := range v {
			v[i] = int16(s.bootstrap.Sample(s.sigma2, centre))
		}
		return
	}

	if BlindedSamples == s.blinding {
		for i := range v {
			v[i] = int16(s.gauss.Sample())
		}
		permute16(s.prng, v)
		for i := range v {
			v[i] -= int16(s.gauss.Sample())
		}
		permute16(s.prng, v)
		return
	}

	for i := range v {
		v[i] = int16(s.gauss.Sample()) + int16(centre)
	}
}

// Prng returns the borrowed PRNG context.
func (s *Sampler) Prng() *csprng.Ctx { return s.prng }

// Precision returns the configured table precision.
func (s *Sampler) Precision() Precision { return s.precision }

// blindSigma rescales sigma at construction time when two draws will later
// be summed.
func blindSigma(sigma float64, blinding Blinding) float64 {
	if BlindedSamples == blinding {
		return sigma * 0.7071067811865475244008443621
	}
	return sigma
}
