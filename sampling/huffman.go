package sampling

import (
	"math"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/entropy"
)

// huffmanSampler walks a Huffman tree whose code lengths approximate the
// target Gaussian, driven by uniform random bits.
type huffmanSampler struct {
	table   *entropy.HuffmanTable
	bits    int32
	signBit int32
	prng    *csprng.Ctx
}

func newHuffmanSampler(prng *csprng.Ctx, tail, sigma float64, blinding Blinding) (*huffmanSampler, error) {
	bits := int32(math.Ceil(math.Log2(tail * sigma)))

	sigma = blindSigma(sigma, blinding)

	g := &huffmanSampler{
		table:   entropy.CreateHuffmanGaussianSampler(bits, sigma),
		bits:    bits,
		signBit: 1 << uint(bits),
		prng:    prng,
	}
	return g, nil
}

func (g *huffmanSampler) Prng() *csprng.Ctx { return g.prng }

func (g *huffmanSampler) Sample() int32 {
	return entropy.SampleHuffman(g.prng, g.table)
}
