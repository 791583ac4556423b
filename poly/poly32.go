// Package poly provides the polynomial kernels: small-ring arithmetic on
// machine integers, arithmetic over Z/2Z including the almost-inverse
// algorithm, and multi-precision integer polynomials with Karatsuba and
// Kronecker-substitution multiplication.
package poly

import (
	"fmt"

	"github.com/safecrypto/libsafecrypto-go/csprng"
)

// Copy32 copies in into out.
func Copy32(out []int32, in []int32) {
	copy(out, in)
}

// Reset32 zeroes inout from offset onward.
func Reset32(inout []int32, offset int) {
	for i := offset; i < len(inout); i++ {
		inout[i] = 0
	}
}

// AddScalar32 adds a scalar to the constant term.
func AddScalar32(p []int32, v int32) {
	if len(p) > 0 {
		p[0] += v
	}
}

// SubScalar32 subtracts a scalar from the constant term.
func SubScalar32(p []int32, v int32) {
	if len(p) > 0 {
		p[0] -= v
	}
}

// MulScalar32 scales every coefficient.
func MulScalar32(p []int32, v int32) {
	for i := range p {
		p[i] *= v
	}
}

// Add32 sets out = in1 + in2 pointwise.
func Add32(out, in1, in2 []int32) {
	for i := range out {
		out[i] = in1[i] + in2[i]
	}
}

// Sub32 sets out = in1 - in2 pointwise.
func Sub32(out, in1, in2 []int32) {
	for i := range out {
		out[i] = in1[i] - in2[i]
	}
}

// AddSingle32 accumulates in into out.
func AddSingle32(out, in []int32) {
	for i := range in {
		out[i] += in[i]
	}
}

// SubSingle32 subtracts in from out.
func SubSingle32(out, in []int32) {
	for i := range in {
		out[i] -= in[i]
	}
}

// Mul32 multiplies two length-n polynomials over Z into out, which must
// hold 2n-1 coefficients; no modular reduction is applied.
func Mul32(out []int32, n int, in1, in2 []int32) {
	for i := 0; i < n; i++ {
		out[i] = in1[i] * in2[0]
	}
	for j := 1; j < n; j++ {
		out[n-1+j] = in1[n-1] * in2[j]
	}
	for i := 0; i < n-1; i++ {
		for j := 1; j < n; j++ {
			out[i+j] += in1[i] * in2[j]
		}
	}
}

// ModNegate32 sets out = q - in pointwise.
func ModNegate32(out []int32, q int32, in []int32) {
	for i := range out {
		out[i] = q - in[i]
	}
}

// Degree32 returns the degree of h, or -1 for the zero polynomial.
func Degree32(h []int32) int {
	for j := len(h) - 1; j >= 0; j-- {
		if h[j] != 0 {
			return j
		}
	}
	return -1
}

// DegreeDbl returns the degree of a float-coefficient polynomial, or -1 for
// the zero polynomial.
func DegreeDbl(h []float64) int {
	for j := len(h) - 1; j >= 0; j-- {
		if h[j] != 0 {
			return j
		}
	}
	return -1
}

// UniformRand32 places a multiset of signed symbols uniformly in v: for each
// value j the count c[j] positions receive +/-(cLen-j), chosen by rejection
// so placement is unbiased. len(v) must be a power of two and the multiset
// must fit.
func UniformRand32(prng *csprng.Ctx, v []int32, c []uint16) error {
	n := len(v)
	if n&(n-1) != 0 || 0 == n {
		return fmt.Errorf("uniform placement needs a power-of-two length, got %d", n)
	}

	total := 0
	for _, count := range c {
		total += int(count)
	}
	if total > n {
		return fmt.Errorf("multiset of %d symbols cannot fit %d coefficients", total, n)
	}

	mask := uint32(n - 1)
	for i := range v {
		v[i] = 0
	}

	cLen := int32(len(c))
	for j := range c {
		placed := uint16(0)
		for placed < c[j] {
			rand := prng.Uint32()
			index := (rand >> 1) & mask
			if 0 == v[index] {
				if rand&1 != 0 {
					v[index] = int32(j) - cLen
				} else {
					v[index] = cLen - int32(j)
				}
				placed++
			}
		}
	}
	return nil
}
