package poly

import (
	"fmt"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/scmath"
)

// Z2Mul multiplies two length-n binary polynomials over Z/2Z into out,
// which must hold 2n coefficients.
func Z2Mul(out []int32, n int, in1, in2 []int32) {
	for i := 0; i < 2*n; i++ {
		out[i] = 0
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i+j] ^= in1[i] & in2[j]
		}
	}
}

// Z2Div performs binary polynomial long division of num by den, writing the
// quotient and remainder. It fails when either polynomial is zero.
func Z2Div(q, r []int32, n int, num, den []int32) error {
	degNum := n - 1
	for degNum >= 0 && 0 == num[degNum] {
		degNum--
	}
	degDen := n - 1
	for degDen >= 0 && 0 == den[degDen] {
		degDen--
	}

	if degNum < 0 || degDen < 0 {
		return fmt.Errorf("binary polynomial division with zero operand")
	}

	for i := 0; i < n; i++ {
		r[i] = num[i]
		q[i] = 0
	}

	for k := degNum - degDen; k >= 0; k-- {
		q[k] = r[degDen+k]
		for j := degDen + k - 1; j >= k; j-- {
			r[j] ^= q[k] & den[j-k]
		}
	}
	for j := degDen; j < n; j++ {
		r[j] = 0
	}

	return nil
}

// Z2MulMod2 multiplies two length-n binary polynomials modulo X^n - 1; n
// must be a power of two.
func Z2MulMod2(in1, in2 []int32, n int, out []int32) {
	modN := n - 1
	for i := 0; i < n; i++ {
		temp := int32(0)
		for j := 0; j < n; j++ {
			temp ^= in1[j] & in2[(n+i-j)&modN]
		}
		out[i] = temp
	}
}

// Z2ConvMod2 is the word-packed form of the cyclic product: a and bRev hold
// n bits as big-endian 32-bit words, bRev the second operand pre-reversed.
// bRev is rotated in place as the convolution walks the positions.
func Z2ConvMod2(a []uint32, bRev []uint32, n int, out []uint32) error {
	words := n >> 5
	for i := 0; i < n; i++ {
		if err := scmath.ArrRotl32(bRev[:words], -1); err != nil {
			return err
		}
		temp := uint32(0)
		for j := 0; j < words; j++ {
			temp ^= a[j] & bRev[j]
		}
		temp = scmath.Parity32(temp)
		if 0 == i&0x1F {
			out[i>>5] = temp << 31
		} else {
			out[i>>5] |= temp << uint(31-(i&0x1F))
		}
	}
	return nil
}

// Z2Uniform fills v with a sparse binary polynomial of approximately
// numOnes set coefficients at uniform positions.
func Z2Uniform(prng *csprng.Ctx, v []int32, n int, numOnes int) {
	for i := range v {
		v[i] = 0
	}
	for i := 0; i < numOnes; i++ {
		rand := prng.Uint32()
		idx := (rand >> 1) & uint32(n-1)
		v[idx] = int32(rand & 1)
	}
}
