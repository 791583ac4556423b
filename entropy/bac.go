package entropy

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/safecrypto/libsafecrypto-go/packer"
)

const (
	bacRangeMSB = uint64(0x8000000000000000)
	bacMidMask  = uint32(0xFFFFFFFE)
)

// mul64hi returns the high 64 bits of the 128-bit product of x and y.
func mul64hi(x, y uint64) uint64 {
	hi, _ := bits.Mul64(x, y)
	return hi
}

// div64fr returns (x * 2^64 - 1) / y as the fixed-point fraction x/y.
func div64fr(x, y uint64) uint64 {
	q, _ := bits.Div64(x-1, math.MaxUint64, y)
	return q
}

// BacDistFreq64 fills dist with the midpoint-split conditional probabilities
// derived from an integer frequency vector of length n (a power of two).
// Entry (prefix | 1<<i) holds P(bit i = 0 | higher bits match prefix) scaled
// to 2^64. The +1 on each accumulated group keeps both branches non-zero for
// empty frequency bins, and the clamp keeps degenerate branches from
// stalling renormalization.
func BacDistFreq64(dist, freq []uint64, n int) {
	for i := 0; i < n; i++ {
		dist[i] = 0
	}

	for i := n >> 1; i >= 1; i >>= 1 {
		for j := 0; j < n; j += i + i {
			a := uint64(1)
			b := uint64(1)
			for k := 0; k < i; k++ {
				a += freq[j+k]
				b += freq[i+j+k]
			}
			r := div64fr(a, a+b)
			if r < 4 {
				r = 4
			}
			dist[j+i] = r
		}
	}
}

// GaussFreqBac64 fills dist in the same layout with group probabilities of a
// Gaussian of standard deviation sig, the symbol range being centred on n/2.
func GaussFreqBac64(dist []uint64, sig float64, n int) {
	sig2i := -0.5 / (sig * sig)

	for i := 0; i < n; i++ {
		dist[i] = 0
	}

	for i := n >> 1; i >= 1; i >>= 1 {
		for j := 0; j < n; j += i + i {
			a := 0.0
			b := 0.0
			for k := 0; k < i; k++ {
				x := float64(j + k - (n >> 1))
				a += math.Exp(sig2i * x * x)
				x = float64(i + j + k - (n >> 1))
				b += math.Exp(sig2i * x * x)
			}
			a = a / (a + b)
			r := scale64(a)
			if r < 4 {
				if a > 0.5 {
					r = ^uint64(0) - 3
				} else {
					r = 4
				}
			}
			dist[j+i] = r
		}
	}
}

// carryPropagation folds an output byte's carry back through the bytes
// already committed to the buffer.
func carryPropagation(optr int, obyte uint32, buffer []byte) {
	for i := optr - 1; obyte >= 0x100 && i >= 0; i-- {
		obyte >>= 8
		obyte += uint32(buffer[i])
		buffer[i] = byte(obyte)
	}
}

// BacEncode64_32 range-encodes inlen values from in, each coded as bits
// binary decisions against the midpoint table dist after shifting by offset.
// The compressed segment starts with a 16-bit big-endian payload length that
// is patched once the payload size is known.
func BacEncode64_32(pk *packer.Packer, in []int32, dist []uint64, bitw int32, offset int32) error {
	// Byte alignment before the length header is reserved
	if err := pk.Flush(); err != nil {
		return err
	}

	bufhdr := pk.WritePtr()
	if err := pk.Write(0x0000, 16); err != nil {
		return err
	}
	if err := pk.Flush(); err != nil {
		return err
	}
	buffer := pk.WritePtr()

	b := uint64(0)         // lower bound
	l := uint64(math.MaxUint64) // range

	data := uint32(0) // partial output byte; wide enough to carry
	ocnt := 0
	optr := 0

	for _, s := range in {
		iwrd := uint32(offset + s)

		for icnt := bitw - 1; icnt >= 0; icnt-- {
			// Midpoint split scaled to the current range
			c := dist[(iwrd&(bacMidMask<<uint(icnt)))|(1<<uint(icnt))]
			c = mul64hi(l, c)

			if 0 == (iwrd>>uint(icnt))&1 {
				l = c
			} else {
				b += c
				l -= c
				if b < c { // wrapped
					data++
				}
			}

			// Renormalize, emitting the top bit of b while the range is
			// below half
			if l != 0 {
				for l < bacRangeMSB {
					data <<= 1
					data |= uint32(b>>63) & 1
					ocnt++
					if ocnt >= 8 {
						if err := pk.Write(data&0xFF, 8); err != nil {
							return err
						}
						if err := pk.Flush(); err != nil {
							return err
						}
						carryPropagation(optr, data, buffer)
						optr++
						ocnt = 0
						data = 0
					}

					b <<= 1
					l <<= 1
				}
			}
		}
	}

	for ocnt < 8 {
		data = (data << 1) ^ uint32(b>>63)
		b <<= 1
		ocnt++
	}

	if err := pk.Write(data&0xFF, 8); err != nil {
		return err
	}
	if err := pk.Flush(); err != nil {
		return err
	}
	carryPropagation(optr, data, buffer)
	optr++
	for b != 0 {
		if err := pk.Write(uint32(b>>56), 8); err != nil {
			return err
		}
		b <<= 8
		optr++
	}

	if optr > 0xFFFF {
		return fmt.Errorf("bac payload of %d bytes exceeds the length header", optr)
	}
	bufhdr[0] = byte(optr >> 8)
	bufhdr[1] = byte(optr)

	return nil
}

// BacDecode64_32 is the symmetric decoder, consuming the length header and
// then outlen values. Reads past the logical payload end are taken as zero
// bytes.
func BacDecode64_32(pk *packer.Packer, out []int32, dist []uint64, bitw int32, offset int32) error {
	b := uint64(0)
	l := uint64(math.MaxUint64)

	// Byte alignment, then the 16-bit length header
	if _, err := pk.Read((8 - (pk.BitsOut() & 7)) & 7); err != nil {
		return err
	}
	hi, err := pk.Read(8)
	if err != nil {
		return err
	}
	lo, err := pk.Read(8)
	if err != nil {
		return err
	}
	length := int32(hi<<8 + lo)

	// Prime the 64-bit comparison window
	w1, err := pk.Read(32)
	if err != nil {
		return err
	}
	w2, err := pk.Read(32)
	if err != nil {
		return err
	}
	v := uint64(w1)<<32 | uint64(w2)

	ibyt := uint32(0)
	icnt := 0
	iptr := int32(8)

	for optr := range out {
		owrd := uint32(0)
		for ocnt := bitw - 1; ocnt >= 0; ocnt-- {
			c := dist[(owrd&(bacMidMask<<uint(ocnt)))|(1<<uint(ocnt))]
			c = mul64hi(l, c)

			if v-b < c {
				l = c
			} else {
				b += c
				l -= c
				owrd |= 1 << uint(ocnt)
			}

			for l < bacRangeMSB {
				icnt--
				if icnt < 0 && iptr < length {
					// Zero padding past the end of the buffer
					nb, err := pk.Read(8)
					if err != nil {
						nb = 0
					}
					ibyt = nb
					iptr++
					icnt = 7
				}
				v <<= 1
				if icnt >= 0 {
					v += uint64((ibyt >> uint(icnt)) & 1)
				}

				b <<= 1
				l <<= 1
			}
		}

		out[optr] = int32(owrd) - offset
	}

	return nil
}

// BacEncode64_16 encodes 16-bit values with the same procedure.
func BacEncode64_16(pk *packer.Packer, in []int16, dist []uint64, bitw int32, offset int32) error {
	wide := make([]int32, len(in))
	for i, v := range in {
		wide[i] = int32(v)
	}
	return BacEncode64_32(pk, wide, dist, bitw, offset)
}

// BacDecode64_16 decodes 16-bit values with the same procedure.
func BacDecode64_16(pk *packer.Packer, out []int16, dist []uint64, bitw int32, offset int32) error {
	wide := make([]int32, len(out))
	if err := BacDecode64_32(pk, wide, dist, bitw, offset); err != nil {
		return err
	}
	for i, v := range wide {
		out[i] = int16(v)
	}
	return nil
}
