package entropy

import "github.com/safecrypto/libsafecrypto-go/packer"

// CoderType selects the entropy coding applied to a coefficient stream.
type CoderType int

const (
	// None writes coefficients as raw fixed-width fields.
	None CoderType = iota
	// HuffmanStatic codes the magnitude head with the fixed Gaussian tables.
	HuffmanStatic
	// BAC codes the stream with the binary arithmetic coder.
	BAC
	// BACRLE is reserved; it is disabled in this build.
	BACRLE
	// StrongSwan is reserved; it is disabled in this build.
	StrongSwan
)

// Signedness declares how coefficient fields are interpreted on decode.
type Signedness int

const (
	// Unsigned coefficients decode without sign extension.
	Unsigned Signedness = iota
	// Signed coefficients sign extend (raw) or carry a trailing sign bit
	// (Huffman).
	Signed
)

// Coder is the entropy configuration attached to one coded component: the
// coding type and the BAC distribution tables the component references by
// small index.
type Coder struct {
	Type CoderType
	Dist [][]uint64
}

// signedTable returns the fixed table for a signed magnitude head of the
// given width.
func signedTable(bitw uint) *HuffmanTable {
	switch bitw {
	case 7:
		return HuffTableGaussian6
	case 6:
		return HuffTableGaussian5
	case 5:
		return HuffTableGaussian4
	case 4:
		return HuffTableGaussian3
	default:
		return HuffTableGaussian2
	}
}

// unsignedTable returns the fixed table for an unsigned head of the given
// width.
func unsignedTable(bitw uint) *HuffmanTable {
	switch bitw {
	case 6:
		return HuffTableGaussian6
	case 5:
		return HuffTableGaussian5
	case 4:
		return HuffTableGaussian4
	case 3:
		return HuffTableGaussian3
	default:
		return HuffTableGaussian2
	}
}

// encodeHuffmanSigned writes each symbol as beta raw magnitude bits, a
// Huffman-coded head, and a sign bit when the coefficient is non-zero.
func encodeHuffmanSigned(pk *packer.Packer, p []int32, bitw, beta uint) error {
	mask := uint32(1)<<beta - 1
	table := signedTable(bitw)

	for _, s := range p {
		sign := uint32(0)
		value := uint32(s)
		if s < 0 {
			sign = 1
			value = uint32(-s)
		}
		if err := pk.Write(value&mask, beta); err != nil {
			return err
		}
		value >>= beta

		if err := EncodeHuffman(pk, table, value); err != nil {
			return err
		}

		if s != 0 {
			if err := pk.Write(sign, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeHuffmanUnsigned(pk *packer.Packer, p []int32, bitw, beta uint) error {
	mask := uint32(1)<<beta - 1
	table := unsignedTable(bitw)

	for _, s := range p {
		value := uint32(s)
		if err := pk.Write(value&mask, beta); err != nil {
			return err
		}
		if err := EncodeHuffman(pk, table, value>>beta); err != nil {
			return err
		}
	}
	return nil
}

func decodeHuffmanSigned(pk *packer.Packer, p []int32, bitw, beta uint) error {
	table := signedTable(bitw)

	for i := range p {
		value, err := pk.Read(beta)
		if err != nil {
			return err
		}
		head, err := DecodeHuffman(pk, table)
		if err != nil {
			return err
		}

		value |= head << beta
		sign := uint32(0)
		if value != 0 {
			if sign, err = pk.Read(1); err != nil {
				return err
			}
		}

		if sign != 0 {
			p[i] = -int32(value)
		} else {
			p[i] = int32(value)
		}
	}
	return nil
}

func decodeHuffmanUnsigned(pk *packer.Packer, p []int32, bitw, beta uint) error {
	table := unsignedTable(bitw)

	for i := range p {
		value, err := pk.Read(beta)
		if err != nil {
			return err
		}
		head, err := DecodeHuffman(pk, table)
		if err != nil {
			return err
		}
		p[i] = int32(value | head<<beta)
	}
	return nil
}

func encodeRaw(pk *packer.Packer, p []int32, bitw uint) error {
	for _, s := range p {
		if err := pk.Write(uint32(s), bitw); err != nil {
			return err
		}
	}
	return nil
}

func decodeRawSigned(pk *packer.Packer, p []int32, bitw uint) error {
	sign := uint32(1) << (bitw - 1)
	signExt := (uint32(1)<<(32-bitw) - 1) << bitw

	for i := range p {
		value, err := pk.Read(bitw)
		if err != nil {
			return err
		}
		if value&sign != 0 {
			p[i] = int32(signExt | value)
		} else {
			p[i] = int32(value)
		}
	}
	return nil
}

func decodeRawUnsigned(pk *packer.Packer, p []int32, bitw uint) error {
	for i := range p {
		value, err := pk.Read(bitw)
		if err != nil {
			return err
		}
		p[i] = int32(value)
	}
	return nil
}

// PolyEncode32 codes the 32-bit coefficient stream p at the declared bit
// width, routed by the coder type. codedBits, when non-nil, is incremented by
// the number of bits emitted.
func (c *Coder) PolyEncode32(pk *packer.Packer, p []int32, bitw uint, sign Signedness, dist int, codedBits *uint) error {
	if pk == nil {
		return errNilPacker
	}

	before := pk.BitsIn()
	var err error

	switch c.Type {
	case HuffmanStatic:
		if Unsigned == sign {
			beta := clampBeta(bitw, 7)
			err = encodeHuffmanUnsigned(pk, p, bitw-beta, beta)
		} else {
			beta := clampBeta(bitw, 6)
			err = encodeHuffmanSigned(pk, p, bitw-beta, beta)
		}
	case BAC:
		offset := int32(0)
		if Signed == sign {
			offset = 1 << (bitw - 1)
		}
		err = BacEncode64_32(pk, p, c.Dist[dist], int32(bitw), offset)
	default:
		err = encodeRaw(pk, p, bitw)
	}

	if codedBits != nil {
		*codedBits += pk.BitsIn() - before
	}
	return err
}

// PolyDecode32 reverses PolyEncode32 for the same configuration.
func (c *Coder) PolyDecode32(pk *packer.Packer, p []int32, bitw uint, sign Signedness, dist int) error {
	if pk == nil {
		return errNilPacker
	}

	switch c.Type {
	case HuffmanStatic:
		if Unsigned == sign {
			beta := clampBeta(bitw, 7)
			return decodeHuffmanUnsigned(pk, p, bitw-beta, beta)
		}
		beta := clampBeta(bitw, 6)
		return decodeHuffmanSigned(pk, p, bitw-beta, beta)
	case BAC:
		offset := int32(0)
		if Signed == sign {
			offset = 1 << (bitw - 1)
		}
		return BacDecode64_32(pk, p, c.Dist[dist], int32(bitw), offset)
	default:
		if Unsigned == sign {
			return decodeRawUnsigned(pk, p, bitw)
		}
		return decodeRawSigned(pk, p, bitw)
	}
}

// PolyEncode16 codes a 16-bit coefficient stream. BAC is not routed at this
// width; callers use the 64_16 coder directly.
func (c *Coder) PolyEncode16(pk *packer.Packer, p []int16, bitw uint, sign Signedness, codedBits *uint) error {
	wide := make([]int32, len(p))
	for i, v := range p {
		wide[i] = int32(v)
	}

	if BAC == c.Type {
		cc := &Coder{Type: None}
		return cc.PolyEncode32(pk, wide, bitw, sign, 0, codedBits)
	}
	return c.PolyEncode32(pk, wide, bitw, sign, 0, codedBits)
}

// PolyDecode16 reverses PolyEncode16.
func (c *Coder) PolyDecode16(pk *packer.Packer, p []int16, bitw uint, sign Signedness) error {
	wide := make([]int32, len(p))

	cc := c
	if BAC == c.Type {
		cc = &Coder{Type: None}
	}
	if err := cc.PolyDecode32(pk, wide, bitw, sign, 0); err != nil {
		return err
	}
	for i, v := range wide {
		p[i] = int16(v)
	}
	return nil
}

// PolyEncode8 codes an 8-bit coefficient stream.
func (c *Coder) PolyEncode8(pk *packer.Packer, p []int8, bitw uint, sign Signedness, codedBits *uint) error {
	wide := make([]int32, len(p))
	for i, v := range p {
		wide[i] = int32(v)
	}

	cc := c
	if BAC == c.Type {
		cc = &Coder{Type: None}
	}
	return cc.PolyEncode32(pk, wide, bitw, sign, 0, codedBits)
}

// PolyDecode8 reverses PolyEncode8.
func (c *Coder) PolyDecode8(pk *packer.Packer, p []int8, bitw uint, sign Signedness) error {
	wide := make([]int32, len(p))

	cc := c
	if BAC == c.Type {
		cc = &Coder{Type: None}
	}
	if err := cc.PolyDecode32(pk, wide, bitw, sign, 0); err != nil {
		return err
	}
	for i, v := range wide {
		p[i] = int8(v)
	}
	return nil
}

func clampBeta(bitw, head uint) uint {
	if bitw < head {
		return 0
	}
	return bitw - head
}
