package safecrypto

import (
	"fmt"
	"strings"
)

// StatComponent indexes the coded artifacts tracked by the statistics
// block.
type StatComponent int

const (
	StatPubKey StatComponent = iota
	StatPrivKey
	StatSignature
	StatExtract
	StatEncrypt
	StatEncapsulate

	statMax
)

func (c StatComponent) String() string {
	switch c {
	case StatPubKey:
		return "public key"
	case StatPrivKey:
		return "private key"
	case StatSignature:
		return "signature"
	case StatExtract:
		return "extract"
	case StatEncrypt:
		return "encrypt"
	case StatEncapsulate:
		return "encapsulate"
	default:
		return "unknown"
	}
}

// CodingStats accumulates the coded and uncoded bit totals of one
// component.
type CodingStats struct {
	Bits      uint64
	BitsCoded uint64
	Count     uint64
}

// Ratio returns the achieved compression ratio, 1 when nothing was coded.
func (s *CodingStats) Ratio() float64 {
	if 0 == s.Bits {
		return 1
	}
	return float64(s.BitsCoded) / float64(s.Bits)
}

// Statistics aggregates per-instance operation counters.
type Statistics struct {
	Scheme Scheme

	KeygenNum     uint64
	SigNum        uint64
	SigNumTrials  uint64
	VerifyNum     uint64
	EncryptNum    uint64
	DecryptNum    uint64
	EncapsulateNum uint64
	DecapsulateNum uint64
	ExtractNum    uint64

	Components [statMax]CodingStats
}

// Accumulate records one coded artifact for a component.
func (s *Statistics) Accumulate(c StatComponent, bits, bitsCoded uint64) {
	s.Components[c].Bits += bits
	s.Components[c].BitsCoded += bitsCoded
	s.Components[c].Count++
}

// Reset clears every counter but keeps the scheme tag.
func (s *Statistics) Reset() {
	scheme := s.Scheme
	*s = Statistics{Scheme: scheme}
}

func (s *Statistics) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s statistics:\n", s.Scheme)
	fmt.Fprintf(&sb, "  keygen: %d, sign: %d (%d trials), verify: %d\n",
		s.KeygenNum, s.SigNum, s.SigNumTrials, s.VerifyNum)
	fmt.Fprintf(&sb, "  encrypt: %d, decrypt: %d, encap: %d, decap: %d, extract: %d\n",
		s.EncryptNum, s.DecryptNum, s.EncapsulateNum, s.DecapsulateNum, s.ExtractNum)
	for i := StatComponent(0); i < statMax; i++ {
		c := &s.Components[i]
		if 0 == c.Count {
			continue
		}
		fmt.Fprintf(&sb, "  %s: %d coded, ratio %.3f\n", i, c.Count, c.Ratio())
	}
	return sb.String()
}
