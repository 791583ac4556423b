package safecrypto

// Scheme tags every algorithm the library can host. The set is closed; the
// registry is a fixed array indexed by tag, never extended at runtime by
// external packages.
type Scheme int

const (
	SchemeNone Scheme = iota
	SchemeSigHelloWorld
	SchemeSigBlissB
	SchemeSigRingTesla
	SchemeSigDilithium
	SchemeSigDilithiumG
	SchemeEncRLWE
	SchemeKemENS
	SchemeKemKyber
	SchemeEncKyberCPA
	SchemeSigENS
	SchemeSigENSWithRecovery
	SchemeSigDLP
	SchemeSigDLPWithRecovery
	SchemeIBEDLP

	schemeMax
)

func (s Scheme) String() string {
	switch s {
	case SchemeNone:
		return "NONE"
	case SchemeSigHelloWorld:
		return "SIG_HELLO_WORLD"
	case SchemeSigBlissB:
		return "SIG_BLISS_B"
	case SchemeSigRingTesla:
		return "SIG_RING_TESLA"
	case SchemeSigDilithium:
		return "SIG_DILITHIUM"
	case SchemeSigDilithiumG:
		return "SIG_DILITHIUM_G"
	case SchemeEncRLWE:
		return "ENC_RLWE"
	case SchemeKemENS:
		return "KEM_ENS"
	case SchemeKemKyber:
		return "KEM_KYBER"
	case SchemeEncKyberCPA:
		return "ENC_KYBER_CPA"
	case SchemeSigENS:
		return "SIG_ENS"
	case SchemeSigENSWithRecovery:
		return "SIG_ENS_WITH_RECOVERY"
	case SchemeSigDLP:
		return "SIG_DLP"
	case SchemeSigDLPWithRecovery:
		return "SIG_DLP_WITH_RECOVERY"
	case SchemeIBEDLP:
		return "IBE_DLP"
	default:
		return "UNKNOWN"
	}
}

// Ops is the function table of one scheme. Nil entries mean the operation
// is unsupported and calls through the context fail with
// InvalidFunctionCall.
type Ops struct {
	Scheme Scheme

	Create  func(sc *SafeCrypto, set int32, flags []uint32) error
	Destroy func(sc *SafeCrypto) error

	KeyGen        func(sc *SafeCrypto) error
	PubKeyLoad    func(sc *SafeCrypto, key []byte) error
	PrivKeyLoad   func(sc *SafeCrypto, key []byte) error
	PubKeyEncode  func(sc *SafeCrypto) ([]byte, error)
	PrivKeyEncode func(sc *SafeCrypto) ([]byte, error)

	KemEncap func(sc *SafeCrypto) (ct, key []byte, err error)
	KemDecap func(sc *SafeCrypto, ct []byte) ([]byte, error)

	IBESecretKey func(sc *SafeCrypto, sk []byte) error
	IBEExtract   func(sc *SafeCrypto, id []byte) ([]byte, error)
	IBEEncrypt   func(sc *SafeCrypto, id, plaintext []byte) ([]byte, error)

	Encrypt func(sc *SafeCrypto, plaintext []byte) ([]byte, error)
	Decrypt func(sc *SafeCrypto, ciphertext []byte) ([]byte, error)

	Sign   func(sc *SafeCrypto, message []byte) ([]byte, error)
	Verify func(sc *SafeCrypto, message, signature []byte) error

	SignRecovery   func(sc *SafeCrypto, message []byte) (updated, signature []byte, err error)
	VerifyRecovery func(sc *SafeCrypto, signature []byte) ([]byte, error)

	Stats func(sc *SafeCrypto) string
}

// algTable is the static scheme registry.
var algTable [schemeMax]*Ops

// register installs a scheme's function table; called from init functions
// of in-tree scheme packages only.
func register(ops *Ops) {
	if ops.Scheme <= SchemeNone || ops.Scheme >= schemeMax {
		return
	}
	algTable[ops.Scheme] = ops
}

// lookup returns the table entry for a scheme tag.
func lookup(scheme Scheme) *Ops {
	if scheme <= SchemeNone || scheme >= schemeMax {
		return nil
	}
	return algTable[scheme]
}

// Schemes lists every registered scheme tag.
func Schemes() []Scheme {
	var out []Scheme
	for i := Scheme(1); i < schemeMax; i++ {
		if algTable[i] != nil {
			out = append(out, i)
		}
	}
	return out
}
