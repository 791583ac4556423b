package safecrypto

import (
	"github.com/safecrypto/libsafecrypto-go/entropy"
	"github.com/safecrypto/libsafecrypto-go/packer"
	"github.com/safecrypto/libsafecrypto-go/sampling"
)

// The hello-world signature scheme is the plumbing exerciser carried over
// from the original library: it is NOT a secure signature scheme, but it
// drives the sampler, entropy coders and packer through the same paths a
// real scheme uses and gives the registry a permanently available entry.

const (
	helloWorldN    = 64
	helloWorldBits = 11
	helloWorldTail = 13.2
	helloWorldSig  = 25.0
)

type helloWorldCfg struct {
	n int
}

func helloWorldCreate(sc *SafeCrypto, set int32, flags []uint32) error {
	sc.SetSchemeData(&helloWorldCfg{n: helloWorldN})

	if err := sc.InstallSampler(sampling.CDFGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, helloWorldN, sampling.DisableBootstrap,
		helloWorldTail, helloWorldSig); err != nil {
		return err
	}

	sc.SetCoding(CodingSignature, &entropy.Coder{Type: entropy.HuffmanStatic})
	return nil
}

func helloWorldDestroy(sc *SafeCrypto) error {
	return nil
}

func helloWorldKeyGen(sc *SafeCrypto) error {
	key := make([]byte, 32)
	for i := range key {
		key[i] = sc.Prng().Uint8()
	}
	sc.SetKeys(key, key)
	sc.Stats().KeygenNum++
	return nil
}

func helloWorldPubKeyEncode(sc *SafeCrypto) ([]byte, error) {
	pub, _ := sc.Keys()
	if pub == nil {
		return nil, NewError(NullPointer, "no public key to encode")
	}
	out := make([]byte, len(pub))
	copy(out, pub)
	return out, nil
}

func helloWorldPubKeyLoad(sc *SafeCrypto, key []byte) error {
	pub := make([]byte, len(key))
	copy(pub, key)
	_, priv := sc.Keys()
	sc.SetKeys(pub, priv)
	return nil
}

func messageChecksum(pub, message []byte) uint32 {
	sum := uint32(0xA5A5)
	for _, b := range pub {
		sum = sum*31 + uint32(b)
	}
	for _, b := range message {
		sum = sum*31 + uint32(b)
	}
	return sum & 0xFFFF
}

func helloWorldSign(sc *SafeCrypto, message []byte) ([]byte, error) {
	pub, _ := sc.Keys()
	if pub == nil {
		return nil, NewError(NullPointer, "signing requires a key")
	}

	cfg := sc.SchemeData().(*helloWorldCfg)

	v := make([]int32, cfg.n)
	sc.Sampler().Vector32(v, 0)

	// Worst-case Huffman growth: beta raw bits, a 31-bit code, a sign bit
	pk, err := packer.New(uint(cfg.n*40+64), nil)
	if err != nil {
		return nil, NewError(CreateError, "packer creation failed: %v", err)
	}

	var coded uint
	if err := sc.Coding(CodingSignature).PolyEncode32(pk, v, helloWorldBits,
		entropy.Signed, 0, &coded); err != nil {
		sc.pushError(NewError(GeneralError, "signature encode failed: %v", err))
		return nil, err
	}
	if err := pk.Write(messageChecksum(pub, message), 16); err != nil {
		return nil, err
	}

	buf, err := pk.GetBuffer()
	if err != nil {
		return nil, err
	}

	sc.Stats().SigNum++
	sc.Stats().SigNumTrials++
	sc.Stats().Accumulate(StatSignature, uint64(cfg.n*helloWorldBits), uint64(coded))
	return buf, nil
}

func helloWorldVerify(sc *SafeCrypto, message, signature []byte) error {
	pub, _ := sc.Keys()
	if pub == nil {
		return NewError(NullPointer, "verification requires a key")
	}

	cfg := sc.SchemeData().(*helloWorldCfg)

	pk, err := packer.NewReader(uint(8*len(signature)), signature)
	if err != nil {
		return NewError(CreateError, "packer creation failed: %v", err)
	}

	v := make([]int32, cfg.n)
	if err := sc.Coding(CodingSignature).PolyDecode32(pk, v, helloWorldBits,
		entropy.Signed, 0); err != nil {
		return NewError(GeneralError, "signature decode failed: %v", err)
	}

	sum, err := pk.Read(16)
	if err != nil {
		return NewError(GeneralError, "signature truncated: %v", err)
	}

	sc.Stats().VerifyNum++
	if sum != messageChecksum(pub, message) {
		return NewError(GeneralError, "VerifyFail: signature does not match message")
	}
	return nil
}

func helloWorldStats(sc *SafeCrypto) string {
	return sc.Stats().String()
}

func init() {
	register(&Ops{
		Scheme:        SchemeSigHelloWorld,
		Create:        helloWorldCreate,
		Destroy:       helloWorldDestroy,
		KeyGen:        helloWorldKeyGen,
		PubKeyLoad:    helloWorldPubKeyLoad,
		PubKeyEncode:  helloWorldPubKeyEncode,
		Sign:          helloWorldSign,
		Verify:        helloWorldVerify,
		Stats:         helloWorldStats,
	})
}
