package safecrypto

import (
	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/entropy"
	"github.com/safecrypto/libsafecrypto-go/sampling"
)

// CodingTarget selects one of the five entropy configurations owned by a
// context.
type CodingTarget int

const (
	CodingPubKey CodingTarget = iota
	CodingPrivKey
	CodingUserKey
	CodingSignature
	CodingEncryption

	codingMax
)

// SafeCrypto is one scheme instance: it owns its scratch arena, the five
// entropy configurations, the PRNG, the sampler handle and the error queue.
// Instances are not safe for concurrent use.
type SafeCrypto struct {
	scheme Scheme
	ops    *Ops

	// Scratch memory shared by the instance's operations; reset between
	// top-level calls
	temp []int32

	coding [codingMax]*entropy.Coder

	prng    *csprng.Ctx
	sampler *sampling.Sampler

	// Serialized key material
	pubKey  []byte
	privKey []byte

	errors errQueue
	stats  Statistics

	// Scheme-private configuration, owned by the scheme implementation
	schemeData interface{}
}

// New creates an instance of the given scheme with the parameter set and
// creation flags the scheme defines.
func New(scheme Scheme, set int32, flags []uint32) (*SafeCrypto, error) {
	ops := lookup(scheme)
	if ops == nil {
		return nil, NewError(DisabledAtCompile, "scheme %s is not registered", scheme)
	}

	prng, err := csprng.New()
	if err != nil {
		return nil, NewError(CreateError, "prng creation failed: %v", err)
	}

	sc := &SafeCrypto{
		scheme: scheme,
		ops:    ops,
		prng:   prng,
	}
	for i := range sc.coding {
		sc.coding[i] = &entropy.Coder{Type: entropy.None}
	}
	sc.stats.Scheme = scheme

	if ops.Create != nil {
		if err := ops.Create(sc, set, flags); err != nil {
			return nil, err
		}
	}

	return sc, nil
}

// Destroy releases the instance, zeroing scratch memory and key material.
func (sc *SafeCrypto) Destroy() error {
	var err error
	if sc.ops != nil && sc.ops.Destroy != nil {
		err = sc.ops.Destroy(sc)
	}

	for i := range sc.temp {
		sc.temp[i] = 0
	}
	for i := range sc.privKey {
		sc.privKey[i] = 0
	}
	sc.temp = nil
	sc.privKey = nil
	sc.pubKey = nil
	sc.sampler = nil
	sc.errors.clear()
	return err
}

// Scheme returns the instance's scheme tag.
func (sc *SafeCrypto) Scheme() Scheme { return sc.scheme }

// Prng exposes the instance PRNG, borrowed by samplers and uniform
// generators.
func (sc *SafeCrypto) Prng() *csprng.Ctx { return sc.prng }

// Temp returns the scratch arena, growing it to at least n words. The
// contents are unspecified between top-level operations.
func (sc *SafeCrypto) Temp(n int) []int32 {
	if len(sc.temp) < n {
		sc.temp = make([]int32, n)
	}
	return sc.temp[:n]
}

// ResetTemp zeroes the scratch arena.
func (sc *SafeCrypto) ResetTemp() {
	for i := range sc.temp {
		sc.temp[i] = 0
	}
}

// Coding returns the entropy configuration for one coded component.
func (sc *SafeCrypto) Coding(target CodingTarget) *entropy.Coder {
	return sc.coding[target]
}

// SetCoding replaces the entropy configuration for one coded component.
func (sc *SafeCrypto) SetCoding(target CodingTarget, coder *entropy.Coder) {
	sc.coding[target] = coder
}

// Sampler returns the instance's Gaussian sampler handle, or nil before
// InstallSampler.
func (sc *SafeCrypto) Sampler() *sampling.Sampler { return sc.sampler }

// InstallSampler configures the instance's Gaussian sampler.
func (sc *SafeCrypto) InstallSampler(algo sampling.Algorithm, precision sampling.Precision,
	blinding sampling.Blinding, dimension int32, bootstrap sampling.Bootstrap,
	tail, sigma float64) error {

	s, err := sampling.New(algo, precision, blinding, dimension, bootstrap, sc.prng, tail, sigma)
	if err != nil {
		sc.pushError(NewError(CreateError, "sampler creation failed: %v", err))
		return err
	}
	sc.sampler = s
	return nil
}

// SetSchemeData attaches scheme-private configuration to the instance.
func (sc *SafeCrypto) SetSchemeData(data interface{}) { sc.schemeData = data }

// SchemeData returns the scheme-private configuration.
func (sc *SafeCrypto) SchemeData() interface{} { return sc.schemeData }

// SetKeys installs serialized key material.
func (sc *SafeCrypto) SetKeys(pub, priv []byte) {
	sc.pubKey = pub
	sc.privKey = priv
}

// Keys returns the serialized key material.
func (sc *SafeCrypto) Keys() (pub, priv []byte) {
	return sc.pubKey, sc.privKey
}

func (sc *SafeCrypto) pushError(e *Error) {
	sc.errors.push(e)
}

// LastError pops the oldest queued error, or nil.
func (sc *SafeCrypto) LastError() *Error { return sc.errors.pop() }

// Stats returns the statistics block.
func (sc *SafeCrypto) Stats() *Statistics { return &sc.stats }

func (sc *SafeCrypto) unsupported(name string) error {
	err := NewError(InvalidFunctionCall, "%s is not supported by %s", name, sc.scheme)
	sc.pushError(err)
	return err
}

// KeyGen generates a key pair.
func (sc *SafeCrypto) KeyGen() error {
	if sc.ops.KeyGen == nil {
		return sc.unsupported("keygen")
	}
	return sc.ops.KeyGen(sc)
}

// PubKeyLoad loads a serialized public key.
func (sc *SafeCrypto) PubKeyLoad(key []byte) error {
	if sc.ops.PubKeyLoad == nil {
		return sc.unsupported("pubkey_load")
	}
	return sc.ops.PubKeyLoad(sc, key)
}

// PrivKeyLoad loads a serialized private key.
func (sc *SafeCrypto) PrivKeyLoad(key []byte) error {
	if sc.ops.PrivKeyLoad == nil {
		return sc.unsupported("privkey_load")
	}
	return sc.ops.PrivKeyLoad(sc, key)
}

// PubKeyEncode serializes the public key.
func (sc *SafeCrypto) PubKeyEncode() ([]byte, error) {
	if sc.ops.PubKeyEncode == nil {
		return nil, sc.unsupported("pubkey_encode")
	}
	return sc.ops.PubKeyEncode(sc)
}

// PrivKeyEncode serializes the private key.
func (sc *SafeCrypto) PrivKeyEncode() ([]byte, error) {
	if sc.ops.PrivKeyEncode == nil {
		return nil, sc.unsupported("privkey_encode")
	}
	return sc.ops.PrivKeyEncode(sc)
}

// KemEncap encapsulates a fresh shared key.
func (sc *SafeCrypto) KemEncap() (ct, key []byte, err error) {
	if sc.ops.KemEncap == nil {
		return nil, nil, sc.unsupported("kem_encap")
	}
	return sc.ops.KemEncap(sc)
}

// KemDecap decapsulates a ciphertext.
func (sc *SafeCrypto) KemDecap(ct []byte) ([]byte, error) {
	if sc.ops.KemDecap == nil {
		return nil, sc.unsupported("kem_decap")
	}
	return sc.ops.KemDecap(sc, ct)
}

// IBESecretKey installs the master secret.
func (sc *SafeCrypto) IBESecretKey(sk []byte) error {
	if sc.ops.IBESecretKey == nil {
		return sc.unsupported("ibe_secret_key")
	}
	return sc.ops.IBESecretKey(sc, sk)
}

// IBEExtract extracts a user secret key for an identity.
func (sc *SafeCrypto) IBEExtract(id []byte) ([]byte, error) {
	if sc.ops.IBEExtract == nil {
		return nil, sc.unsupported("ibe_extract")
	}
	return sc.ops.IBEExtract(sc, id)
}

// IBEEncrypt encrypts to an identity.
func (sc *SafeCrypto) IBEEncrypt(id, plaintext []byte) ([]byte, error) {
	if sc.ops.IBEEncrypt == nil {
		return nil, sc.unsupported("ibe_encrypt")
	}
	return sc.ops.IBEEncrypt(sc, id, plaintext)
}

// Encrypt encrypts with the public key.
func (sc *SafeCrypto) Encrypt(plaintext []byte) ([]byte, error) {
	if sc.ops.Encrypt == nil {
		return nil, sc.unsupported("encrypt")
	}
	return sc.ops.Encrypt(sc, plaintext)
}

// Decrypt decrypts with the private key.
func (sc *SafeCrypto) Decrypt(ciphertext []byte) ([]byte, error) {
	if sc.ops.Decrypt == nil {
		return nil, sc.unsupported("decrypt")
	}
	return sc.ops.Decrypt(sc, ciphertext)
}

// Sign signs a message.
func (sc *SafeCrypto) Sign(message []byte) ([]byte, error) {
	if sc.ops.Sign == nil {
		return nil, sc.unsupported("sign")
	}
	return sc.ops.Sign(sc, message)
}

// Verify checks a signature; the distinguished verification failure is an
// error of kind GeneralError with a VerifyFail message.
func (sc *SafeCrypto) Verify(message, signature []byte) error {
	if sc.ops.Verify == nil {
		return sc.unsupported("verify")
	}
	return sc.ops.Verify(sc, message, signature)
}

// SignRecovery signs with message recovery.
func (sc *SafeCrypto) SignRecovery(message []byte) (updated, signature []byte, err error) {
	if sc.ops.SignRecovery == nil {
		return nil, nil, sc.unsupported("sign_recovery")
	}
	return sc.ops.SignRecovery(sc, message)
}

// VerifyRecovery verifies and recovers the embedded message.
func (sc *SafeCrypto) VerifyRecovery(signature []byte) ([]byte, error) {
	if sc.ops.VerifyRecovery == nil {
		return nil, sc.unsupported("verify_recovery")
	}
	return sc.ops.VerifyRecovery(sc, signature)
}

// ProcessingStats renders the scheme's statistics, or the generic block
// when the scheme provides none.
func (sc *SafeCrypto) ProcessingStats() string {
	if sc.ops.Stats != nil {
		return sc.ops.Stats(sc)
	}
	return sc.stats.String()
}
