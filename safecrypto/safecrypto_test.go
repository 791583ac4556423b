package safecrypto_test

import (
	"testing"

	"github.com/safecrypto/libsafecrypto-go/safecrypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryListsHelloWorld(t *testing.T) {
	schemes := safecrypto.Schemes()
	assert.Contains(t, schemes, safecrypto.SchemeSigHelloWorld)
}

func TestUnregisteredSchemeFails(t *testing.T) {
	_, err := safecrypto.New(safecrypto.SchemeSigBlissB, 0, nil)
	require.Error(t, err)
	assert.Equal(t, safecrypto.DisabledAtCompile, safecrypto.KindOf(err))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	sc, err := safecrypto.New(safecrypto.SchemeSigHelloWorld, 0, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, sc.Destroy()) }()

	require.NoError(t, sc.KeyGen())

	msg := []byte("the quick brown fox")
	sig, err := sc.Sign(msg)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	assert.NoError(t, sc.Verify(msg, sig))

	// A modified message must fail verification.
	err = sc.Verify([]byte("the quick brown fix"), sig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VerifyFail")
}

func TestUnsupportedOperationTagged(t *testing.T) {
	sc, err := safecrypto.New(safecrypto.SchemeSigHelloWorld, 0, nil)
	require.NoError(t, err)

	_, _, err = sc.KemEncap()
	require.Error(t, err)
	assert.Equal(t, safecrypto.InvalidFunctionCall, safecrypto.KindOf(err))

	// The failure is queued on the context.
	qe := sc.LastError()
	require.NotNil(t, qe)
	assert.Equal(t, safecrypto.InvalidFunctionCall, qe.Kind)
	assert.Nil(t, sc.LastError())
}

func TestScratchArena(t *testing.T) {
	sc, err := safecrypto.New(safecrypto.SchemeSigHelloWorld, 0, nil)
	require.NoError(t, err)

	temp := sc.Temp(128)
	require.Len(t, temp, 128)
	temp[0] = 42

	// A smaller request reuses the arena without reallocating.
	again := sc.Temp(64)
	assert.Equal(t, int32(42), again[0])

	sc.ResetTemp()
	assert.Equal(t, int32(0), again[0])
}

func TestPubKeyEncodeLoad(t *testing.T) {
	sc, err := safecrypto.New(safecrypto.SchemeSigHelloWorld, 0, nil)
	require.NoError(t, err)
	require.NoError(t, sc.KeyGen())

	encoded, err := sc.PubKeyEncode()
	require.NoError(t, err)
	require.Len(t, encoded, 32)

	other, err := safecrypto.New(safecrypto.SchemeSigHelloWorld, 0, nil)
	require.NoError(t, err)
	require.NoError(t, other.PubKeyLoad(encoded))

	pub, _ := other.Keys()
	assert.Equal(t, encoded, pub)
}

func TestStatisticsAccumulate(t *testing.T) {
	sc, err := safecrypto.New(safecrypto.SchemeSigHelloWorld, 0, nil)
	require.NoError(t, err)
	require.NoError(t, sc.KeyGen())

	for i := 0; i < 3; i++ {
		_, err := sc.Sign([]byte("msg"))
		require.NoError(t, err)
	}

	stats := sc.Stats()
	assert.Equal(t, uint64(1), stats.KeygenNum)
	assert.Equal(t, uint64(3), stats.SigNum)
	assert.Equal(t, uint64(3), stats.Components[safecrypto.StatSignature].Count)
	assert.NotEmpty(t, sc.ProcessingStats())

	stats.Reset()
	assert.Equal(t, uint64(0), stats.SigNum)
	assert.Equal(t, safecrypto.SchemeSigHelloWorld, stats.Scheme)
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, safecrypto.OK, safecrypto.KindOf(nil))
	e := safecrypto.NewError(safecrypto.QueueFull, "queue holds %d entries", 10)
	assert.Equal(t, safecrypto.QueueFull, safecrypto.KindOf(e))
	assert.Contains(t, e.Error(), "SC_QUEUE_FULL")
}
