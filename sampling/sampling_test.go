package sampling_test

import (
	"testing"

	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/sampling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrng(t *testing.T) *csprng.Ctx {
	t.Helper()
	seed := make([]byte, 32)
	seed[0] = 0xA5
	prng, err := csprng.NewSeeded(seed)
	require.NoError(t, err)
	return prng
}

func TestCDFSampleRange(t *testing.T) {
	// A 12-bit table: every draw must stay within +/- 2^12.
	s, err := sampling.New(sampling.CDFGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, 512, sampling.DisableBootstrap, testPrng(t), 40.0, 100.0)
	require.NoError(t, err)

	for i := 0; i < 65536; i++ {
		v := s.Sample()
		require.GreaterOrEqual(t, v, int32(-4096))
		require.LessOrEqual(t, v, int32(4096))
	}
}

func TestCDFSampleDistribution(t *testing.T) {
	s, err := sampling.New(sampling.CDFGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, 512, sampling.DisableBootstrap, testPrng(t), 13.2, 10.0)
	require.NoError(t, err)

	var sum, sum2 float64
	n := 65536
	for i := 0; i < n; i++ {
		v := float64(s.Sample())
		sum += v
		sum2 += v * v
	}

	mean := sum / float64(n)
	variance := sum2/float64(n) - mean*mean

	assert.InDelta(t, 0.0, mean, 0.5)
	assert.InDelta(t, 100.0, variance, 10.0)
}

func TestCDFPrecisions(t *testing.T) {
	for _, prec := range []sampling.Precision{sampling.Sampling32Bit, sampling.Sampling64Bit, sampling.Sampling128Bit} {
		s, err := sampling.New(sampling.CDFGaussianSampling, prec,
			sampling.NormalSamples, 512, sampling.DisableBootstrap, testPrng(t), 13.2, 4.0)
		require.NoError(t, err, "precision %d", prec)

		seen := false
		for i := 0; i < 4096; i++ {
			v := s.Sample()
			require.GreaterOrEqual(t, v, int32(-64))
			require.LessOrEqual(t, v, int32(64))
			if v != 0 {
				seen = true
			}
		}
		assert.True(t, seen, "precision %d produced only zeros", prec)
	}
}

func TestKnuthYaoBound(t *testing.T) {
	tail, sigma := 13.2, 3.33
	s, err := sampling.New(sampling.KnuthYaoGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, 512, sampling.DisableBootstrap, testPrng(t), tail, sigma)
	require.NoError(t, err)

	bound := int32(44) // ceil(tail * sigma)
	for i := 0; i < 16384; i++ {
		v := s.Sample()
		require.Less(t, v, bound)
		require.Greater(t, v, -bound)
	}
}

func TestKnuthYaoRejectsBlinding(t *testing.T) {
	_, err := sampling.New(sampling.KnuthYaoGaussianSampling, sampling.Sampling64Bit,
		sampling.BlindedSamples, 512, sampling.DisableBootstrap, testPrng(t), 13.2, 3.33)
	assert.Error(t, err)
}

func TestBernoulliSampler(t *testing.T) {
	s, err := sampling.New(sampling.BernoulliGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, 512, sampling.DisableBootstrap, testPrng(t), 13.2, 4.0)
	require.NoError(t, err)

	neg, pos := false, false
	for i := 0; i < 4096; i++ {
		v := s.Sample()
		require.GreaterOrEqual(t, v, int32(-53))
		require.LessOrEqual(t, v, int32(53))
		if v < 0 {
			neg = true
		}
		if v > 0 {
			pos = true
		}
	}
	assert.True(t, neg)
	assert.True(t, pos)
}

func TestZigguratSampler(t *testing.T) {
	s, err := sampling.New(sampling.ZigguratGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, 512, sampling.DisableBootstrap, testPrng(t), 13.2, 4.0)
	require.NoError(t, err)

	var sum2 float64
	n := 16384
	for i := 0; i < n; i++ {
		v := s.Sample()
		require.LessOrEqual(t, v, int32(53))
		require.GreaterOrEqual(t, v, int32(-53))
		sum2 += float64(v) * float64(v)
	}
	assert.InDelta(t, 16.0, sum2/float64(n), 4.0)
}

func TestHuffmanAndBacSamplers(t *testing.T) {
	for _, algo := range []sampling.Algorithm{sampling.HuffmanGaussianSampling, sampling.BacGaussianSampling} {
		s, err := sampling.New(algo, sampling.Sampling64Bit,
			sampling.NormalSamples, 512, sampling.DisableBootstrap, testPrng(t), 13.2, 4.0)
		require.NoError(t, err, "%s", algo)

		nonzero := false
		for i := 0; i < 4096; i++ {
			v := s.Sample()
			require.GreaterOrEqual(t, v, int32(-64), "%s", algo)
			require.LessOrEqual(t, v, int32(64), "%s", algo)
			if v != 0 {
				nonzero = true
			}
		}
		assert.True(t, nonzero, "%s produced only zeros", algo)
	}
}

func TestBlindedVectorVariance(t *testing.T) {
	s, err := sampling.New(sampling.CDFGaussianSampling, sampling.Sampling64Bit,
		sampling.BlindedSamples, 512, sampling.DisableBootstrap, testPrng(t), 13.2, 10.0)
	require.NoError(t, err)

	v := make([]int32, 4096)
	var sum2 float64
	rounds := 16
	for r := 0; r < rounds; r++ {
		s.Vector32(v, 0)
		for _, x := range v {
			sum2 += float64(x) * float64(x)
		}
	}

	// Two half-variance draws summed restore the target variance.
	variance := sum2 / float64(rounds*len(v))
	assert.InDelta(t, 100.0, variance, 15.0)
}

func TestVectorCentre(t *testing.T) {
	s, err := sampling.New(sampling.CDFGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, 16, sampling.DisableBootstrap, testPrng(t), 13.2, 2.0)
	require.NoError(t, err)

	v := make([]int32, 4096)
	s.Vector32(v, 100)

	var sum float64
	for _, x := range v {
		sum += float64(x)
	}
	assert.InDelta(t, 100.0, sum/float64(len(v)), 1.0)
}

func TestMWBootstrap(t *testing.T) {
	s, err := sampling.New(sampling.CDFGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, 512, sampling.MWBootstrap, testPrng(t), 13.2, 250.0)
	require.NoError(t, err)

	var sum, sum2 float64
	n := 8192
	for i := 0; i < n; i++ {
		v := float64(s.BootstrapSample(250.0, 17.5))
		sum += v
		sum2 += v * v
	}

	mean := sum / float64(n)
	assert.InDelta(t, 17.5, mean, 10.0)
	assert.InDelta(t, 250.0*250.0, sum2/float64(n)-mean*mean, 6000.0)
}

func TestVector16(t *testing.T) {
	s, err := sampling.New(sampling.CDFGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, 16, sampling.DisableBootstrap, testPrng(t), 13.2, 2.0)
	require.NoError(t, err)

	v := make([]int16, 256)
	s.Vector16(v, 0)

	nonzero := false
	for _, x := range v {
		require.Less(t, x, int16(27))
		require.Greater(t, x, int16(-27))
		if x != 0 {
			nonzero = true
		}
	}
	assert.True(t, nonzero)
}
