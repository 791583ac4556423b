// scbench exercises the library's samplers and entropy coders from the
// command line: it constructs the configured primitives, runs draw or
// round-trip loops, and reports throughput and distribution statistics.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/safecrypto/libsafecrypto-go/config"
	"github.com/safecrypto/libsafecrypto-go/csprng"
	"github.com/safecrypto/libsafecrypto-go/entropy"
	"github.com/safecrypto/libsafecrypto-go/packer"
	"github.com/safecrypto/libsafecrypto-go/sampling"
)

var (
	flagConfig    string
	flagAlgorithm string
	flagPrecision int
	flagSigma     float64
	flagTail      float64
	flagBlinding  bool
	flagCount     int
)

func samplerAlgorithm(name string) (sampling.Algorithm, error) {
	switch name {
	case "cdf":
		return sampling.CDFGaussianSampling, nil
	case "knuth_yao":
		return sampling.KnuthYaoGaussianSampling, nil
	case "ziggurat":
		return sampling.ZigguratGaussianSampling, nil
	case "bernoulli":
		return sampling.BernoulliGaussianSampling, nil
	case "huffman":
		return sampling.HuffmanGaussianSampling, nil
	case "bac":
		return sampling.BacGaussianSampling, nil
	default:
		return 0, fmt.Errorf("unknown sampler algorithm %q", name)
	}
}

func loadDefaults(cmd *cobra.Command) error {
	cfg, err := config.LoadFrom(flagConfig)
	if err != nil {
		return err
	}

	// Flags the user did not set fall back to the configuration file
	if !cmd.Flags().Changed("algorithm") {
		flagAlgorithm = cfg.Sampler.Algorithm
	}
	if !cmd.Flags().Changed("precision") {
		flagPrecision = cfg.Sampler.Precision
	}
	if !cmd.Flags().Changed("sigma") {
		flagSigma = cfg.Sampler.Sigma
	}
	if !cmd.Flags().Changed("tail") {
		flagTail = cfg.Sampler.Tail
	}
	if !cmd.Flags().Changed("blinding") {
		flagBlinding = cfg.Sampler.Blinding
	}
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	if err := loadDefaults(cmd); err != nil {
		return err
	}

	algo, err := samplerAlgorithm(flagAlgorithm)
	if err != nil {
		return err
	}

	prng, err := csprng.New()
	if err != nil {
		return err
	}

	blinding := sampling.NormalSamples
	if flagBlinding {
		blinding = sampling.BlindedSamples
	}

	s, err := sampling.New(algo, sampling.Precision(flagPrecision), blinding,
		512, sampling.DisableBootstrap, prng, flagTail, flagSigma)
	if err != nil {
		return err
	}

	var sum, sum2 float64
	var min, max int32
	start := time.Now()
	for i := 0; i < flagCount; i++ {
		v := s.Sample()
		sum += float64(v)
		sum2 += float64(v) * float64(v)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	elapsed := time.Since(start)

	mean := sum / float64(flagCount)
	variance := sum2/float64(flagCount) - mean*mean

	fmt.Printf("algorithm:  %s (%d-bit)\n", flagAlgorithm, flagPrecision)
	fmt.Printf("target:     sigma=%.3f tail=%.2f blinding=%v\n", flagSigma, flagTail, flagBlinding)
	fmt.Printf("samples:    %d in %v (%.0f/s)\n", flagCount, elapsed,
		float64(flagCount)/elapsed.Seconds())
	fmt.Printf("mean:       %+.4f\n", mean)
	fmt.Printf("std dev:    %.4f\n", math.Sqrt(variance))
	fmt.Printf("range:      [%d, %d]\n", min, max)
	return nil
}

func runCoder(cmd *cobra.Command, args []string) error {
	if err := loadDefaults(cmd); err != nil {
		return err
	}

	prng, err := csprng.New()
	if err != nil {
		return err
	}

	s, err := sampling.New(sampling.CDFGaussianSampling, sampling.Sampling64Bit,
		sampling.NormalSamples, 512, sampling.DisableBootstrap, prng, flagTail, flagSigma)
	if err != nil {
		return err
	}

	n := 512
	v := make([]int32, n)
	s.Vector32(v, 0)

	bits := uint(11)
	coders := []struct {
		name  string
		coder *entropy.Coder
	}{
		{"raw", &entropy.Coder{Type: entropy.None}},
		{"huffman", &entropy.Coder{Type: entropy.HuffmanStatic}},
	}

	dist := make([]uint64, 1<<bits)
	entropy.GaussFreqBac64(dist, flagSigma, 1<<bits)
	coders = append(coders, struct {
		name  string
		coder *entropy.Coder
	}{"bac", &entropy.Coder{Type: entropy.BAC, Dist: [][]uint64{dist}}})

	fmt.Printf("coding %d coefficients at %d bits, sigma=%.2f\n", n, bits, flagSigma)
	for _, c := range coders {
		pk, err := packer.New(uint(n)*64, nil)
		if err != nil {
			return err
		}

		var coded uint
		start := time.Now()
		if err := c.coder.PolyEncode32(pk, v, bits, entropy.Signed, 0, &coded); err != nil {
			return fmt.Errorf("%s encode: %w", c.name, err)
		}
		buf, err := pk.GetBuffer()
		if err != nil {
			return err
		}

		rd, err := packer.NewReader(uint(n)*64, buf)
		if err != nil {
			return err
		}
		out := make([]int32, n)
		if err := c.coder.PolyDecode32(rd, out, bits, entropy.Signed, 0); err != nil {
			return fmt.Errorf("%s decode: %w", c.name, err)
		}
		elapsed := time.Since(start)

		for i := range v {
			if v[i] != out[i] {
				return fmt.Errorf("%s round trip mismatch at %d", c.name, i)
			}
		}

		ratio := float64(coded) / float64(uint(n)*bits)
		fmt.Printf("  %-8s %5d bytes  ratio %.3f  %v\n", c.name, len(buf), ratio, elapsed)
	}
	return nil
}

func main() {
	root := &cobra.Command{
		Use:   "scbench",
		Short: "Benchmark the lattice library's samplers and entropy coders",
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", config.GetConfigPath(), "configuration file")
	root.PersistentFlags().StringVar(&flagAlgorithm, "algorithm", "cdf", "sampler algorithm")
	root.PersistentFlags().IntVar(&flagPrecision, "precision", 64, "sampler precision in bits")
	root.PersistentFlags().Float64Var(&flagSigma, "sigma", 4.0, "target standard deviation")
	root.PersistentFlags().Float64Var(&flagTail, "tail", 13.2, "tail cut in standard deviations")
	root.PersistentFlags().BoolVar(&flagBlinding, "blinding", false, "enable blinded sampling")
	root.PersistentFlags().IntVar(&flagCount, "count", 1000000, "number of samples to draw")

	sample := &cobra.Command{
		Use:   "sample",
		Short: "Draw from a configured Gaussian sampler and report statistics",
		RunE:  runSample,
	}
	coder := &cobra.Command{
		Use:   "coder",
		Short: "Round-trip a sampled polynomial through each entropy coder",
		RunE:  runCoder,
	}
	root.AddCommand(sample, coder)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
