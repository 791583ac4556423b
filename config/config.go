package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the library configuration
type Config struct {
	// Multi-precision arithmetic settings
	Arith struct {
		MPFPrecision uint `toml:"mpf_precision"`
	} `toml:"arith"`

	// Gaussian sampler defaults
	Sampler struct {
		Algorithm   string  `toml:"algorithm"` // cdf, knuth_yao, ziggurat, bernoulli, huffman, bac
		Precision   int     `toml:"precision"` // 32, 64, 128
		Tail        float64 `toml:"tail"`
		Sigma       float64 `toml:"sigma"`
		Blinding    bool    `toml:"blinding"`
		MaxLUTBytes uint    `toml:"max_lut_bytes"`
	} `toml:"sampler"`

	// Entropy coding defaults per coded component
	Entropy struct {
		PubKey     string `toml:"pub_key"` // none, huffman, bac
		PrivKey    string `toml:"priv_key"`
		UserKey    string `toml:"user_key"`
		Signature  string `toml:"signature"`
		Encryption string `toml:"encryption"`
	} `toml:"entropy"`

	// Pipe capacities in elements
	Pipe struct {
		MinCap int `toml:"min_cap"`
		MaxCap int `toml:"max_cap"` // 0 = unbounded
	} `toml:"pipe"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Arithmetic defaults
	cfg.Arith.MPFPrecision = 128

	// Sampler defaults
	cfg.Sampler.Algorithm = "cdf"
	cfg.Sampler.Precision = 64
	cfg.Sampler.Tail = 13.2
	cfg.Sampler.Sigma = 4.0
	cfg.Sampler.Blinding = false
	cfg.Sampler.MaxLUTBytes = 16384

	// Entropy defaults
	cfg.Entropy.PubKey = "none"
	cfg.Entropy.PrivKey = "none"
	cfg.Entropy.UserKey = "none"
	cfg.Entropy.Signature = "huffman"
	cfg.Entropy.Encryption = "none"

	// Pipe defaults
	cfg.Pipe.MinCap = 32
	cfg.Pipe.MaxCap = 0

	return cfg
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\safecrypto\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "safecrypto")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/safecrypto/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "safecrypto")

	default:
		// Unknown platform: use current directory
		return "config.toml"
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0750); err != nil {
		// If we can't create the directory, fall back to current directory
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read and parse config file
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Validate checks configuration values for consistency
func (c *Config) Validate() error {
	switch c.Sampler.Algorithm {
	case "cdf", "knuth_yao", "ziggurat", "bernoulli", "huffman", "bac":
	default:
		return fmt.Errorf("unknown sampler algorithm %q", c.Sampler.Algorithm)
	}

	switch c.Sampler.Precision {
	case 32, 64, 128:
	default:
		return fmt.Errorf("sampler precision must be 32, 64 or 128, got %d", c.Sampler.Precision)
	}

	if c.Sampler.Tail <= 0 || c.Sampler.Sigma <= 0 {
		return fmt.Errorf("sampler tail and sigma must be positive")
	}

	if c.Arith.MPFPrecision < 2 {
		return fmt.Errorf("mpf precision must be at least 2 bits")
	}

	for _, e := range []string{c.Entropy.PubKey, c.Entropy.PrivKey, c.Entropy.UserKey,
		c.Entropy.Signature, c.Entropy.Encryption} {
		switch e {
		case "none", "huffman", "bac":
		default:
			return fmt.Errorf("unknown entropy coder %q", e)
		}
	}

	return nil
}
