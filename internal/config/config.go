// Package config provides configuration loading and validation for the srp6a tool.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

const (
	configFileName = "config.yaml"

	envConfig        = "SRP6A_CONFIG"
	envHashAlgorithm = "SRP6A_HASH_ALGORITHM"
	envPrimeGroup    = "SRP6A_PRIME_GROUP"
	envKDFIterations = "SRP6A_KDF_ITERATIONS"
	envLogLevel      = "SRP6A_LOG_LEVEL"
)

// KDF types.
const (
	KDFRFC5054 = "rfc5054"
	KDFPBKDF2  = "pbkdf2"
)

// Config represents the srp6a configuration.
type Config struct {
	SRP     SRPSettings     `yaml:"srp"`
	KDF     KDFSettings     `yaml:"kdf"`
	Logging LoggingSettings `yaml:"logging"`
}

// SRPSettings selects the parameter set. Both peers must agree on it.
type SRPSettings struct {
	HashAlgorithm string `yaml:"hash_algorithm"`
	PrimeGroup    string `yaml:"prime_group"`
}

// KDFSettings selects how the client derives x from the password.
type KDFSettings struct {
	Type       string `yaml:"type"`
	Iterations int    `yaml:"iterations,omitempty"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SRP: SRPSettings{
			HashAlgorithm: string(srp.SHA256),
			PrimeGroup:    string(srp.Group2048),
		},
		KDF: KDFSettings{
			Type: KDFRFC5054,
		},
		Logging: LoggingSettings{
			Level:  "warn",
			Format: "human",
		},
	}
}

// Load builds the configuration from defaults, a YAML file and the environment.
// Precedence order (highest to lowest):
// 1. Environment variables
// 2. Config file
// 3. Defaults
//
// An empty path selects $SRP6A_CONFIG, then <UserConfigDir>/srp6a/config.yaml.
// A missing file is only an error when the path was given explicitly.
// Command-line flags are applied by the caller via ApplyFlags.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(envConfig)
		explicit = path != ""
	}
	if !explicit {
		dir, err := UserConfigDir()
		if err == nil {
			path = filepath.Join(dir, configFileName)
		}
	}

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile merges the non-zero values of a YAML file into c.
//
//nolint:gosec // G304: config path comes from the command line
func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.SRP.HashAlgorithm != "" {
		c.SRP.HashAlgorithm = file.SRP.HashAlgorithm
	}
	if file.SRP.PrimeGroup != "" {
		c.SRP.PrimeGroup = file.SRP.PrimeGroup
	}
	if file.KDF.Type != "" {
		c.KDF.Type = file.KDF.Type
	}
	if file.KDF.Iterations != 0 {
		c.KDF.Iterations = file.KDF.Iterations
	}
	if file.Logging.Level != "" {
		c.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		c.Logging.Format = file.Logging.Format
	}

	return nil
}

func (c *Config) loadFromEnv() error {
	if v := os.Getenv(envHashAlgorithm); v != "" {
		c.SRP.HashAlgorithm = v
	}
	if v := os.Getenv(envPrimeGroup); v != "" {
		c.SRP.PrimeGroup = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(envKDFIterations); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envKDFIterations, v, err)
		}
		c.KDF.Iterations = n
	}
	return nil
}

// ApplyFlags applies command-line flag values. Empty values are ignored.
func (c *Config) ApplyFlags(hashAlgorithm, primeGroup, kdfType, logLevel string) error {
	if hashAlgorithm != "" {
		c.SRP.HashAlgorithm = hashAlgorithm
	}
	if primeGroup != "" {
		c.SRP.PrimeGroup = primeGroup
	}
	if kdfType != "" {
		c.KDF.Type = kdfType
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	return Validate(c)
}

// Params builds the parameter set selected by the configuration.
func (c *Config) Params(ctx context.Context, provider srp.Provider) (*srp.Params, error) {
	return srp.NewParams(ctx, provider, srp.HashAlgorithm(c.SRP.HashAlgorithm), srp.PrimeGroup(c.SRP.PrimeGroup))
}

// Deriver returns the private key derivation selected by the configuration.
func (c *Config) Deriver(params *srp.Params) srp.PrivateKeyDeriver {
	if c.KDF.Type == KDFPBKDF2 {
		return srp.PBKDF2Deriver{Params: params, Iterations: c.KDF.Iterations}
	}
	return srp.RFC5054Deriver{Params: params}
}
