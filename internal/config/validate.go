package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// Validate checks every section of the configuration.
func Validate(cfg *Config) error {
	if err := validateSRP(cfg); err != nil {
		return fmt.Errorf("srp validation failed: %w", err)
	}

	if err := validateKDF(cfg); err != nil {
		return fmt.Errorf("kdf validation failed: %w", err)
	}

	if err := validateLogging(cfg); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	return nil
}

func validateSRP(cfg *Config) error {
	if !srp.HashAlgorithm(cfg.SRP.HashAlgorithm).Valid() {
		names := make([]string, 0, len(srp.Algorithms()))
		for _, a := range srp.Algorithms() {
			names = append(names, string(a))
		}
		return fmt.Errorf("srp.hash_algorithm %q must be one of: %s", cfg.SRP.HashAlgorithm, strings.Join(names, ", "))
	}

	if !srp.PrimeGroup(cfg.SRP.PrimeGroup).Valid() {
		names := make([]string, 0, len(srp.Groups()))
		for _, g := range srp.Groups() {
			names = append(names, string(g))
		}
		return fmt.Errorf("srp.prime_group %q must be one of: %s", cfg.SRP.PrimeGroup, strings.Join(names, ", "))
	}

	return nil
}

func validateKDF(cfg *Config) error {
	validTypes := []string{KDFRFC5054, KDFPBKDF2}
	if !slices.Contains(validTypes, cfg.KDF.Type) {
		return fmt.Errorf("kdf.type must be one of: %s", strings.Join(validTypes, ", "))
	}

	if cfg.KDF.Iterations < 0 {
		return fmt.Errorf("kdf.iterations must not be negative")
	}

	if cfg.KDF.Type == KDFRFC5054 && cfg.KDF.Iterations != 0 {
		return fmt.Errorf("kdf.iterations only applies to kdf.type %s", KDFPBKDF2)
	}

	return nil
}

func validateLogging(cfg *Config) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, cfg.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %s", strings.Join(validLevels, ", "))
	}

	validFormats := []string{"json", "human"}
	if !slices.Contains(validFormats, cfg.Logging.Format) {
		return fmt.Errorf("logging.format must be one of: %s", strings.Join(validFormats, ", "))
	}

	return nil
}
