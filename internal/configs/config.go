package configs

import (
	"errors"
	"fmt"
	"os"

	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"github.com/hashicorp/go-multierror"
)

// DefaultIterations mirrors the envelope codec default so config does not
// import the crypto package.
const (
	DefaultIterations   = 1000
	DefaultRevealOutput = "secret.txt"
)

type Config struct {
	Crypto CryptoConfig `toml:"crypto"`
	Reveal RevealConfig `toml:"reveal"`
	Audit  AuditConfig  `toml:"audit"`
}

type CryptoConfig struct {
	Iterations int `toml:"iterations" env:"STEGANO_ITERATIONS"`
}

type RevealConfig struct {
	Output string `toml:"output" env:"STEGANO_OUTPUT"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled" env:"STEGANO_AUDIT"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides exist.
func DefaultConfig() *Config {
	return &Config{
		Crypto: CryptoConfig{Iterations: DefaultIterations},
		Reveal: RevealConfig{Output: DefaultRevealOutput},
		Audit:  AuditConfig{Enabled: true},
	}
}

// LoadConfig builds the effective configuration: defaults, then the user's
// config.toml if present, then STEGANO_* environment variables.
//
// Returns ErrInvalidConfig if the file cannot be parsed or the result fails
// validation.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	configPath := ConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		if err := LoadTOML(configPath, config); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", serrors.ErrInvalidConfig, configPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", configPath, err)
	}

	if err := parseEnv(config); err != nil {
		return nil, fmt.Errorf("%w: %v", serrors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes config to the user's config.toml.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Crypto.Iterations < 1 {
		result = multierror.Append(result, fmt.Errorf("crypto.iterations must be at least 1, got %d", c.Crypto.Iterations))
	}

	if c.Reveal.Output == "" {
		result = multierror.Append(result, fmt.Errorf("reveal.output cannot be empty"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %v", serrors.ErrInvalidConfig, err)
	}
	return nil
}
