package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays STEGANO_* environment variables onto cfg. Variables that
// are unset leave the existing field values untouched.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
