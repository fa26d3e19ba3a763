// Package configs manages user configuration for stegano.
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Built-in defaults (DefaultConfig)
//  2. The TOML file at $XDG_CONFIG_HOME/stegano/config.toml
//  3. STEGANO_* environment variables
//
// Command-line flags are applied on top by the cmd package.
//
// # Settings
//
//	[crypto]
//	iterations = 1000        # STEGANO_ITERATIONS
//
//	[reveal]
//	output = "secret.txt"    # STEGANO_OUTPUT
//
//	[audit]
//	enabled = true           # STEGANO_AUDIT
//
// Unknown keys in the file are rejected so a typo cannot silently fall back
// to a default. Validation collects every problem before returning.
//
// UserStegoSettings holds the config and data directories and is
// initialized at startup. Tests may replace it to point at a temporary
// directory.
package configs
