package cmd

import (
	"os"

	"github.com/PolarWolf314/stegano/internal/utils"
)

const passwordEnvVar = "STEGANO_PASSWORD"

// resolvePassword returns the password for a hide or unhide run. The
// --password flag wins, then an interactive prompt when prompt is set, then
// STEGANO_PASSWORD. A nil result means no encryption.
func resolvePassword(flagValue string, prompt, confirm bool) ([]byte, error) {
	if flagValue != "" {
		Logger.Debugf("Using password from --password flag")
		return []byte(flagValue), nil
	}

	if prompt {
		Logger.Debugf("Prompting for password (confirm=%t)", confirm)
		if confirm {
			return utils.ReadPassphraseConfirm()
		}
		return utils.ReadPassphrase("Enter password: ")
	}

	if env := os.Getenv(passwordEnvVar); env != "" {
		Logger.Debugf("Using password from %s", passwordEnvVar)
		return []byte(env), nil
	}

	return nil, nil
}

// iterationsOrDefault returns the flag value when set, else the configured count.
func iterationsOrDefault(flagValue int) int {
	if flagValue != 0 {
		return flagValue
	}
	if config != nil {
		return config.Crypto.Iterations
	}
	return 0
}

func auditEnabled() bool {
	return config == nil || config.Audit.Enabled
}
