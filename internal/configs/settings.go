package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
}

var UserStegoSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserStegoSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "stegano"),
		UserDataPath:    filepath.Join(dataDir, "stegano"),
	}
}

// ConfigPath returns the path to the user's config.toml.
func ConfigPath() string {
	return filepath.Join(UserStegoSettings.UserConfigsPath, "config.toml")
}

// AuditLogPath returns the path to the audit log.
func AuditLogPath() string {
	return filepath.Join(UserStegoSettings.UserDataPath, "audit.jsonl")
}
