package configs

import (
	"os"
	"path/filepath"
	"testing"

	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempSettings points UserStegoSettings at a temporary directory.
func useTempSettings(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	original := UserStegoSettings
	UserStegoSettings = &UserSettings{
		UserConfigsPath: filepath.Join(dir, "config"),
		UserDataPath:    filepath.Join(dir, "data"),
	}
	t.Cleanup(func() { UserStegoSettings = original })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STEGANO_ITERATIONS", "STEGANO_OUTPUT", "STEGANO_AUDIT"} {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(ConfigPath()), 0700))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte(content), 0600))
}

func TestLoadConfig_Defaults(t *testing.T) {
	useTempSettings(t)
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 1000, cfg.Crypto.Iterations)
	assert.Equal(t, "secret.txt", cfg.Reveal.Output)
	assert.True(t, cfg.Audit.Enabled)
}

func TestLoadConfig_File(t *testing.T) {
	useTempSettings(t)
	clearEnv(t)
	writeConfig(t, `
[crypto]
iterations = 5000

[reveal]
output = "recovered.txt"

[audit]
enabled = false
`)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Crypto.Iterations)
	assert.Equal(t, "recovered.txt", cfg.Reveal.Output)
	assert.False(t, cfg.Audit.Enabled)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	useTempSettings(t)
	clearEnv(t)
	writeConfig(t, "[reveal]\noutput = \"out.txt\"\n")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultIterations, cfg.Crypto.Iterations)
	assert.Equal(t, "out.txt", cfg.Reveal.Output)
	assert.True(t, cfg.Audit.Enabled)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	useTempSettings(t)
	clearEnv(t)
	writeConfig(t, "[crypto]\niterations = 5000\n")
	t.Setenv("STEGANO_ITERATIONS", "20000")
	t.Setenv("STEGANO_AUDIT", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 20000, cfg.Crypto.Iterations)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, DefaultRevealOutput, cfg.Reveal.Output)
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	useTempSettings(t)
	clearEnv(t)
	t.Setenv("STEGANO_ITERATIONS", "many")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, serrors.ErrInvalidConfig)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	useTempSettings(t)
	clearEnv(t)
	writeConfig(t, "[crypto]\niteratons = 5000\n")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, serrors.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "crypto.iteratons")
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	useTempSettings(t)
	clearEnv(t)
	writeConfig(t, "[crypto\n")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, serrors.ErrInvalidConfig)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{Crypto: CryptoConfig{Iterations: 0}, Reveal: RevealConfig{Output: ""}}

	err := cfg.Validate()
	require.ErrorIs(t, err, serrors.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "crypto.iterations")
	assert.Contains(t, err.Error(), "reveal.output")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	useTempSettings(t)
	clearEnv(t)

	cfg := DefaultConfig()
	cfg.Crypto.Iterations = 4242
	cfg.Reveal.Output = "plain.txt"
	require.NoError(t, SaveConfig(cfg))

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfig_RejectsInvalid(t *testing.T) {
	useTempSettings(t)

	err := SaveConfig(&Config{})
	assert.ErrorIs(t, err, serrors.ErrInvalidConfig)

	_, statErr := os.Stat(ConfigPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestPaths(t *testing.T) {
	dir := useTempSettings(t)

	assert.Equal(t, filepath.Join(dir, "config", "config.toml"), ConfigPath())
	assert.Equal(t, filepath.Join(dir, "data", "audit.jsonl"), AuditLogPath())
}
