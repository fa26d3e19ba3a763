package unhide_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/stegano/internal/configs"
	"github.com/PolarWolf314/stegano/test/integration/shared"
)

// TestUnhideIntegration contains integration tests for the `stegano unhide` command.
func TestUnhideIntegration(t *testing.T) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	originalUserSettings := configs.UserStegoSettings

	t.Run("UnhideWritesDefaultOutput", func(t *testing.T) {
		testUnhideWritesDefaultOutput(t, originalWd, originalUserSettings)
	})

	t.Run("UnhideToStdout", func(t *testing.T) {
		testUnhideToStdout(t, originalWd, originalUserSettings)
	})

	t.Run("UnhideWithPassword", func(t *testing.T) {
		testUnhideWithPassword(t, originalWd, originalUserSettings)
	})

	t.Run("UnhideWrongPassword", func(t *testing.T) {
		testUnhideWrongPassword(t, originalWd, originalUserSettings)
	})

	t.Run("UnhideOutputFromEnv", func(t *testing.T) {
		testUnhideOutputFromEnv(t, originalWd, originalUserSettings)
	})

	t.Run("UnhideCleanImage", func(t *testing.T) {
		testUnhideCleanImage(t, originalWd, originalUserSettings)
	})
}

// hideFixture runs hide in a fresh environment and returns the temp directory.
func hideFixture(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings, text string, extra ...string) string {
	tempDir := t.TempDir()
	tempUserDir := t.TempDir()
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)

	shared.WriteCoverImage(t, filepath.Join(tempDir, "cover.png"), 48, 48)
	shared.WriteTextFile(t, filepath.Join(tempDir, "message.txt"), text)

	args := append([]string{"hide", "-i", "cover.png", "-o", "out.png", "-t", "message.txt"}, extra...)
	output, err := shared.RunCLI(t, args...)
	if err != nil {
		t.Fatalf("Failed to hide fixture text: %v\nOutput: %s", err, output)
	}
	return tempDir
}

// testUnhideWritesDefaultOutput writes to secret.txt when -o is not given.
func testUnhideWritesDefaultOutput(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir := hideFixture(t, originalWd, originalUserSettings, "default destination")

	output, err := shared.RunCLI(t, "unhide", "-i", "out.png")
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\nOutput: %s", err, output)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "secret.txt"))
	if err != nil {
		t.Fatalf("Expected secret.txt to be written: %v", err)
	}
	if string(data) != "default destination" {
		t.Errorf("Expected recovered text %q, got %q", "default destination", string(data))
	}
	if !strings.Contains(output, "secret.txt") {
		t.Errorf("Expected output path in message: %s", output)
	}
}

// testUnhideToStdout prints the text with -o - and writes no file.
func testUnhideToStdout(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir := hideFixture(t, originalWd, originalUserSettings, "print me please")

	output, err := shared.RunCLI(t, "unhide", "-i", "out.png", "-o", "-")
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "print me please") {
		t.Errorf("Expected recovered text in output: %s", output)
	}
	if _, statErr := os.Stat(filepath.Join(tempDir, "secret.txt")); !os.IsNotExist(statErr) {
		t.Errorf("No file should be written when printing to stdout")
	}
}

// testUnhideWithPassword decrypts text hidden with the same password.
func testUnhideWithPassword(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir := hideFixture(t, originalWd, originalUserSettings, "hello", "-p", "secret123")

	output, err := shared.RunCLI(t, "unhide", "-i", "out.png", "-o", "recovered.txt", "-p", "secret123")
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\nOutput: %s", err, output)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "recovered.txt"))
	if err != nil {
		t.Fatalf("Expected recovered.txt to be written: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Expected %q, got %q", "hello", string(data))
	}
	if !strings.Contains(output, "decrypted") {
		t.Errorf("Expected decrypted note in output: %s", output)
	}
}

// testUnhideWrongPassword reports a decryption failure and writes nothing.
func testUnhideWrongPassword(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir := hideFixture(t, originalWd, originalUserSettings, "hello", "-p", "secret123")

	output, err := shared.RunCLI(t, "unhide", "-i", "out.png", "-p", "not-the-password")
	if err == nil {
		t.Errorf("Expected command to fail with a wrong password")
	}
	if !strings.Contains(output, "✗") {
		t.Errorf("Expected failure message in output: %s", output)
	}
	if _, statErr := os.Stat(filepath.Join(tempDir, "secret.txt")); !os.IsNotExist(statErr) {
		t.Errorf("No file should be written when decryption fails")
	}
}

// testUnhideOutputFromEnv honours STEGANO_OUTPUT as the default destination.
func testUnhideOutputFromEnv(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir := hideFixture(t, originalWd, originalUserSettings, "env output")
	t.Setenv("STEGANO_OUTPUT", "from-env.txt")

	output, err := shared.RunCLI(t, "unhide", "-i", "out.png")
	if err != nil {
		t.Fatalf("Command failed unexpectedly: %v\nOutput: %s", err, output)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "from-env.txt")); err != nil {
		t.Errorf("Expected from-env.txt to be written: %v", err)
	}
}

// testUnhideCleanImage reports that there is nothing hidden.
func testUnhideCleanImage(t *testing.T, originalWd string, originalUserSettings *configs.UserSettings) {
	tempDir := t.TempDir()
	tempUserDir := t.TempDir()
	shared.SetupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	shared.WriteCoverImage(t, filepath.Join(tempDir, "clean.png"), 16, 16)

	output, err := shared.RunCLI(t, "unhide", "-i", "clean.png")
	if err == nil {
		t.Errorf("Expected command to fail for an image without hidden text")
	}
	if !strings.Contains(output, "No hidden text found") {
		t.Errorf("Expected 'No hidden text found' message in output: %s", output)
	}
}
