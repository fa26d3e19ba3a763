// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and creating cover images and text files.
package shared

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/stegano/cmd"
	"github.com/PolarWolf314/stegano/internal/configs"
	logger "github.com/PolarWolf314/stegano/internal/logging"
	"github.com/spf13/cobra"
)

// SetupTestEnvironment changes into tempDir and points user settings at
// tempUserDir, restoring both when the test ends.
func SetupTestEnvironment(t *testing.T, tempDir, tempUserDir, originalWd string, originalUserSettings *configs.UserSettings) {
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserStegoSettings = originalUserSettings
	})

	configs.UserStegoSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		UserDataPath:    filepath.Join(tempUserDir, "data"),
	}

	// Keep ambient configuration from leaking into tests.
	for _, env := range []string{"STEGANO_PASSWORD", "STEGANO_ITERATIONS", "STEGANO_OUTPUT", "STEGANO_AUDIT"} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	drain := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}
	go drain(stdoutReader)
	go drain(stderrReader)

	err := fn()

	// Close writers to signal EOF.
	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, err
}

// CreateTestCLI creates a complete CLI instance for testing that will run
// the given arguments.
func CreateTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	cmd.ResetGlobalState()
	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	rootCmd := &cobra.Command{
		Use:           "stegano",
		Short:         "Stegano - hide text inside images, optionally encrypted.",
		SilenceErrors: true,
	}
	cmd.Register(rootCmd)

	if verboseFlag {
		args = append(args, "--verbose")
	}
	if debugFlag {
		args = append(args, "--debug")
	}
	rootCmd.SetArgs(args)

	return rootCmd
}

// WriteCoverImage writes a w x h PNG with varied pixel values to path.
func WriteCoverImage(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 3), G: uint8(y * 11), B: uint8(x ^ y), A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode cover image: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write cover image: %v", err)
	}
}

// WriteTextFile writes text to path.
func WriteTextFile(t *testing.T, path, text string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		t.Fatalf("Failed to write text file: %v", err)
	}
}

// RunCLI executes the CLI with args in a fresh command tree and returns the
// captured output.
func RunCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	return CaptureOutput(func() error {
		return CreateTestCLI(args, false, false).Execute()
	})
}
