package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	serrors "github.com/PolarWolf314/stegano/internal/errors"
)

// RequireFile returns ErrFileNotFound if path does not exist or is a directory.
func RequireFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, serrors.ErrFileNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, serrors.ErrFileNotFound)
	}
	return nil
}

// WriteTextFile writes text to path, creating parent directories as needed.
// Recovered text may be sensitive, so the file is readable only by the owner.
func WriteTextFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		return fmt.Errorf("failed to write to %s: %w", path, err)
	}
	return nil
}
