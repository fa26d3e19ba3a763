package utils

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/stegano/internal/envelope"
	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"golang.org/x/term"
)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal: %w", serrors.ErrPasswordRequired)
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadPassphraseConfirm reads a passphrase twice and ensures both entries match.
func ReadPassphraseConfirm() ([]byte, error) {
	first, err := ReadPassphrase("Enter password: ")
	if err != nil {
		return nil, err
	}

	second, err := ReadPassphrase("Confirm password: ")
	if err != nil {
		envelope.ClearBytes(first)
		return nil, err
	}
	defer envelope.ClearBytes(second)

	if !envelope.ConstantTimeCompare(first, second) {
		envelope.ClearBytes(first)
		return nil, fmt.Errorf("passwords do not match: %w", serrors.ErrPasswordRequired)
	}

	return first, nil
}
