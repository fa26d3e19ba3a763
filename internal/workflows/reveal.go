package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/stegano/internal/audit"
	"github.com/PolarWolf314/stegano/internal/envelope"
	"github.com/PolarWolf314/stegano/internal/stego"
	"github.com/PolarWolf314/stegano/internal/utils"
)

// StdoutPath as a reveal destination leaves writing to the caller.
const StdoutPath = "-"

// RevealOptions configures the reveal workflow.
type RevealOptions struct {
	// InputImage is the image carrying hidden text.
	InputImage string

	// OutputPath is where the recovered text is written. Empty or StdoutPath
	// writes nothing; the caller displays RevealResult.Text instead.
	OutputPath string

	// Password decrypts the hidden envelope when non-empty.
	Password []byte

	// Iterations is the PBKDF2 iteration count. Zero uses the codec default.
	Iterations int

	// Audit records the operation in the audit log.
	Audit bool
}

// RevealResult contains the outcome of a reveal operation.
type RevealResult struct {
	// Text is the recovered plaintext.
	Text string

	// OutputPath is the file written, empty if nothing was written.
	OutputPath string

	// Decrypted reports whether the hidden text was an envelope opened with the password.
	Decrypted bool

	// PayloadBytes is the number of bytes extracted from the image.
	PayloadBytes int

	// Envelope describes the envelope structure when Decrypted is true.
	Envelope *envelope.EnvelopeInfo
}

// Reveal extracts hidden text from opts.InputImage, decrypts it when a
// password is given, and writes it to opts.OutputPath.
//
// Returns ErrFileNotFound if the image is missing.
// Returns ErrNoPayload if the image carries no hidden text.
// Returns ErrMalformedEnvelope if a password is given but the hidden text is not an envelope.
// Returns ErrDecryptionFailed for a wrong password or corrupted data.
func Reveal(ctx context.Context, opts RevealOptions) (*RevealResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := reveal(opts)
	if opts.Audit {
		entry := audit.New("reveal")
		entry.Input = opts.InputImage
		entry.Encrypted = len(opts.Password) > 0
		if err != nil {
			entry.Outcome = audit.OutcomeError
			entry.Error = err.Error()
		} else {
			entry.Output = result.OutputPath
			entry.Bytes = result.PayloadBytes
		}
		audit.Log(entry)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func reveal(opts RevealOptions) (*RevealResult, error) {
	if err := utils.RequireFile(opts.InputImage); err != nil {
		return nil, err
	}

	hidden, err := stego.Extract(opts.InputImage)
	if err != nil {
		return nil, err
	}

	result := &RevealResult{
		Text:         hidden,
		PayloadBytes: len(hidden),
	}

	if len(opts.Password) > 0 {
		info, err := envelope.Inspect(hidden)
		if err != nil {
			return nil, fmt.Errorf("reading hidden envelope: %w", err)
		}

		text, err := newCodec(opts.Iterations).Decrypt(hidden, opts.Password)
		if err != nil {
			return nil, fmt.Errorf("decrypting hidden text: %w", err)
		}
		result.Text = text
		result.Decrypted = true
		result.Envelope = info
	}

	if opts.OutputPath != "" && opts.OutputPath != StdoutPath {
		if err := utils.WriteTextFile(opts.OutputPath, result.Text); err != nil {
			return nil, err
		}
		result.OutputPath = opts.OutputPath
	}

	return result, nil
}
