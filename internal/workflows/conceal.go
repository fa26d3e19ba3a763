package workflows

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/PolarWolf314/stegano/internal/audit"
	"github.com/PolarWolf314/stegano/internal/envelope"
	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"github.com/PolarWolf314/stegano/internal/stego"
	"github.com/PolarWolf314/stegano/internal/utils"
)

// StdinPath as a text file name reads the text from standard input.
const StdinPath = "-"

// ConcealOptions configures the conceal workflow.
type ConcealOptions struct {
	// InputImage is the cover image. It is never modified.
	InputImage string

	// OutputImage is where the image carrying the text is written.
	OutputImage string

	// TextFile is the file holding the text to hide, or StdinPath.
	TextFile string

	// Password encrypts the text before embedding when non-empty.
	Password []byte

	// Iterations is the PBKDF2 iteration count. Zero uses the codec default.
	Iterations int

	// DryRun computes capacity without writing the output image.
	DryRun bool

	// Audit records the operation in the audit log.
	Audit bool
}

// ConcealResult contains the outcome of a conceal operation.
type ConcealResult struct {
	InputImage  string
	OutputImage string

	// Encrypted reports whether the text was wrapped in an envelope.
	Encrypted bool

	// TextBytes is the UTF-8 length of the text read.
	TextBytes int

	// PayloadBytes is the length actually embedded (the envelope when encrypted).
	PayloadBytes int

	CapacityBits int
	RequiredBits int

	// InsufficientCapacity is set when the image is too small. No output
	// image is written in that case.
	InsufficientCapacity bool

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool
}

// Conceal hides the text from opts.TextFile in opts.InputImage and writes
// the result to opts.OutputImage.
//
// Returns ErrFileNotFound if the image or text file is missing.
// Returns ErrEncoding if the text is not valid UTF-8.
// Returns ErrUnsupportedFormat if the output extension is not lossless.
// A too-small image is reported via ConcealResult.InsufficientCapacity.
func Conceal(ctx context.Context, opts ConcealOptions) (*ConcealResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := audit.New("conceal")
	entry.Input = opts.InputImage
	entry.Output = opts.OutputImage
	entry.Encrypted = len(opts.Password) > 0

	result, err := conceal(opts)
	if opts.Audit && !opts.DryRun {
		switch {
		case err != nil:
			entry.Outcome = audit.OutcomeError
			entry.Error = err.Error()
		case result.InsufficientCapacity:
			entry.Outcome = audit.OutcomeInsufficientCapacity
			entry.Bytes = result.PayloadBytes
		default:
			entry.Bytes = result.PayloadBytes
		}
		audit.Log(entry)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func conceal(opts ConcealOptions) (*ConcealResult, error) {
	if err := utils.RequireFile(opts.InputImage); err != nil {
		return nil, err
	}

	text, err := readText(opts.TextFile)
	if err != nil {
		return nil, err
	}

	result := &ConcealResult{
		InputImage:  opts.InputImage,
		OutputImage: opts.OutputImage,
		TextBytes:   len(text),
		DryRun:      opts.DryRun,
	}

	payload := text
	if len(opts.Password) > 0 {
		payload, err = newCodec(opts.Iterations).Encrypt(text, opts.Password)
		if err != nil {
			return nil, fmt.Errorf("encrypting text: %w", err)
		}
		result.Encrypted = true
	}
	result.PayloadBytes = len(payload)

	if opts.DryRun {
		img, _, err := stego.Load(opts.InputImage)
		if err != nil {
			return nil, err
		}
		result.CapacityBits = stego.CapacityBits(img)
		result.RequiredBits = stego.RequiredBits(len(payload))
		result.InsufficientCapacity = result.RequiredBits > result.CapacityBits
		return result, nil
	}

	embedded, err := stego.Embed(payload, opts.InputImage, opts.OutputImage)
	if err != nil {
		return nil, err
	}

	result.CapacityBits = embedded.CapacityBits
	result.RequiredBits = embedded.RequiredBits
	result.InsufficientCapacity = embedded.Outcome == stego.InsufficientCapacity
	return result, nil
}

// readText reads the text to hide from path or from stdin.
func readText(path string) (string, error) {
	var data []byte
	if path == StdinPath {
		stdin, err := utils.ReadStdin()
		if err != nil {
			return "", err
		}
		data = stdin
	} else {
		if err := utils.RequireFile(path); err != nil {
			return "", err
		}
		file, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file %s: %w", path, err)
		}
		data = file
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, serrors.ErrEncoding)
	}
	return string(data), nil
}

// newCodec returns an envelope codec for the configured iteration count.
func newCodec(iterations int) *envelope.Codec {
	if iterations == 0 {
		return envelope.New()
	}
	return envelope.New(envelope.WithIterations(iterations))
}
