package stego

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	serrors "github.com/PolarWolf314/stegano/internal/errors"
)

// Outcome tags the result of Embed.
type Outcome int

const (
	// Embedded means the output image was written.
	Embedded Outcome = iota
	// InsufficientCapacity means the image is too small and nothing was written.
	InsufficientCapacity
)

func (o Outcome) String() string {
	switch o {
	case Embedded:
		return "embedded"
	case InsufficientCapacity:
		return "insufficient_capacity"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// EmbedResult is the outcome of Embed. A capacity shortfall is reported here
// rather than as an error so callers can branch on it directly.
type EmbedResult struct {
	Outcome      Outcome
	CapacityBits int
	RequiredBits int
	OutputPath   string
}

// Err returns ErrInsufficientCapacity, wrapped with the bit counts, when the
// outcome is InsufficientCapacity, and nil otherwise.
func (r *EmbedResult) Err() error {
	if r.Outcome != InsufficientCapacity {
		return nil
	}
	return fmt.Errorf("%w: need %d bits, image holds %d", serrors.ErrInsufficientCapacity, r.RequiredBits, r.CapacityBits)
}

// Embed hides text in the image at inputPath and writes the result to
// outputPath. The input file is never modified.
//
// The error return covers I/O and format failures only. When the image is
// too small the result has Outcome InsufficientCapacity and no file is written.
func Embed(text, inputPath, outputPath string) (*EmbedResult, error) {
	if _, err := encoderFor(outputPath); err != nil {
		return nil, err
	}
	if err := checkDistinct(inputPath, outputPath); err != nil {
		return nil, err
	}

	img, _, err := Load(inputPath)
	if err != nil {
		return nil, err
	}

	payload := []byte(text)
	result := &EmbedResult{
		CapacityBits: CapacityBits(img),
		RequiredBits: RequiredBits(len(payload)),
		OutputPath:   outputPath,
	}
	if result.RequiredBits > result.CapacityBits {
		result.Outcome = InsufficientCapacity
		return result, nil
	}

	out, err := EmbedImage(img, payload)
	if err != nil {
		return nil, err
	}
	if err := Save(outputPath, out); err != nil {
		return nil, err
	}

	result.Outcome = Embedded
	return result, nil
}

// Extract returns the text hidden in the image at inputPath.
func Extract(inputPath string) (string, error) {
	img, _, err := Load(inputPath)
	if err != nil {
		return "", err
	}

	payload, err := ExtractImage(img)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(payload) {
		return "", serrors.ErrEncoding
	}
	return string(payload), nil
}

// checkDistinct rejects an output path that resolves to the input file.
func checkDistinct(inputPath, outputPath string) error {
	inAbs, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", inputPath, err)
	}
	outAbs, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", outputPath, err)
	}
	if inAbs == outAbs {
		return serrors.ErrSameFile
	}

	inInfo, err := os.Stat(inputPath)
	if err != nil {
		// Load reports a missing input.
		return nil
	}
	outInfo, err := os.Stat(outputPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err == nil && os.SameFile(inInfo, outInfo) {
		return serrors.ErrSameFile
	}
	return nil
}
