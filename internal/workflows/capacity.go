package workflows

import (
	"context"
	"fmt"
	"sort"

	"github.com/PolarWolf314/stegano/internal/envelope"
	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"github.com/PolarWolf314/stegano/internal/stego"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
)

// CapacityOptions configures the capacity workflow.
type CapacityOptions struct {
	// Patterns are file paths or glob patterns (** is supported).
	Patterns []string

	// TextBytes is the length of text to check against each image.
	// Only used when CheckFit is true.
	TextBytes int

	// CheckFit compares each image's capacity against TextBytes.
	CheckFit bool

	// Encrypted accounts for envelope overhead when checking fit.
	Encrypted bool
}

// ImageCapacity describes how much text one image can carry.
type ImageCapacity struct {
	Path          string
	Format        string
	Width         int
	Height        int
	CapacityBits  int
	CapacityBytes int

	// Fits is only meaningful when CapacityOptions.CheckFit is set.
	Fits bool
}

// CapacityResult contains the outcome of a capacity check.
type CapacityResult struct {
	Images []ImageCapacity

	// RequiredBytes is the payload length checked against, including
	// envelope overhead when encrypted.
	RequiredBytes int
	CheckFit      bool
}

// Capacity reports the hidden-text capacity of every image matching
// opts.Patterns, in path order.
//
// Images that cannot be decoded are skipped and their errors aggregated into
// the returned error, alongside a result for the images that could be read.
// Returns ErrNoFilesFound if no pattern matches a file.
func Capacity(ctx context.Context, opts CapacityOptions) (*CapacityResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths, err := expandPatterns(opts.Patterns)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", serrors.ErrNoFilesFound, fmt.Sprint(opts.Patterns))
	}

	result := &CapacityResult{CheckFit: opts.CheckFit}
	if opts.CheckFit {
		result.RequiredBytes = opts.TextBytes
		if opts.Encrypted {
			result.RequiredBytes = envelope.EncodedLen(opts.TextBytes)
		}
	}

	var errs *multierror.Error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, format, err := stego.Load(path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		bounds := img.Bounds()
		bits := stego.CapacityBits(img)
		result.Images = append(result.Images, ImageCapacity{
			Path:          path,
			Format:        format,
			Width:         bounds.Dx(),
			Height:        bounds.Dy(),
			CapacityBits:  bits,
			CapacityBytes: stego.Capacity(img),
			Fits:          stego.RequiredBits(result.RequiredBytes) <= bits,
		})
	}

	return result, errs.ErrorOrNil()
}

// expandPatterns resolves each pattern to existing file paths, deduplicated
// and sorted. A pattern with no glob metacharacters matches itself if the
// file exists.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}
