// Package errors provides typed error values for the stegano application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Crypto errors: envelope codec failures (ErrMalformedEnvelope,
//     ErrDecryptionFailed, ErrEncoding, ErrRandomSourceUnavailable)
//   - Steganography errors: image payload issues (ErrInsufficientCapacity,
//     ErrNoPayload, ErrUnsupportedFormat)
//   - File errors: file system issues (ErrFileNotFound, ErrNoFilesFound)
//   - Configuration errors: ErrInvalidConfig, ErrPasswordRequired
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(raw) < headerSize {
//	    return "", errors.ErrMalformedEnvelope
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Reveal(ctx, opts)
//	if errors.Is(err, serrors.ErrDecryptionFailed) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s: %w", path, errors.ErrFileNotFound)
package errors
