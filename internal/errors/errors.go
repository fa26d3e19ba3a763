package errors

import "errors"

// Cryptographic errors indicate failures inside the encryption envelope codec.
var (
	// ErrRandomSourceUnavailable indicates the operating system's secure random
	// generator could not produce bytes. There is no fallback.
	ErrRandomSourceUnavailable = errors.New("secure random source unavailable")

	// ErrMalformedEnvelope indicates the envelope is not valid base64 or is
	// shorter than the 32-byte salt and IV header.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrDecryptionFailed indicates the ciphertext could not be decrypted.
	// A wrong password and corrupted data are intentionally not distinguished.
	ErrDecryptionFailed = errors.New("decryption failed: wrong password or corrupted data")

	// ErrEncoding indicates text that is not valid UTF-8.
	ErrEncoding = errors.New("text is not valid UTF-8")

	// ErrInvalidIterations indicates a key derivation iteration count below one.
	ErrInvalidIterations = errors.New("key derivation iterations must be at least 1")
)

// Steganography errors indicate issues embedding into or extracting from images.
var (
	// ErrInsufficientCapacity indicates the image has too few pixels to carry the text.
	ErrInsufficientCapacity = errors.New("image capacity is too small for the text")

	// ErrNoPayload indicates the image does not carry an embedded payload.
	ErrNoPayload = errors.New("no hidden payload found in image")

	// ErrUnsupportedFormat indicates an image format that cannot be read or
	// cannot be written losslessly.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")
)

// Configuration errors indicate invalid user input or settings.
var (
	// ErrInvalidConfig indicates the configuration file or environment is invalid.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrPasswordRequired indicates a password was requested but none could be read.
	ErrPasswordRequired = errors.New("password required")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Path errors indicate conflicting input and output locations.
var (
	// ErrSameFile indicates the output image would overwrite the input image.
	ErrSameFile = errors.New("output image must differ from input image")
)
