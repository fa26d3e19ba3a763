package envelope

import (
	"crypto/sha1" // #nosec G505 -- PBKDF2-HMAC-SHA1 is required to open existing envelopes
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize          = 16   // Salt size in bytes
	IVSize            = 16   // AES block size / CBC IV size
	KeySize           = 32   // AES-256 key size
	HeaderSize        = SaltSize + IVSize
	DefaultIterations = 1000 // PBKDF2 iterations used by existing envelopes
)

// DeriveKey derives a KeySize-byte key from password and salt using
// PBKDF2-HMAC-SHA1. Identical inputs always yield the identical key.
// The caller owns the returned slice and should ClearBytes it when done.
func DeriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, KeySize, sha1.New)
}

// ClearBytes zeroes a byte slice.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
