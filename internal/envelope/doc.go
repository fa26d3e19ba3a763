// Package envelope implements the password-based encryption envelope used to
// protect text before it is hidden in an image.
//
// An envelope is the standard base64 encoding of:
//
//	[16 bytes salt][16 bytes IV][n*16 bytes AES-256-CBC ciphertext]
//
// The 32-byte key is derived from the password and salt with
// PBKDF2-HMAC-SHA1. The iteration count defaults to 1000, which is weak by
// current standards; it is kept so existing envelopes still open, and can be
// raised with WithIterations. Salt and IV are drawn independently from the
// operating system's secure random generator on every call, so encrypting
// the same text twice yields different envelopes.
//
// # Integrity
//
// Envelopes carry no authentication tag. Tampering is not detected beyond
// the PKCS7 padding check, and a wrong password is indistinguishable from
// corrupted data: both surface as errors.ErrDecryptionFailed. Adding an
// authenticated mode would change the wire format.
//
// # Memory Safety
//
// Derived keys and intermediate buffers are zeroed with ClearBytes before
// Encrypt and Decrypt return, on success and error paths alike.
package envelope
