package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	serrors "github.com/PolarWolf314/stegano/internal/errors"
)

// Codec encrypts text into envelopes and back. A Codec is immutable after
// New returns and may be shared between goroutines.
type Codec struct {
	iterations int
	entropy    EntropySource
}

// Option configures a Codec.
type Option func(*Codec)

// WithIterations sets the PBKDF2 iteration count. Envelopes must be
// decrypted with the same count they were encrypted with.
func WithIterations(n int) Option {
	return func(c *Codec) {
		c.iterations = n
	}
}

// WithEntropy replaces the random source used for salts and IVs.
func WithEntropy(src EntropySource) Option {
	return func(c *Codec) {
		c.entropy = src
	}
}

// New creates a Codec using DefaultIterations and SystemEntropy unless
// overridden by opts.
func New(opts ...Option) *Codec {
	c := &Codec{
		iterations: DefaultIterations,
		entropy:    SystemEntropy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Iterations returns the PBKDF2 iteration count used by the codec.
func (c *Codec) Iterations() int {
	return c.iterations
}

// Encrypt encrypts plaintext with a key derived from password and returns
// the base64 envelope. Each call uses a fresh salt and IV.
//
// Returns ErrEncoding if plaintext is not valid UTF-8.
// Returns ErrRandomSourceUnavailable if salt or IV cannot be generated.
func (c *Codec) Encrypt(plaintext string, password []byte) (string, error) {
	if c.iterations < 1 {
		return "", serrors.ErrInvalidIterations
	}
	if !utf8.ValidString(plaintext) {
		return "", serrors.ErrEncoding
	}

	salt, err := c.entropy.Generate(SaltSize)
	if err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	iv, err := c.entropy.Generate(IVSize)
	if err != nil {
		return "", fmt.Errorf("generating IV: %w", err)
	}

	key := DeriveKey(password, salt, c.iterations)
	defer ClearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext))
	defer ClearBytes(padded)

	out := make([]byte, HeaderSize+len(padded))
	copy(out, salt)
	copy(out[SaltSize:], iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[HeaderSize:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt opens an envelope produced by Encrypt.
//
// Returns ErrMalformedEnvelope if the envelope is not base64 or is shorter
// than the salt and IV header.
// Returns ErrDecryptionFailed for a wrong password or corrupted ciphertext.
// Returns ErrEncoding if the decrypted bytes are not valid UTF-8.
func (c *Codec) Decrypt(envelope string, password []byte) (string, error) {
	if c.iterations < 1 {
		return "", serrors.ErrInvalidIterations
	}

	raw, err := decode(envelope)
	if err != nil {
		return "", err
	}

	salt := raw[:SaltSize]
	iv := raw[SaltSize:HeaderSize]
	ciphertext := raw[HeaderSize:]

	// Empty or unaligned ciphertext can never carry valid padding.
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", serrors.ErrDecryptionFailed
	}

	key := DeriveKey(password, salt, c.iterations)
	defer ClearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	buf := make([]byte, len(ciphertext))
	defer ClearBytes(buf)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(buf, ciphertext)

	plaintext, err := pkcs7Unpad(buf)
	if err != nil {
		return "", serrors.ErrDecryptionFailed
	}
	if !utf8.Valid(plaintext) {
		return "", serrors.ErrEncoding
	}

	return string(plaintext), nil
}

// EnvelopeInfo describes the structure of an envelope without decrypting it.
type EnvelopeInfo struct {
	Salt          string // hex
	IV            string // hex
	CiphertextLen int
	Blocks        int
	Aligned       bool
}

// Inspect reports the structural fields of an envelope. No password is
// needed since salt and IV are not secret.
func Inspect(envelope string) (*EnvelopeInfo, error) {
	raw, err := decode(envelope)
	if err != nil {
		return nil, err
	}

	n := len(raw) - HeaderSize
	return &EnvelopeInfo{
		Salt:          hex.EncodeToString(raw[:SaltSize]),
		IV:            hex.EncodeToString(raw[SaltSize:HeaderSize]),
		CiphertextLen: n,
		Blocks:        n / aes.BlockSize,
		Aligned:       n > 0 && n%aes.BlockSize == 0,
	}, nil
}

// EncodedLen returns the length of the envelope produced for a plaintext of
// plaintextBytes UTF-8 bytes.
func EncodedLen(plaintextBytes int) int {
	padded := (plaintextBytes/aes.BlockSize + 1) * aes.BlockSize
	return base64.StdEncoding.EncodedLen(HeaderSize + padded)
}

func decode(envelope string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", serrors.ErrMalformedEnvelope, err)
	}
	if len(raw) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", serrors.ErrMalformedEnvelope, len(raw), HeaderSize)
	}
	return raw, nil
}

var defaultCodec = New()

// Encrypt encrypts plaintext with the default codec.
func Encrypt(plaintext string, password []byte) (string, error) {
	return defaultCodec.Encrypt(plaintext, password)
}

// Decrypt decrypts an envelope with the default codec.
func Decrypt(envelope string, password []byte) (string, error) {
	return defaultCodec.Decrypt(envelope, password)
}
