package envelope

import (
	"crypto/aes"
	"crypto/subtle"
	"errors"
)

var errInvalidPadding = errors.New("invalid PKCS7 padding")

// pkcs7Pad appends 1..aes.BlockSize bytes so len(result) is block aligned.
// A full block of padding is added when data is already aligned.
func pkcs7Pad(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// pkcs7Unpad strips PKCS7 padding. The padding bytes are checked without
// an early exit.
func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, errInvalidPadding
	}

	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize {
		return nil, errInvalidPadding
	}

	good := 1
	for _, b := range data[len(data)-n:] {
		good &= subtle.ConstantTimeByteEq(b, byte(n))
	}
	if good != 1 {
		return nil, errInvalidPadding
	}

	return data[:len(data)-n], nil
}
