package envelope

import (
	"crypto/rand"
	"fmt"
	"io"

	serrors "github.com/PolarWolf314/stegano/internal/errors"
)

// EntropySource produces cryptographically secure random bytes.
type EntropySource interface {
	Generate(n int) ([]byte, error)
}

// readerSource reads random bytes from an io.Reader.
type readerSource struct {
	r io.Reader
}

// SystemEntropy is backed by crypto/rand and is safe for concurrent use.
var SystemEntropy EntropySource = NewEntropySource(rand.Reader)

// NewEntropySource returns an EntropySource reading from r.
// Production code should use SystemEntropy; other readers are for tests.
func NewEntropySource(r io.Reader) EntropySource {
	return readerSource{r: r}
}

// Generate returns n random bytes. It fails with ErrRandomSourceUnavailable
// if the reader cannot fill the buffer completely.
func (s readerSource) Generate(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", serrors.ErrRandomSourceUnavailable, err)
	}
	return b, nil
}
