package stego

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	serrors "github.com/PolarWolf314/stegano/internal/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Load decodes the image at path and returns it with its format name.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%s: %w", path, serrors.ErrFileNotFound)
		}
		return nil, "", fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: decoding %s: %v", serrors.ErrUnsupportedFormat, path, err)
	}
	return img, format, nil
}

type encodeFunc func(io.Writer, image.Image) error

// encoderFor returns a lossless encoder for the extension of path.
func encoderFor(path string) (encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: cannot write %q losslessly, use .png, .bmp or .tiff", serrors.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Save encodes img to path. The image is written to a temporary file in the
// same directory and renamed into place, so a failed write leaves nothing
// behind.
func Save(path string, img image.Image) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stegano-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// #nosec G302 -- output images are regular user files
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move image into %s: %w", path, err)
	}

	return nil
}
