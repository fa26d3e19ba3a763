package stego

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	serrors "github.com/PolarWolf314/stegano/internal/errors"
)

const (
	magic        = "STG1"
	headerSize   = len(magic) + 4
	bitsPerPixel = 3
)

// CapacityBits returns the number of raw bits img can carry.
func CapacityBits(img image.Image) int {
	b := img.Bounds()
	return b.Dx() * b.Dy() * bitsPerPixel
}

// Capacity returns the number of payload bytes img can carry once the frame
// header is accounted for.
func Capacity(img image.Image) int {
	n := CapacityBits(img)/8 - headerSize
	if n < 0 {
		return 0
	}
	return n
}

// RequiredBits returns the number of bits needed to embed a payload of n bytes.
func RequiredBits(n int) int {
	return (headerSize + n) * 8
}

// EmbedImage returns a copy of img with payload hidden in its pixels.
// The source image is not modified.
func EmbedImage(img image.Image, payload []byte) (*image.NRGBA, error) {
	if required, capacity := RequiredBits(len(payload)), CapacityBits(img); required > capacity {
		return nil, fmt.Errorf("%w: need %d bits, image holds %d", serrors.ErrInsufficientCapacity, required, capacity)
	}

	frame := make([]byte, headerSize+len(payload))
	copy(frame, magic)
	binary.BigEndian.PutUint32(frame[len(magic):], uint32(len(payload)))
	copy(frame[headerSize:], payload)

	dst := toNRGBA(img)
	w := newBitCursor(dst)
	for _, b := range frame {
		for i := 7; i >= 0; i-- {
			w.write((b >> uint(i)) & 1)
		}
	}

	return dst, nil
}

// ExtractImage returns the payload hidden in img by EmbedImage.
// Returns ErrNoPayload if the frame header is missing or inconsistent.
func ExtractImage(img image.Image) ([]byte, error) {
	if CapacityBits(img) < headerSize*8 {
		return nil, serrors.ErrNoPayload
	}

	r := newBitCursor(toNRGBA(img))
	header := r.readBytes(headerSize)
	if string(header[:len(magic)]) != magic {
		return nil, serrors.ErrNoPayload
	}

	n := binary.BigEndian.Uint32(header[len(magic):])
	if uint64(n) > uint64(Capacity(img)) {
		return nil, fmt.Errorf("%w: declared length %d exceeds capacity %d", serrors.ErrNoPayload, n, Capacity(img))
	}

	return r.readBytes(int(n)), nil
}

// toNRGBA copies img into a zero-origin NRGBA image. Non-premultiplied
// values are kept as-is so pixels with partial alpha round trip exactly.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			srcRow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], srcRow[:4*b.Dx()])
		}
		return dst
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}

// bitCursor walks the RGB channel slots of an NRGBA image in embedding order.
type bitCursor struct {
	img *image.NRGBA
	pos int
}

func newBitCursor(img *image.NRGBA) *bitCursor {
	return &bitCursor{img: img}
}

func (c *bitCursor) offset() int {
	width := c.img.Rect.Dx()
	pixel := c.pos / bitsPerPixel
	x, y := pixel%width, pixel/width
	return y*c.img.Stride + x*4 + c.pos%bitsPerPixel
}

func (c *bitCursor) write(bit byte) {
	i := c.offset()
	c.img.Pix[i] = c.img.Pix[i]&^1 | bit
	c.pos++
}

func (c *bitCursor) read() byte {
	bit := c.img.Pix[c.offset()] & 1
	c.pos++
	return bit
}

func (c *bitCursor) readBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | c.read()
		}
		out[i] = b
	}
	return out
}
