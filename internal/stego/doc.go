// Package stego hides byte payloads in the least significant bits of image
// pixels.
//
// Each pixel carries three payload bits, one in the low bit of each of the
// red, green and blue channels. Alpha is never touched. Pixels are visited
// row-major and each byte is written most significant bit first.
//
// A payload is framed as:
//
//	["STG1" magic][uint32 big-endian length][payload bytes]
//
// The magic lets Extract report ErrNoPayload for images that were never
// written by Embed instead of returning noise.
//
// # Image Formats
//
// PNG, JPEG and GIF inputs are decoded with the standard library, BMP and
// TIFF with golang.org/x/image. Output must be lossless, so only .png, .bmp,
// .tif and .tiff destinations are accepted.
package stego
