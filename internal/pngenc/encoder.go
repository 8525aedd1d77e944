package pngenc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

var (
	// ErrDimensions is returned for a non-positive width or height.
	ErrDimensions = errors.New("pngenc: invalid dimensions")
	// ErrBufferLength is returned when the pixel buffer is not width*height*4 bytes.
	ErrBufferLength = errors.New("pngenc: pixel buffer length mismatch")
)

// filterNone is the per-row filter tag meaning "bytes stored as is".
const filterNone = 0

// Encode writes pix (row-major RGBA, 8 bits per channel) as a PNG with a
// single IDAT chunk. Every scanline is stored unfiltered and the whole image
// is deflated at the best compression level.
func Encode(w io.Writer, width, height int, pix []byte) error {
	if width <= 0 || height <= 0 || width > 1<<31-1 || height > 1<<31-1 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if len(pix) != width*height*4 {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d RGBA",
			ErrBufferLength, len(pix), width*height*4, width, height)
	}

	ihdr, _ := Header{
		Width:     uint32(width),
		Height:    uint32(height),
		BitDepth:  BitDepth8,
		ColorType: ColorTypeRGBA,
	}.MarshalBinary()

	idat, err := deflateScanlines(width, height, pix)
	if err != nil {
		return err
	}

	if _, err := w.Write(Signature[:]); err != nil {
		return err
	}
	for _, c := range []Chunk{
		{Type: TypeIHDR, Data: ihdr},
		{Type: TypeIDAT, Data: idat},
		{Type: TypeIEND},
	} {
		if err := writeChunk(w, c); err != nil {
			return fmt.Errorf("pngenc: write %s: %w", c.Type, err)
		}
	}
	return nil
}

// EncodeBytes is Encode into a fresh byte slice.
func EncodeBytes(width, height int, pix []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, width, height, pix); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deflateScanlines(width, height int, pix []byte) ([]byte, error) {
	stride := width * 4
	raw := make([]byte, 0, height*(stride+1))
	for y := 0; y < height; y++ {
		raw = append(raw, filterNone)
		raw = append(raw, pix[y*stride:(y+1)*stride]...)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("pngenc: zlib: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("pngenc: deflate: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("pngenc: deflate: %w", err)
	}
	return buf.Bytes(), nil
}

// Inflate concatenates the IDAT payloads and returns the decompressed
// scanline stream (filter byte + row bytes per row).
func Inflate(chunks []Chunk) ([]byte, error) {
	var z bytes.Buffer
	for _, c := range chunks {
		if c.Type == TypeIDAT {
			z.Write(c.Data)
		}
	}
	if z.Len() == 0 {
		return nil, fmt.Errorf("pngenc: no %s chunk", TypeIDAT)
	}

	zr, err := zlib.NewReader(&z)
	if err != nil {
		return nil, fmt.Errorf("pngenc: zlib: %w", err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// Unfilter strips the filter bytes from an unfiltered scanline stream and
// returns the packed pixels. Rows using any filter other than "none" are
// rejected since Encode never produces them.
func Unfilter(h Header, raw []byte) ([]byte, error) {
	bpp := h.BytesPerPixel()
	if bpp == 0 || h.BitDepth != BitDepth8 {
		return nil, fmt.Errorf("pngenc: unsupported colour type %d / depth %d", h.ColorType, h.BitDepth)
	}
	stride := int(h.Width) * bpp
	if len(raw) != int(h.Height)*(stride+1) {
		return nil, fmt.Errorf("%w: scanlines are %d bytes, want %d",
			ErrBufferLength, len(raw), int(h.Height)*(stride+1))
	}

	pix := make([]byte, 0, int(h.Height)*stride)
	for y := 0; y < int(h.Height); y++ {
		row := raw[y*(stride+1):]
		if row[0] != filterNone {
			return nil, fmt.Errorf("pngenc: row %d uses filter %d", y, row[0])
		}
		pix = append(pix, row[1:stride+1]...)
	}
	return pix, nil
}
