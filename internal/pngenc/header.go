package pngenc

import (
	"encoding/binary"
	"fmt"
)

// Color type and bit depth used for every icon.
const (
	ColorTypeRGBA = 6
	BitDepth8     = 8
)

// Header holds the 13 IHDR payload bytes.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// MarshalBinary returns the IHDR payload.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], h.Width)
	binary.BigEndian.PutUint32(b[4:8], h.Height)
	b[8] = h.BitDepth
	b[9] = h.ColorType
	b[10] = h.CompressionMethod
	b[11] = h.FilterMethod
	b[12] = h.InterlaceMethod
	return b, nil
}

// ParseHeader decodes an IHDR payload.
func ParseHeader(b []byte) (Header, error) {
	if len(b) != 13 {
		return Header{}, fmt.Errorf("pngenc: IHDR payload is %d bytes, want 13", len(b))
	}
	return Header{
		Width:             binary.BigEndian.Uint32(b[0:4]),
		Height:            binary.BigEndian.Uint32(b[4:8]),
		BitDepth:          b[8],
		ColorType:         b[9],
		CompressionMethod: b[10],
		FilterMethod:      b[11],
		InterlaceMethod:   b[12],
	}, nil
}

// BytesPerPixel returns the sample width for the header's colour type at 8 bits.
func (h Header) BytesPerPixel() int {
	switch h.ColorType {
	case 0:
		return 1
	case 2:
		return 3
	case 3:
		return 1
	case 4:
		return 2
	case 6:
		return 4
	}
	return 0
}
