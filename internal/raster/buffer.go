package raster

import (
	"image"
	"image/color"
)

// FrameBuffer holds the icon pixels as one flat slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a zeroed (fully transparent) color buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
}

// Len returns the number of pixels in the buffer.
func (fb *FrameBuffer) Len() int {
	return fb.Width * fb.Height
}

func (fb *FrameBuffer) offset(x, y int) int {
	return (y*fb.Width + x) * 4
}

// Set writes one pixel. Coordinates outside the buffer are ignored.
func (fb *FrameBuffer) Set(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := fb.offset(x, y)
	fb.Color[i] = c.R
	fb.Color[i+1] = c.G
	fb.Color[i+2] = c.B
	fb.Color[i+3] = c.A
}

// At reads one pixel. Coordinates outside the buffer read as transparent.
func (fb *FrameBuffer) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return color.NRGBA{}
	}
	i := fb.offset(x, y)
	return color.NRGBA{R: fb.Color[i], G: fb.Color[i+1], B: fb.Color[i+2], A: fb.Color[i+3]}
}

// NRGBA copies the buffer into an image for encoders that take image.Image.
func (fb *FrameBuffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

// FromNRGBA copies an image with zero-origin bounds back into a FrameBuffer.
func FromNRGBA(img *image.NRGBA) *FrameBuffer {
	b := img.Bounds()
	fb := NewFrameBuffer(b.Dx(), b.Dy())
	for y := 0; y < fb.Height; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(fb.Color[y*fb.Width*4:(y+1)*fb.Width*4], row[:fb.Width*4])
	}
	return fb
}
