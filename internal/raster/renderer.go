package raster

import (
	"errors"
	"fmt"

	"quaero-icons/internal/mathutil"
	"quaero-icons/internal/postprocess"
)

// MaxSize bounds the edge length accepted by Rasterize.
const MaxSize = 1024

// MaxSupersample bounds the supersampling factor.
const MaxSupersample = 8

// ErrInvalidSize is returned for a non-positive or oversized icon edge.
var ErrInvalidSize = errors.New("raster: invalid size")

// Class is the region a pixel falls into.
type Class int

const (
	ClassOutside Class = iota
	ClassFill
	ClassGlyph
)

func (c Class) String() string {
	switch c {
	case ClassOutside:
		return "outside"
	case ClassFill:
		return "fill"
	case ClassGlyph:
		return "glyph"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Classify places pixel (x, y) of an n×n icon into exactly one region. The
// pixel is sampled at its centre, so (x+0.5, y+0.5) is measured against n/2.
func Classify(s Style, n, x, y int) Class {
	size := float64(n)
	half := size / 2
	p := mathutil.Vec2{float64(x) + 0.5 - half, float64(y) + 0.5 - half}
	d := p.Len()

	if d > s.DiskRadius*size {
		return ClassOutside
	}
	if d >= s.RingInner*size && d <= s.RingOuter*size {
		return ClassGlyph
	}
	if onTail(s, p, size) {
		return ClassGlyph
	}
	return ClassFill
}

// onTail reports whether p lies on the diagonal stroke that turns the ring
// into a letter: its projection on the tail direction must fall within
// [TailStart, TailEnd] and its distance from that line within TailHalfWidth.
func onTail(s Style, p mathutil.Vec2, size float64) bool {
	dir := mathutil.Direction(mathutil.Deg2Rad(s.TailAngle))
	t := p.Dot(dir)
	if t < s.TailStart*size || t > s.TailEnd*size {
		return false
	}
	return p.Sub(dir.Scale(t)).Len() <= s.TailHalfWidth*size
}

// Rasterize renders an n×n icon in one pass over the grid.
func Rasterize(n int, s Style) (*FrameBuffer, error) {
	if n <= 0 || n > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return paint(n, s), nil
}

// RasterizeSupersampled renders at n*k and filters down to n×n for smooth
// edges. k <= 1 is the same as Rasterize.
func RasterizeSupersampled(n, k int, s Style) (*FrameBuffer, error) {
	if k <= 1 {
		return Rasterize(n, s)
	}
	if k > MaxSupersample {
		return nil, fmt.Errorf("%w: supersample %d exceeds %d", ErrInvalidSize, k, MaxSupersample)
	}
	if n <= 0 || n > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	big := paint(n*k, s)
	return FromNRGBA(postprocess.Downsample(big.NRGBA(), n)), nil
}

func paint(n int, s Style) *FrameBuffer {
	fb := NewFrameBuffer(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			switch Classify(s, n, x, y) {
			case ClassGlyph:
				fb.Set(x, y, s.Glyph)
			case ClassFill:
				fb.Set(x, y, s.Fill)
			case ClassOutside:
				if s.Outside == OutsideBackground {
					fb.Set(x, y, s.Background)
				}
			}
		}
	}
	return fb
}
