package raster

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Outside selects what is painted beyond the disk.
type Outside int

const (
	OutsideTransparent Outside = iota
	OutsideBackground
)

func (o Outside) String() string {
	switch o {
	case OutsideTransparent:
		return "transparent"
	case OutsideBackground:
		return "background"
	}
	return fmt.Sprintf("Outside(%d)", int(o))
}

// Style describes the icon geometry and palette. Every length is a fraction of
// the icon size N, so the same style renders consistently at any resolution.
type Style struct {
	DiskRadius    float64
	RingInner     float64
	RingOuter     float64
	TailStart     float64 // distance from centre along the tail direction
	TailEnd       float64
	TailHalfWidth float64
	TailAngle     float64 // degrees, clockwise from +X (image space)

	Fill       color.NRGBA
	Glyph      color.NRGBA
	Background color.NRGBA
	Outside    Outside
}

var (
	// ErrInvalidStyle is returned when a style's radii are inconsistent.
	ErrInvalidStyle = errors.New("raster: invalid style")
	// ErrUnknownVariant is returned by StyleFor for unregistered names.
	ErrUnknownVariant = errors.New("raster: unknown variant")
	// ErrInvalidColor is returned by ParseHexColor.
	ErrInvalidColor = errors.New("raster: invalid color")
)

const (
	VariantClassic = "classic"
	VariantSolid   = "solid"
)

var (
	white    = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	indigo   = color.NRGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF}
	paleGray = color.NRGBA{R: 0xF3, G: 0xF4, B: 0xF6, A: 0xFF}
)

// variants holds the two glyph heuristics. Classic leaves the corners
// transparent; solid paints them with the background colour and draws a
// slightly heavier ring with a steeper tail.
var variants = map[string]Style{
	VariantClassic: {
		DiskRadius:    0.47,
		RingInner:     0.20,
		RingOuter:     0.31,
		TailStart:     0.22,
		TailEnd:       0.42,
		TailHalfWidth: 0.055,
		TailAngle:     45,
		Fill:          indigo,
		Glyph:         white,
		Background:    white,
		Outside:       OutsideTransparent,
	},
	VariantSolid: {
		DiskRadius:    0.50,
		RingInner:     0.19,
		RingOuter:     0.32,
		TailStart:     0.20,
		TailEnd:       0.44,
		TailHalfWidth: 0.06,
		TailAngle:     50,
		Fill:          indigo,
		Glyph:         white,
		Background:    paleGray,
		Outside:       OutsideBackground,
	},
}

// StyleFor returns a copy of the named variant.
func StyleFor(name string) (Style, error) {
	s, ok := variants[strings.ToLower(name)]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return s, nil
}

// DefaultStyle is the classic variant.
func DefaultStyle() Style {
	return variants[VariantClassic]
}

// Variants lists registered variant names in sorted order.
func Variants() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the glyph sits inside the disk and that nothing strictly
// inside the inner ring radius can be classified as glyph.
func (s Style) Validate() error {
	switch {
	case s.DiskRadius <= 0 || s.DiskRadius > 0.5:
		return fmt.Errorf("%w: disk radius %.3f not in (0, 0.5]", ErrInvalidStyle, s.DiskRadius)
	case s.RingInner <= 0 || s.RingInner >= s.RingOuter:
		return fmt.Errorf("%w: ring %.3f..%.3f", ErrInvalidStyle, s.RingInner, s.RingOuter)
	case s.RingOuter > s.DiskRadius:
		return fmt.Errorf("%w: ring outer %.3f beyond disk %.3f", ErrInvalidStyle, s.RingOuter, s.DiskRadius)
	case s.TailStart < s.RingInner || s.TailStart >= s.TailEnd:
		return fmt.Errorf("%w: tail %.3f..%.3f", ErrInvalidStyle, s.TailStart, s.TailEnd)
	case s.TailHalfWidth <= 0:
		return fmt.Errorf("%w: tail half width %.3f", ErrInvalidStyle, s.TailHalfWidth)
	case s.Outside != OutsideTransparent && s.Outside != OutsideBackground:
		return fmt.Errorf("%w: %s", ErrInvalidStyle, s.Outside)
	}
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" (the leading # is optional).
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xFF
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
