package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales a supersampled icon to size×size with Catmull-Rom
// filtering in premultiplied space, so transparent corners do not bleed a dark
// fringe into the disk edge. Images already at or below size are returned as is.
func Downsample(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img
	}

	// image.RGBA is alpha-premultiplied; draw.Draw converts on the way in and out.
	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, b, draw.Src, nil)

	out := image.NewNRGBA(scaled.Bounds())
	draw.Draw(out, out.Bounds(), scaled, image.Point{}, draw.Src)
	return out
}
