package batch

import (
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	ico "github.com/sergeymakinen/go-ico"

	"quaero-icons/internal/pngenc"
	"quaero-icons/internal/raster"
)

type encodeFunc func(w io.Writer, fb *raster.FrameBuffer) error

// encoders maps a format name to its writer. PNG goes through the chunk
// encoder; the extras take an image.NRGBA copy of the buffer.
var encoders = map[string]encodeFunc{
	"png": func(w io.Writer, fb *raster.FrameBuffer) error {
		return pngenc.Encode(w, fb.Width, fb.Height, fb.Color)
	},
	"webp": func(w io.Writer, fb *raster.FrameBuffer) error {
		return nativewebp.Encode(w, fb.NRGBA(), nil)
	},
	"tga": func(w io.Writer, fb *raster.FrameBuffer) error {
		return tga.Encode(w, fb.NRGBA())
	},
	"ico": func(w io.Writer, fb *raster.FrameBuffer) error {
		return ico.Encode(w, fb.NRGBA())
	},
}

// Formats lists the format names Run accepts.
func Formats() []string {
	return []string{"png", "webp", "tga", "ico"}
}
