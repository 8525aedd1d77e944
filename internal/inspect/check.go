package inspect

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"

	"quaero-icons/internal/pngenc"
	"quaero-icons/internal/raster"
)

// Report collects what was found for one icon size.
type Report struct {
	Size      int
	Path      string
	Header    pngenc.Header
	Chunks    []string
	RoundTrip bool // decoded pixels equal a fresh render
	Extras    []string
	Problems  []string
}

// OK reports whether no problems were recorded.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) problemf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// CheckPNG validates the structure of a PNG written for an n×n icon: the
// signature, every chunk checksum, IHDR…IDAT…IEND ordering and the IHDR fields.
func CheckPNG(path string, n int) (Report, error) {
	r := Report{Size: n, Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("inspect: read %s: %w", path, err)
	}

	chunks, err := pngenc.ReadRawChunks(bytes.NewReader(data))
	for _, c := range chunks {
		r.Chunks = append(r.Chunks, c.Type)
		if !c.Valid() {
			r.problemf("%s checksum %08x, want %08x", c.Type, c.Stored, c.CRC())
		}
	}
	if err != nil {
		r.problemf("%v", err)
		if errors.Is(err, pngenc.ErrSignature) {
			return r, nil
		}
	}
	if len(chunks) == 0 {
		return r, nil
	}

	if chunks[0].Type != pngenc.TypeIHDR {
		r.problemf("first chunk is %s, want %s", chunks[0].Type, pngenc.TypeIHDR)
		return r, nil
	}
	h, err := pngenc.ParseHeader(chunks[0].Data)
	if err != nil {
		r.problemf("%v", err)
		return r, nil
	}
	r.Header = h

	if h.Width != uint32(n) || h.Height != uint32(n) {
		r.problemf("IHDR is %dx%d, want %dx%d", h.Width, h.Height, n, n)
	}
	if h.BitDepth != pngenc.BitDepth8 || h.ColorType != pngenc.ColorTypeRGBA {
		r.problemf("IHDR depth %d colour type %d, want 8/6", h.BitDepth, h.ColorType)
	}
	if h.CompressionMethod != 0 || h.FilterMethod != 0 || h.InterlaceMethod != 0 {
		r.problemf("IHDR methods %d/%d/%d, want 0/0/0", h.CompressionMethod, h.FilterMethod, h.InterlaceMethod)
	}

	idat := 0
	for _, c := range chunks {
		if c.Type == pngenc.TypeIDAT {
			idat++
		}
	}
	if idat == 0 {
		r.problemf("no %s chunk", pngenc.TypeIDAT)
	}
	if last := chunks[len(chunks)-1].Type; last != pngenc.TypeIEND {
		r.problemf("last chunk is %s, want %s", last, pngenc.TypeIEND)
	}
	return r, nil
}

// VerifyOptions describes what a generated directory is expected to contain.
type VerifyOptions struct {
	Sizes       []int
	Style       raster.Style
	Supersample int
}

// Verify checks the PNG for every expected size in dir. When supersampling
// is off the decoded pixels must match a fresh render exactly. Any other
// icon<N>.<ext> files found for the size are decoded and their dimensions
// checked.
func Verify(dir string, opts VerifyOptions, logger arbor.ILogger) ([]Report, error) {
	idx, err := BuildIndex(dir)
	if err != nil {
		return nil, fmt.Errorf("inspect: scan %s: %w", dir, err)
	}
	logger.Debug().Str("dir", dir).Int("files", idx.Len()).Msg("Indexed icon files")

	reports := make([]Report, 0, len(opts.Sizes))
	for _, n := range opts.Sizes {
		path, ok := idx.Path(n, "png")
		if !ok {
			r := Report{Size: n}
			r.problemf("icon%d.png missing", n)
			reports = append(reports, r)
			continue
		}

		r, err := CheckPNG(path, n)
		if err != nil {
			return reports, err
		}
		if r.OK() && opts.Supersample <= 1 {
			checkRoundTrip(&r, opts.Style)
		}
		for _, f := range idx.Formats(n) {
			if f == "png" {
				continue
			}
			checkExtra(&r, idx, n, f)
		}

		if r.OK() {
			logger.Info().Str("path", r.Path).Int("size", n).Msg("Icon verified")
		} else {
			logger.Warn().Str("path", r.Path).Int("problems", len(r.Problems)).Msg("Icon failed verification")
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func checkRoundTrip(r *Report, style raster.Style) {
	img, err := Load(r.Path)
	if err != nil {
		r.problemf("%v", err)
		return
	}
	want, err := raster.Rasterize(r.Size, style)
	if err != nil {
		r.problemf("%v", err)
		return
	}
	if !bytes.Equal(img.Pix, want.Color) {
		r.problemf("pixels differ from a fresh %dx%d render", r.Size, r.Size)
		return
	}
	r.RoundTrip = true
}

func checkExtra(r *Report, idx *Index, n int, format string) {
	path, _ := idx.Path(n, format)
	img, err := Load(path)
	if err != nil {
		r.problemf("%v", err)
		return
	}
	if b := img.Bounds(); b.Dx() != n || b.Dy() != n {
		r.problemf("%s is %dx%d, want %dx%d", format, b.Dx(), b.Dy(), n, n)
		return
	}
	r.Extras = append(r.Extras, format)
}
