package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"

	"quaero-icons/internal/raster"
)

// Config holds everything one generation run needs.
type Config struct {
	OutputDir   string
	Sizes       []int
	Style       raster.Style
	Supersample int
	Formats     []string // extras; "png" is always written first
	Manifest    bool
}

// Result describes one file written by Run.
type Result struct {
	Size   int    `json:"size"`
	Format string `json:"format"`
	Path   string `json:"path"`
	Bytes  int64  `json:"bytes"`
}

// FileName returns the conventional name for an icon of size n, e.g. icon48.png.
func FileName(n int, format string) string {
	return fmt.Sprintf("icon%d.%s", n, format)
}

// Run creates the output directory if needed and writes every requested size
// in every requested format. Sizes are processed in order; each is rasterized
// once and handed to each encoder. The first failure stops the run.
func Run(cfg Config, logger arbor.ILogger, progress io.Writer) ([]Result, error) {
	if progress == nil {
		progress = io.Discard
	}
	if len(cfg.Sizes) == 0 {
		return nil, errors.New("batch: no sizes requested")
	}
	formats := pngFirst(cfg.Formats)
	for _, f := range formats {
		if _, ok := encoders[f]; !ok {
			return nil, fmt.Errorf("batch: unknown format %q", f)
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: create output dir %s: %w", cfg.OutputDir, err)
	}
	logger.Debug().Str("dir", cfg.OutputDir).Int("sizes", len(cfg.Sizes)).Msg("Output directory ready")

	var results []Result
	for _, n := range cfg.Sizes {
		fb, err := raster.RasterizeSupersampled(n, cfg.Supersample, cfg.Style)
		if err != nil {
			return results, fmt.Errorf("batch: rasterize %d: %w", n, err)
		}

		for _, f := range formats {
			path := filepath.Join(cfg.OutputDir, FileName(n, f))
			size, err := writeIcon(path, f, fb)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("Icon write failed")
				return results, err
			}
			results = append(results, Result{Size: n, Format: f, Path: path, Bytes: size})
			logger.Info().Str("path", path).Int("size", n).Int("bytes", int(size)).Msg("Icon written")
			fmt.Fprintf(progress, "  Created %s (%dx%d, %d bytes)\n", filepath.Base(path), n, n, size)
		}
	}

	if cfg.Manifest {
		manifestPath := filepath.Join(cfg.OutputDir, ManifestName)
		if err := WriteManifest(manifestPath, results); err != nil {
			return results, err
		}
		fmt.Fprintf(progress, "  Manifest: %s\n", manifestPath)
	}

	fmt.Fprintf(progress, "Done: %d icon file(s) in %s\n", len(results), cfg.OutputDir)
	return results, nil
}

// pngFirst returns formats with "png" at the front and duplicates removed.
func pngFirst(formats []string) []string {
	out := []string{"png"}
	seen := map[string]bool{"png": true}
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// writeIcon encodes fb through a buffered writer and returns the file size.
func writeIcon(path, format string, fb *raster.FrameBuffer) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("batch: create %s: %w", path, err)
	}

	cw := &countingWriter{w: f}
	bw := bufio.NewWriter(cw)
	if err := encoders[format](bw, fb); err != nil {
		f.Close()
		return 0, fmt.Errorf("batch: encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return 0, fmt.Errorf("batch: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("batch: close %s: %w", path, err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
