package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"

	"quaero-icons/internal/raster"
)

// Output formats. PNG is always written; the others are optional extras.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
	FormatTGA  = "tga"
	FormatICO  = "ico"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds the output location and render settings.
type Config struct {
	OutputDir string   `toml:"output_dir" json:"output_dir" env:"ICONGEN_OUTPUT_DIR"`
	Sizes     []int    `toml:"sizes" json:"sizes" env:"ICONGEN_SIZES"`
	Formats   []string `toml:"formats" json:"formats" env:"ICONGEN_FORMATS"`
	Manifest  bool     `toml:"manifest" json:"manifest" env:"ICONGEN_MANIFEST"`

	// Render settings
	Variant         string `toml:"variant" json:"variant" env:"ICONGEN_VARIANT"`
	Supersample     int    `toml:"supersample" json:"supersample" env:"ICONGEN_SUPERSAMPLE"`
	FillColor       string `toml:"fill_color" json:"fill_color" env:"ICONGEN_FILL_COLOR"`
	GlyphColor      string `toml:"glyph_color" json:"glyph_color" env:"ICONGEN_GLYPH_COLOR"`
	BackgroundColor string `toml:"background_color" json:"background_color" env:"ICONGEN_BACKGROUND_COLOR"`

	LogLevel string `toml:"log_level" json:"log_level" env:"ICONGEN_LOG_LEVEL"`
}

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "info"

// Default returns the settings used when nothing else is configured: the
// three extension icon sizes written as PNG into ./icons and nothing else.
func Default() Config {
	return Config{
		OutputDir:   "icons",
		Sizes:       []int{16, 48, 128},
		Formats:     []string{FormatPNG},
		Variant:     raster.VariantClassic,
		Supersample: 1,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads a TOML or JSON file (chosen by extension) over the defaults.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ICONGEN_* environment variables. Unset
// variables leave the field untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Flags holds CLI flag values that override file and environment settings.
type Flags struct {
	OutputDir   string
	Variant     string
	Formats     []string
	Sizes       []int
	Supersample int
	LogLevel    string
}

// Resolve applies non-zero flags and normalises the result.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Variant != "" {
		c.Variant = flags.Variant
	}
	if len(flags.Formats) > 0 {
		c.Formats = flags.Formats
	}
	if len(flags.Sizes) > 0 {
		c.Sizes = flags.Sizes
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	// Defaults for anything a file or env var blanked out
	if c.OutputDir == "" {
		c.OutputDir = "icons"
	}
	if c.Variant == "" {
		c.Variant = raster.VariantClassic
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Formats = normalizeFormats(c.Formats)
}

// normalizeFormats lower-cases, de-duplicates and guarantees PNG comes first.
func normalizeFormats(in []string) []string {
	out := []string{FormatPNG}
	seen := map[string]bool{FormatPNG: true}
	for _, f := range in {
		f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// Validate checks sizes, formats and the style the config describes.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: no sizes", ErrInvalid)
	}
	seen := map[int]bool{}
	for _, n := range c.Sizes {
		if n <= 0 || n > raster.MaxSize {
			return fmt.Errorf("%w: size %d not in 1..%d", ErrInvalid, n, raster.MaxSize)
		}
		if seen[n] {
			return fmt.Errorf("%w: size %d listed twice", ErrInvalid, n)
		}
		seen[n] = true
	}
	for _, f := range c.Formats {
		switch f {
		case FormatPNG, FormatWebP, FormatTGA, FormatICO:
		default:
			return fmt.Errorf("%w: unknown format %q", ErrInvalid, f)
		}
	}
	if c.Supersample > raster.MaxSupersample {
		return fmt.Errorf("%w: supersample %d exceeds %d", ErrInvalid, c.Supersample, raster.MaxSupersample)
	}
	if _, err := arbor.ParseLevelString(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	if _, err := c.Style(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Style builds the raster style: the named variant with any colour overrides.
func (c Config) Style() (raster.Style, error) {
	s, err := raster.StyleFor(c.Variant)
	if err != nil {
		return raster.Style{}, err
	}
	for _, o := range []struct {
		hex string
		dst *color.NRGBA
	}{
		{c.FillColor, &s.Fill},
		{c.GlyphColor, &s.Glyph},
		{c.BackgroundColor, &s.Background},
	} {
		if o.hex == "" {
			continue
		}
		col, err := raster.ParseHexColor(o.hex)
		if err != nil {
			return raster.Style{}, err
		}
		*o.dst = col
	}
	return s, s.Validate()
}
