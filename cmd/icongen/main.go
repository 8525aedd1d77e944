// icongen renders the extension icon (a letter glyph inside a circle) at
// 16, 48 and 128 pixels and writes icon16.png, icon48.png and icon128.png.
//
// Usage: go run ./cmd/icongen [--output icons] [--config icongen.toml] [--log-level info]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"

	"quaero-icons/internal/config"
)

// options holds the flag values shared by every subcommand.
type options struct {
	configFile  string
	outputDir   string
	variant     string
	formats     []string
	sizes       []int
	supersample int
	logLevel    string

	logger arbor.ILogger
}

func newRootCmd(logger arbor.ILogger) *cobra.Command {
	opts := &options{logger: logger}

	root := &cobra.Command{
		Use:           "icongen",
		Short:         "Render the extension icon set as PNG files",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "Path to a TOML or JSON config file")
	pf.StringVarP(&opts.outputDir, "output", "o", "", "Output directory (default: icons)")
	pf.StringVar(&opts.variant, "variant", "", "Icon variant: classic or solid (default: classic)")
	pf.IntSliceVar(&opts.sizes, "sizes", nil, "Icon sizes in pixels (default: 16,48,128)")
	pf.IntVar(&opts.supersample, "supersample", 0, "Render at N× and downsample for smooth edges (default: 1)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (default: info)")
	root.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, "Extra output formats: webp, tga, ico")

	root.AddCommand(newVerifyCmd(opts))
	return root
}

// loadConfig layers defaults, the config file, ICONGEN_* variables and flags.
func (o *options) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		var err error
		cfg, err = config.Load(o.configFile)
		if err != nil {
			return config.Config{}, err
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}

	cfg.Resolve(config.Flags{
		OutputDir:   o.outputDir,
		Variant:     o.variant,
		Formats:     o.formats,
		Sizes:       o.sizes,
		Supersample: o.supersample,
		LogLevel:    o.logLevel,
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	o.logger = o.logger.WithLevelFromString(cfg.LogLevel)
	return cfg, nil
}

// newLogger writes structured events to stderr so stdout carries only the
// progress lines.
func newLogger() arbor.ILogger {
	return arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:       models.LogWriterTypeConsole,
		TimeFormat: "15:04:05",
		TextOutput: true,
	})
}

func main() {
	if err := newRootCmd(newLogger()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, decorate("Error: "+err.Error(), colorError))
		os.Exit(1)
	}
}
