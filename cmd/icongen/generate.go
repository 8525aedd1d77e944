package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quaero-icons/internal/batch"
)

func runGenerate(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	style, err := cfg.Style()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, decorate("Icon generator", colorStatus))
	fmt.Fprintf(out, "Variant: %s, Sizes: %s, Formats: %s\n",
		cfg.Variant, joinInts(cfg.Sizes), strings.Join(cfg.Formats, ","))
	fmt.Fprintf(out, "Output: %s\n", cfg.OutputDir)
	fmt.Fprintln(out, "------------------------------------------------------------")

	start := time.Now()
	results, err := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Sizes:       cfg.Sizes,
		Style:       style,
		Supersample: cfg.Supersample,
		Formats:     cfg.Formats,
		Manifest:    cfg.Manifest,
	}, opts.logger, out)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "------------------------------------------------------------")
	fmt.Fprintln(out, decorate(fmt.Sprintf("Icons generated: %d file(s) in %.2fs", len(results), time.Since(start).Seconds()), colorSuccess))
	return nil
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = fmt.Sprint(n)
	}
	return strings.Join(s, ",")
}

// stdoutIsTerminal is swapped in tests.
var stdoutIsTerminal = func() bool { return isTerminal(os.Stdout) }
