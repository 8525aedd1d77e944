package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quaero-icons/internal/inspect"
)

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check previously generated icons: signature, checksums, IHDR size and pixels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts)
		},
	}
}

func runVerify(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	style, err := cfg.Style()
	if err != nil {
		return err
	}

	reports, err := inspect.Verify(cfg.OutputDir, inspect.VerifyOptions{
		Sizes:       cfg.Sizes,
		Style:       style,
		Supersample: cfg.Supersample,
	}, opts.logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range reports {
		if r.OK() {
			detail := "structure ok"
			if r.RoundTrip {
				detail += ", pixels match"
			}
			if len(r.Extras) > 0 {
				detail += ", extras: " + strings.Join(r.Extras, ",")
			}
			fmt.Fprintf(out, "  %s %dx%d: %s\n", decorate("OK  ", colorSuccess), r.Size, r.Size, detail)
			continue
		}
		failed++
		fmt.Fprintf(out, "  %s %dx%d:\n", decorate("FAIL", colorError), r.Size, r.Size)
		for _, p := range r.Problems {
			fmt.Fprintf(out, "      %s\n", p)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d icon(s) failed verification", failed, len(reports))
	}
	fmt.Fprintf(out, "All %d icon(s) verified in %s\n", len(reports), cfg.OutputDir)
	return nil
}
