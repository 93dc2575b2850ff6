package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-docs2pdf/internal/fileutil"
)

// runConvert renders a single page to one PDF file.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	f := &convertFlags{}
	positional, err := parseArgs(newConvertFlagSet(f), args)
	if err != nil {
		return usageError(err)
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: <url>", ErrMissingArgument)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: convert takes one URL, got %d (use 'urls' for several)", ErrUsage, len(positional))
	}
	url := positional[0]

	s, err := openSession(f.render, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.renderer.Close() }()

	out := progress(env, f.render.common.quiet)
	output := firstNonEmpty(f.output, s.cfg.Output.DefaultFileName)
	start := env.Now()

	fmt.Fprintf(out, "Converting %s to PDF...\n", url)
	printSelectors(out)

	pdf, err := s.renderer.Convert(ctx, url, s.pdf)
	if err != nil {
		return err
	}

	if err := writePDF(output, pdf); err != nil {
		return err
	}

	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	fmt.Fprintf(out, "PDF saved to %s\n", abs)
	printElapsed(env, f.render.common.verbose, start)
	return nil
}

// writePDF writes data to path, creating the parent directory.
func writePDF(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return fmt.Errorf("%w: %v", ErrWritePDF, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- output PDF is meant to be shared
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}
