package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-docs2pdf/internal/batch"
	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/links"
)

// runBulk converts every URL listed in a file.
func runBulk(ctx context.Context, args []string, env *Environment) error {
	f := &batchFlags{}
	positional, err := parseArgs(newBatchFlagSet(cmdBulk, f), args)
	if err != nil {
		return usageError(err)
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: <urls-file>", ErrMissingArgument)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: bulk takes one URL file, got %d", ErrUsage, len(positional))
	}

	urls, err := links.Load(positional[0])
	if errors.Is(err, links.ErrNoLinks) {
		return fmt.Errorf("%w in %s", ErrNoURLs, positional[0])
	}
	if err != nil {
		return err
	}

	return runURLList(ctx, urls, f, env, "Bulk conversion complete.")
}

// runURLs converts the URLs given as arguments.
func runURLs(ctx context.Context, args []string, env *Environment) error {
	f := &batchFlags{}
	positional, err := parseArgs(newBatchFlagSet(cmdURLs, f), args)
	if err != nil {
		return usageError(err)
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: <url>...", ErrMissingArgument)
	}

	return runURLList(ctx, positional, f, env, "Multiple URLs conversion complete.")
}

// runURLList is the shared body of bulk and urls. Files are named after
// host and path.
func runURLList(ctx context.Context, urls []string, f *batchFlags, env *Environment, done string) error {
	s, err := openSession(f.render, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.renderer.Close() }()

	out := progress(env, f.render.common.quiet)
	start := env.Now()

	fmt.Fprintf(out, "Found %d URLs to process.\n", len(urls))
	printSelectors(out)

	opts := batch.Options{
		OutputDir:    firstNonEmpty(f.outputDir, s.cfg.Output.DefaultDir),
		Namer:        fileutil.NameFromURL,
		Combine:      f.combine.combine,
		CombinedName: firstNonEmpty(f.combine.combinedName, s.cfg.Output.CombinedName),
		PDF:          s.pdf,
		Done:         done,
		Stdout:       out,
		Stderr:       env.Stderr,
	}

	report, err := batch.Run(ctx, s.renderer, urls, opts)
	if err != nil {
		return err
	}
	if err := finishBatch(ctx, env, report, len(urls)); err != nil {
		return err
	}
	if report.Stats != nil {
		printStats(out, "", report.Stats, f.render.common.verbose)
	}
	printElapsed(env, f.render.common.verbose, start)
	return nil
}

// finishBatch reports per-page failures and turns an interrupted run into
// an error. Failed pages alone do not fail the command.
func finishBatch(ctx context.Context, env *Environment, report *batch.Report, total int) error {
	if n := len(report.Failed); n > 0 {
		fmt.Fprintf(env.Stderr, "%d of %d pages failed\n", n, total)
	}
	if report.Canceled {
		return fmt.Errorf("interrupted after %d of %d pages: %w", len(report.Written)+len(report.Failed), total, context.Cause(ctx))
	}
	return nil
}
