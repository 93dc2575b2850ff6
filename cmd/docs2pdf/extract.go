package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alnah/go-docs2pdf/internal/links"
)

// linksPath returns where the list of source name is stored under dir.
func linksPath(dir, name string) string {
	return filepath.Join(dir, "links", name+".yaml")
}

// extractAll scrapes every source and saves its list under dir. A failing
// source does not stop the others; the failures are returned together.
func extractAll(ctx context.Context, f links.Fetcher, sources []links.Source, dir string, out io.Writer) error {
	var errs []error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(out, "\nOpening %s documentation at %s\n", src.Title, src.IndexURL)
		fmt.Fprintf(out, "Extracting %s links...\n", src.Title)

		urls, err := links.Extract(ctx, f, src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Title, err))
			continue
		}

		path := linksPath(dir, src.Name)
		if err := links.Save(path, links.List{Source: src.Name, Links: urls}); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Title, err))
			continue
		}
		fmt.Fprintf(out, "Complete %s links extracted successfully (%d links in %s)\n", src.Title, len(urls), path)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrExtract, errors.Join(errs...))
	}
	fmt.Fprintln(out, "\nExtraction complete!")
	return nil
}

// runExtract refreshes the link lists from the live documentation.
func runExtract(ctx context.Context, args []string, env *Environment) error {
	f := &extractFlags{}
	positional, err := parseArgs(newExtractFlagSet(f), args)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: extract takes no arguments, got %q", ErrUsage, positional[0])
	}

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	resolver, err := newAssetResolver(cfg)
	if err != nil {
		return err
	}
	ropts, err := resolveRendererOptions(cfg, f.browser, resolver)
	if err != nil {
		return err
	}

	r, err := env.NewRenderer(ropts)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	start := env.Now()
	dir := firstNonEmpty(f.dir, assetDir(cfg))
	if err := extractAll(ctx, r, configuredSources(cfg), dir, progress(env, f.common.quiet)); err != nil {
		return err
	}
	printElapsed(env, f.common.verbose, start)
	return nil
}
