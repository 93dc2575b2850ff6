package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-docs2pdf/internal/batch"
)

// runDocs refreshes the link lists, then converts the Svelte and SvelteKit
// documentation, each merged into one PDF unless --no-combine is given.
func runDocs(ctx context.Context, args []string, env *Environment) error {
	f := &docsFlags{}
	positional, err := parseArgs(newDocsFlagSet(f), args)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: docs takes no arguments, got %q", ErrUsage, positional[0])
	}

	s, err := openSession(f.render, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.renderer.Close() }()

	out := progress(env, f.render.common.quiet)
	verbose := f.render.common.verbose
	start := env.Now()
	sources := configuredSources(s.cfg)

	if f.noExtract {
		fmt.Fprintln(out, "Skipping link extraction as requested (--no-extract)")
	} else {
		fmt.Fprintln(out, "\n=== EXTRACTING DOCUMENTATION LINKS ===")
		fmt.Fprintln(out, "Running link extraction to get the latest documentation links...")
		if err := extractAll(ctx, s.renderer, sources, assetDir(s.cfg), out); err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(env.Stderr, "Error extracting links: %v\n", err)
			fmt.Fprintln(out, "Continuing with existing link files...")
		}
	}

	svelteCfg, kitCfg := s.cfg.Sources.Svelte, s.cfg.Sources.SvelteKit

	var svelteFilters []linkFilter
	if f.noLegacy {
		svelteFilters = append(svelteFilters, legacyFilter)
	}
	if f.noV4 {
		svelteFilters = append(svelteFilters, v4Filter)
	}
	var kitFilters []linkFilter
	if f.noMigration {
		kitFilters = append(kitFilters, migrationFilter)
	}

	runs := []struct {
		heading string
		run     sourceRun
	}{
		{
			heading: "\n=== GENERATING SVELTE DOCUMENTATION ===",
			run: sourceRun{
				source:       sources[0],
				outputDir:    firstNonEmpty(f.svelteDir, svelteCfg.Dir),
				combine:      !f.noCombine,
				combinedName: firstNonEmpty(f.svelteName, svelteCfg.CombinedName),
				filters:      append(svelteFilters, excludeFilters(svelteCfg.Exclude)...),
				verbose:      verbose,
			},
		},
		{
			heading: "\n=== GENERATING SVELTEKIT DOCUMENTATION ===",
			run: sourceRun{
				source:       sources[1],
				outputDir:    firstNonEmpty(f.sveltekitDir, kitCfg.Dir),
				combine:      !f.noCombine,
				combinedName: firstNonEmpty(f.sveltekitName, kitCfg.CombinedName),
				filters:      append(kitFilters, excludeFilters(kitCfg.Exclude)...),
				verbose:      verbose,
			},
		},
	}

	var errs []error
	var summary []string
	for _, r := range runs {
		fmt.Fprintln(out, r.heading)
		report, err := runSource(ctx, s, r.run, env, out)
		if ctx.Err() != nil {
			return err
		}
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error generating %s documentation: %v\n", r.run.source.Title, err)
			errs = append(errs, fmt.Errorf("%s: %w", r.run.source.Title, err))
			continue
		}
		summary = append(summary, docsSummary(r.run, report))
	}

	fmt.Fprintln(out, "\n=== DOCUMENTATION GENERATION COMPLETE ===")
	for _, line := range summary {
		fmt.Fprintln(out, line)
	}
	printElapsed(env, verbose, start)

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d documentation sets failed: %w", len(errs), len(runs), errors.Join(errs...))
	}
	return nil
}

// docsSummary is the closing line of one documentation set.
func docsSummary(run sourceRun, report *batch.Report) string {
	if report.Stats != nil {
		return fmt.Sprintf("%s docs saved to: %s (with combined PDF: %s)", run.source.Title, run.outputDir, run.combinedName)
	}
	return fmt.Sprintf("%s docs saved to: %s", run.source.Title, run.outputDir)
}
