package main

import (
	"context"
	"fmt"
	"io"

	"github.com/alnah/go-docs2pdf/internal/assets"
	"github.com/alnah/go-docs2pdf/internal/batch"
	"github.com/alnah/go-docs2pdf/internal/config"
	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/links"
)

// linkFilter drops the links containing pattern. label names them in the
// "Filtered out" line.
type linkFilter struct {
	pattern string
	label   string
}

// Filters of the curated lists.
var (
	legacyFilter    = linkFilter{pattern: "legacy", label: "legacy"}
	v4Filter        = linkFilter{pattern: "v4-migration-guide", label: "v4-migration-guide"}
	migrationFilter = linkFilter{pattern: "migrat", label: "migration guide"}
)

// sourceRun describes one conversion of a curated documentation set.
type sourceRun struct {
	source       links.Source
	linksFile    string // --links; empty = links/<source>.yaml
	outputDir    string
	combine      bool
	combinedName string
	filters      []linkFilter
	verbose      bool
}

// configuredSources returns the built-in sources with index URLs from cfg.
func configuredSources(cfg *config.Config) []links.Source {
	return []links.Source{
		withIndexURL(links.Svelte, cfg.Sources.Svelte),
		withIndexURL(links.SvelteKit, cfg.Sources.SvelteKit),
	}
}

// sourceConfig returns the config section of src.
func sourceConfig(cfg *config.Config, src links.Source) config.SourceConfig {
	if src.Name == links.SvelteKit.Name {
		return cfg.Sources.SvelteKit
	}
	return cfg.Sources.Svelte
}

// excludeFilters turns exclude patterns into filters.
func excludeFilters(patterns ...[]string) []linkFilter {
	var filters []linkFilter
	for _, list := range patterns {
		for _, p := range list {
			filters = append(filters, linkFilter{pattern: p, label: fmt.Sprintf("%q", p)})
		}
	}
	return filters
}

// loadSourceLinks reads the link list of a run: the --links file, or the
// list named after the source (asset directory first, then embedded).
func loadSourceLinks(loader assets.AssetLoader, run sourceRun) ([]string, error) {
	if run.linksFile != "" {
		return links.Load(run.linksFile)
	}
	data, err := loader.LoadLinks(run.source.Name)
	if err != nil {
		return nil, err
	}
	return links.Parse(data, links.FormatYAML)
}

// applyFilters applies each filter in turn and reports what it removed.
func applyFilters(w io.Writer, urls []string, filters []linkFilter) []string {
	for _, f := range filters {
		var removed int
		urls, removed = links.Filter(urls, f.pattern)
		fmt.Fprintf(w, "Filtered out %d %s links\n", removed, f.label)
	}
	return urls
}

// runSource converts one curated documentation set, one PDF per page named
// after the last path segment.
func runSource(ctx context.Context, s *session, run sourceRun, env *Environment, out io.Writer) (*batch.Report, error) {
	urls, err := loadSourceLinks(s.assets, run)
	if err != nil {
		return nil, err
	}

	urls = applyFilters(out, urls, run.filters)
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: every %s link was filtered out", ErrNoURLs, run.source.Title)
	}

	fmt.Fprintf(out, "Found %d %s documentation URLs to process.\n", len(urls), run.source.Title)
	printSelectors(out)

	report, err := batch.Run(ctx, s.renderer, urls, batch.Options{
		OutputDir:    run.outputDir,
		Namer:        fileutil.NameFromLastSegment,
		Combine:      run.combine,
		CombinedName: run.combinedName,
		PDF:          s.pdf,
		Done:         fmt.Sprintf("%s documentation conversion complete.", run.source.Title),
		Stdout:       out,
		Stderr:       env.Stderr,
	})
	if err != nil {
		return nil, err
	}
	if err := finishBatch(ctx, env, report, len(urls)); err != nil {
		return report, err
	}
	if report.Stats != nil {
		printStats(out, run.source.Title+" ", report.Stats, run.verbose)
	}
	return report, nil
}

// runSvelte converts the Svelte documentation.
func runSvelte(ctx context.Context, args []string, env *Environment) error {
	return runSourceCmd(ctx, cmdSvelte, links.Svelte, args, env)
}

// runSvelteKit converts the SvelteKit documentation.
func runSvelteKit(ctx context.Context, args []string, env *Environment) error {
	return runSourceCmd(ctx, cmdSvelteKit, links.SvelteKit, args, env)
}

// runSourceCmd is the shared body of the svelte and sveltekit commands.
func runSourceCmd(ctx context.Context, name string, src links.Source, args []string, env *Environment) error {
	f := &sourceFlags{}
	positional, err := parseArgs(newSourceFlagSet(name, f), args)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %s takes no arguments, got %q", ErrUsage, name, positional[0])
	}

	s, err := openSession(f.render, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.renderer.Close() }()

	srcCfg := sourceConfig(s.cfg, src)
	var filters []linkFilter
	if f.noLegacy {
		filters = append(filters, legacyFilter)
	}
	if f.noV4 {
		filters = append(filters, v4Filter)
	}
	if f.noMigration {
		filters = append(filters, migrationFilter)
	}
	filters = append(filters, excludeFilters(srcCfg.Exclude, f.exclude)...)

	out := progress(env, f.render.common.quiet)
	start := env.Now()

	_, err = runSource(ctx, s, sourceRun{
		source:       withIndexURL(src, srcCfg),
		linksFile:    f.links,
		outputDir:    firstNonEmpty(f.outputDir, srcCfg.Dir),
		combine:      f.combine.combine,
		combinedName: firstNonEmpty(f.combine.combinedName, srcCfg.CombinedName),
		filters:      filters,
		verbose:      f.render.common.verbose,
	}, env, out)
	if err != nil {
		return err
	}

	printElapsed(env, f.render.common.verbose, start)
	return nil
}

// withIndexURL applies the configured index URL to src.
func withIndexURL(src links.Source, cfg config.SourceConfig) links.Source {
	if cfg.IndexURL != "" {
		src.IndexURL = cfg.IndexURL
	}
	return src
}
