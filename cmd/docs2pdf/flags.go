package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// browserFlags selects and bounds the headless browser.
type browserFlags struct {
	engine  string
	timeout string
}

// pdfFlags holds print options. Zero values mean "not set".
type pdfFlags struct {
	format       string
	landscape    bool
	scale        float64
	margin       string
	noBackground bool
}

// combineFlags controls merging of a batch into one document.
type combineFlags struct {
	combine      bool
	combinedName string
}

// renderFlags groups everything a command that prints pages accepts.
type renderFlags struct {
	common  commonFlags
	browser browserFlags
	pdf     pdfFlags
}

// convertFlags holds flags for the convert command.
type convertFlags struct {
	render renderFlags
	output string
}

// batchFlags holds flags for the bulk and urls commands.
type batchFlags struct {
	render    renderFlags
	outputDir string
	combine   combineFlags
}

// sourceFlags holds flags for the svelte and sveltekit commands.
type sourceFlags struct {
	render      renderFlags
	outputDir   string
	combine     combineFlags
	noLegacy    bool
	noV4        bool
	noMigration bool
	exclude     []string
	links       string
}

// docsFlags holds flags for the docs command.
type docsFlags struct {
	render        renderFlags
	noCombine     bool
	noLegacy      bool
	noV4          bool
	noMigration   bool
	noExtract     bool
	svelteDir     string
	sveltekitDir  string
	svelteName    string
	sveltekitName string
}

// extractFlags holds flags for the extract command.
type extractFlags struct {
	common  commonFlags
	browser browserFlags
	dir     string
}

// mergeFlags holds flags for the merge command.
type mergeFlags struct {
	quiet   bool
	verbose bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.config, "config", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addBrowserFlags adds browser flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.engine, "engine", "", "browser engine: rod, chromedp")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 60s, 2m)")
}

// addPDFFlags adds print option flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.StringVar(&f.format, "format", "", "paper format: a4, letter, legal, a3, ...")
	fs.BoolVar(&f.landscape, "landscape", false, "landscape orientation")
	fs.Float64Var(&f.scale, "scale", 0, "print scale (0.1-2.0, default: 0.7)")
	fs.StringVar(&f.margin, "margin", "", "margin on every side (e.g., 1cm, 0.5in)")
	fs.BoolVar(&f.noBackground, "no-background", false, "do not print background graphics")
}

// addRenderFlags adds the flags of every page-printing command.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	addCommonFlags(fs, &f.common)
	addBrowserFlags(fs, &f.browser)
	addPDFFlags(fs, &f.pdf)
}

// addCombineFlags adds merge flags to a FlagSet.
func addCombineFlags(fs *flag.FlagSet, f *combineFlags) {
	fs.BoolVarP(&f.combine, "combine", "c", false, "merge the PDFs into one document")
	fs.StringVar(&f.combinedName, "combined-name", "", "name of the merged PDF")
}

// newFlagSet creates a FlagSet that reports errors to the caller.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := newFlagSet("convert")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF file (default: output.pdf)")
	addRenderFlags(fs, &f.render)
	return fs
}

func newBatchFlagSet(name string, f *batchFlags) *flag.FlagSet {
	fs := newFlagSet(name)
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "output directory (default: output)")
	addCombineFlags(fs, &f.combine)
	addRenderFlags(fs, &f.render)
	return fs
}

func newSourceFlagSet(name string, f *sourceFlags) *flag.FlagSet {
	fs := newFlagSet(name)
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "output directory")
	addCombineFlags(fs, &f.combine)
	if name == cmdSvelte {
		fs.BoolVar(&f.noLegacy, "no-legacy", false, `skip links containing "legacy"`)
		fs.BoolVar(&f.noV4, "no-v4", false, "skip the v4 migration guide")
	} else {
		fs.BoolVar(&f.noMigration, "no-migration", false, "skip migration guides")
	}
	fs.StringArrayVar(&f.exclude, "exclude", nil, "skip links containing this text (repeatable)")
	fs.StringVar(&f.links, "links", "", "link list file (.txt, .yaml, .md)")
	addRenderFlags(fs, &f.render)
	return fs
}

func newDocsFlagSet(f *docsFlags) *flag.FlagSet {
	fs := newFlagSet(cmdDocs)
	fs.BoolVar(&f.noCombine, "no-combine", false, "do not merge each documentation set")
	fs.BoolVar(&f.noLegacy, "no-legacy", false, `skip Svelte links containing "legacy"`)
	fs.BoolVar(&f.noV4, "no-v4", false, "skip the Svelte v4 migration guide")
	fs.BoolVar(&f.noMigration, "no-migration", false, "skip SvelteKit migration guides")
	fs.BoolVar(&f.noExtract, "no-extract", false, "use the existing link lists")
	fs.StringVar(&f.svelteDir, "svelte-dir", "", "output directory for Svelte PDFs")
	fs.StringVar(&f.sveltekitDir, "sveltekit-dir", "", "output directory for SvelteKit PDFs")
	fs.StringVar(&f.svelteName, "svelte-name", "", "name of the merged Svelte PDF")
	fs.StringVar(&f.sveltekitName, "sveltekit-name", "", "name of the merged SvelteKit PDF")
	addRenderFlags(fs, &f.render)
	return fs
}

func newExtractFlagSet(f *extractFlags) *flag.FlagSet {
	fs := newFlagSet(cmdExtract)
	fs.StringVar(&f.dir, "dir", "", "asset directory receiving links/ (default: .)")
	addCommonFlags(fs, &f.common)
	addBrowserFlags(fs, &f.browser)
	return fs
}

func newMergeFlagSet(f *mergeFlags) *flag.FlagSet {
	fs := newFlagSet(cmdMerge)
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "list the size of every merged file")
	return fs
}

// parseArgs parses args with fs and returns the positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

func newDoctorFlagSet(jsonOutput *bool) *flag.FlagSet {
	fs := newFlagSet(cmdDoctor)
	fs.BoolVar(jsonOutput, "json", false, "print the diagnostics as JSON")
	return fs
}
