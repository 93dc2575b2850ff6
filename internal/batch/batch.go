package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/merge"
)

// DefaultCombinedName is the merged document name used when none is set.
const DefaultCombinedName = "combined.pdf"

// Renderer renders one URL to PDF bytes. *docs2pdf.Converter implements it.
type Renderer interface {
	Convert(ctx context.Context, url string, opts *docs2pdf.PDFOptions) ([]byte, error)
}

var _ Renderer = (*docs2pdf.Converter)(nil)

// Options configures Run.
type Options struct {
	OutputDir    string
	Namer        func(url string) string // file name without extension (default: fileutil.NameFromURL)
	Combine      bool
	CombinedName string // default: DefaultCombinedName
	PDF          *docs2pdf.PDFOptions
	Done         string // printed after the last URL, before merging

	// Stdout receives progress lines, Stderr per-URL errors.
	// Both default to io.Discard.
	Stdout io.Writer
	Stderr io.Writer
}

// Failure records a URL that could not be converted.
type Failure struct {
	URL string
	Err error
}

// Report is the outcome of Run.
type Report struct {
	Written  []string // paths in conversion order, the merge input order
	Failed   []Failure
	Stats    *merge.Stats // nil unless a merge ran
	Canceled bool         // the context ended before every URL was tried
}

// CombinedPath returns where the merged document of opts is written.
func (o Options) CombinedPath() string {
	name := o.CombinedName
	if name == "" {
		name = DefaultCombinedName
	}
	return fileutil.PDFPath(o.OutputDir, name)
}

func (o Options) withDefaults() Options {
	if o.Namer == nil {
		o.Namer = fileutil.NameFromURL
	}
	if o.Stdout == nil {
		o.Stdout = io.Discard
	}
	if o.Stderr == nil {
		o.Stderr = io.Discard
	}
	return o
}

// Run converts urls in order into opts.OutputDir.
//
// Blank entries are ignored. A failing URL is logged and recorded in
// Report.Failed. When opts.Combine is set and at least one file was written,
// the written files are merged into CombinedPath. The returned report is
// never nil, even with an error.
func Run(ctx context.Context, r Renderer, urls []string, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	report := &Report{}

	targets := trimURLs(urls)
	if len(targets) == 0 {
		return report, ErrNoURLs
	}

	if err := fileutil.EnsureDir(opts.OutputDir); err != nil {
		return report, fmt.Errorf("%w: %v", ErrOutputDir, err)
	}

	total := len(targets)
	for i, u := range targets {
		if ctx.Err() != nil {
			report.Canceled = true
			break
		}

		fmt.Fprintf(opts.Stdout, "[%d/%d] Converting %s\n", i+1, total, u)

		path, err := convertOne(ctx, r, u, opts)
		if err != nil {
			fmt.Fprintf(opts.Stderr, "  Error: %v\n", err)
			report.Failed = append(report.Failed, Failure{URL: u, Err: err})
			continue
		}

		fmt.Fprintf(opts.Stdout, "  Saved to %s\n", path)
		report.Written = append(report.Written, path)
	}

	if opts.Done != "" && !report.Canceled {
		fmt.Fprintln(opts.Stdout, opts.Done)
	}

	if !opts.Combine || len(report.Written) == 0 || report.Canceled {
		return report, nil
	}

	m := merge.New(merge.WithOutput(opts.Stdout, opts.Stderr))
	stats, err := m.Merge(report.Written, opts.CombinedPath())
	if err != nil {
		return report, err
	}
	report.Stats = stats
	return report, nil
}

// convertOne renders u and writes it under opts.OutputDir.
func convertOne(ctx context.Context, r Renderer, u string, opts Options) (string, error) {
	pdf, err := r.Convert(ctx, u, opts.PDF)
	if err != nil {
		return "", err
	}

	path := fileutil.PDFPath(opts.OutputDir, opts.Namer(u))
	if err := os.WriteFile(path, pdf, 0o644); err != nil { // #nosec G306 -- output PDF is meant to be shared
		return "", fmt.Errorf("%w: %s: %v", ErrWritePDF, filepath.Base(path), err)
	}
	return path, nil
}

func trimURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
