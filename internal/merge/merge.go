package merge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// emptyMediaBox is the A4 media box, in points, of the page tree written
// when no input was accepted. The tree itself has no pages.
const emptyMediaBox = "[0 0 595 842]"

func init() {
	// pdfcpu otherwise creates ~/.config/pdfcpu on first use.
	api.DisableConfigDir()
}

// Merger combines PDF files. The zero value is not usable; create with New.
type Merger struct {
	stdout io.Writer
	stderr io.Writer
	conf   *model.Configuration
	splice spliceFunc
}

// spliceFunc appends the page tree of src to dest. It may leave dest
// partially modified when it fails.
type spliceFunc func(name string, src, dest *model.Context) error

func spliceXRefTables(name string, src, dest *model.Context) error {
	return pdfcpu.MergeXRefTables(name, src, dest, false, false)
}

// Option configures a Merger.
type Option func(*Merger)

// WithOutput sets where progress lines (stdout) and per-input warnings
// (stderr) are written. Both default to io.Discard.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(m *Merger) {
		if stdout != nil {
			m.stdout = stdout
		}
		if stderr != nil {
			m.stderr = stderr
		}
	}
}

// New creates a Merger.
func New(opts ...Option) *Merger {
	conf := model.NewDefaultConfiguration()
	// Outline entries named after temp files are noise in the combined document.
	conf.CreateBookmarks = false

	m := &Merger{
		stdout: io.Discard,
		stderr: io.Discard,
		conf:   conf,
		splice: spliceXRefTables,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// accumulator is the state threaded through the merge steps.
type accumulator struct {
	stats    Stats
	dest     *model.Context // nil until the first input is accepted
	accepted []source       // inputs whose pages are in dest, in order
}

// source is the raw content of an accepted input. dest is rebuilt from
// these when an append fails halfway.
type source struct {
	name string
	data []byte
}

// Merge writes the pages of every input, in order, to output and returns
// the statistics. Per-input failures are reported in Stats.Skipped; the
// returned error is non-nil only when the output cannot be written.
// An existing file at output is replaced.
func (m *Merger) Merge(inputs []string, output string) (*Stats, error) {
	if output == "" {
		return nil, ErrEmptyOutput
	}

	total := len(inputs)
	fmt.Fprintf(m.stdout, "\nMerging %d PDFs into a combined document...\n", total)

	acc := accumulator{stats: Stats{TotalFiles: total}}
	for i, path := range inputs {
		fmt.Fprintf(m.stdout, "  Processing [%d/%d]: %s\n", i+1, total, filepath.Base(path))

		next, err := m.step(acc, path)
		if errors.Is(err, errRestore) {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		if err != nil {
			fmt.Fprintf(m.stderr, "  Error processing %s: %v\n", path, err)
			next.stats.Skipped = append(next.stats.Skipped, Skipped{Path: path, Err: err})
		}
		acc = next
	}

	fmt.Fprintf(m.stdout, "\nTotal pages in combined document: %d\n", acc.stats.TotalPages)

	size, err := m.finalize(acc, output)
	if err != nil {
		return nil, err
	}
	acc.stats.CombinedSize = size

	fmt.Fprintf(m.stdout, "Combined PDF saved to: %s\n", output)

	stats := acc.stats
	return &stats, nil
}

// step reads, parses and appends one input. On a per-input error the
// returned accumulator holds exactly the pages of acc and the input must be
// skipped. errRestore means those pages could not be put back.
func (m *Merger) step(acc accumulator, path string) (accumulator, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- paths come from the batch driver or the user
	if err != nil {
		return acc, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	src, err := api.ReadAndValidate(bytes.NewReader(data), m.conf)
	if err != nil {
		return acc, fmt.Errorf("%w: %v", ErrParseInput, err)
	}

	name := filepath.Base(path)
	pages := src.PageCount

	next := acc
	if next.dest == nil {
		// The first accepted input becomes the document the others are appended to.
		src.EnsureVersionForWriting()
		next.dest = src
	} else if err := m.appendPages(name, src, next.dest); err != nil {
		// The splice may have copied pages into dest before failing.
		dest, rerr := m.rebuild(acc.accepted)
		if rerr != nil {
			return acc, fmt.Errorf("%w: %v", errRestore, rerr)
		}
		acc.dest = dest
		return acc, fmt.Errorf("%w: %v", ErrAppendPages, err)
	}

	next.accepted = append(acc.accepted[:len(acc.accepted):len(acc.accepted)], source{name: name, data: data})
	next.stats = next.stats.record(name, pages, int64(len(data)))
	return next, nil
}

// appendPages splices the page tree of src after the pages of dest.
// pdfcpu may panic on malformed object graphs that passed validation.
func (m *Merger) appendPages(name string, src, dest *model.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return m.splice(name, src, dest)
}

// rebuild parses and merges sources again into a fresh document.
// Returns nil for an empty list.
func (m *Merger) rebuild(sources []source) (*model.Context, error) {
	var dest *model.Context
	for _, s := range sources {
		ctx, err := api.ReadAndValidate(bytes.NewReader(s.data), m.conf)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", s.name, err)
		}
		if dest == nil {
			ctx.EnsureVersionForWriting()
			dest = ctx
			continue
		}
		if err := m.appendPages(s.name, ctx, dest); err != nil {
			return nil, fmt.Errorf("%s: %v", s.name, err)
		}
	}
	return dest, nil
}

// finalize serializes the combined document and writes it to output.
func (m *Merger) finalize(acc accumulator, output string) (int64, error) {
	var data []byte
	if acc.dest == nil {
		data = emptyDocument()
	} else {
		var buf bytes.Buffer
		if err := api.WriteContext(acc.dest, &buf); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(output, data, 0o644); err != nil { // #nosec G306 -- output PDF is meant to be shared
		return 0, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return int64(len(data)), nil
}

// emptyDocument returns a PDF with a catalog and a page tree of zero pages.
func emptyDocument() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 /MediaBox " + emptyMediaBox + " >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
