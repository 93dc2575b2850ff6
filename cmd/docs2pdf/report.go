package main

import (
	"fmt"
	"io"
	"time"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/merge"
)

// progress returns where progress lines go: nowhere with --quiet.
func progress(env *Environment, quiet bool) io.Writer {
	if quiet {
		return io.Discard
	}
	return env.Stdout
}

// printSelectors announces the fixed extraction rule.
func printSelectors(w io.Writer) {
	fmt.Fprintf(w, "Using hardcoded selectors: %s\n", docs2pdf.DefaultExtractionRule)
}

// printStats writes the statistics block of a merge. title prefixes the
// heading, e.g. "Svelte " for "Svelte PDF Statistics:".
func printStats(w io.Writer, title string, s *merge.Stats, verbose bool) {
	most := s.FileWithMostPages
	if most == "" {
		most = "none"
	}

	fmt.Fprintf(w, "\n%sPDF Statistics:\n", title)
	fmt.Fprintf(w, "  Total number of files: %d\n", s.TotalFiles)
	fmt.Fprintf(w, "  Total number of pages: %d\n", s.TotalPages)
	fmt.Fprintf(w, "  File with most pages: %s (%d pages)\n", most, s.MaxPages)
	fmt.Fprintf(w, "  Combined PDF size: %s\n", s.CombinedSizeMB())

	if !verbose {
		return
	}
	if len(s.FileSizes) > 0 {
		fmt.Fprintln(w, "  File sizes:")
		for _, f := range s.FileSizes {
			fmt.Fprintf(w, "    %s\n", f)
		}
	}
	if len(s.Skipped) > 0 {
		fmt.Fprintln(w, "  Skipped:")
		for _, sk := range s.Skipped {
			fmt.Fprintf(w, "    %s: %v\n", sk.Path, sk.Err)
		}
	}
}

// printElapsed reports the duration since start with --verbose.
func printElapsed(env *Environment, verbose bool, start time.Time) {
	if verbose {
		fmt.Fprintf(env.Stderr, "Completed in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
