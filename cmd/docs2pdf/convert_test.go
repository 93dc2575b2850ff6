package main

// Notes:
// - runConvert is driven through runMain with a fake renderer; we check the
//   file written, the console lines and what reaches the renderer.
// - The default output name (output.pdf in the working directory) is not
//   exercised to keep tests out of the package directory; writePDF is
//   tested directly instead.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/pdftest"
)

const overviewURL = "https://svelte.dev/docs/svelte/overview"

// ---------------------------------------------------------------------------
// TestConvert_WritesPDF - Happy path
// ---------------------------------------------------------------------------

func TestConvert_WritesPDF(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	out := filepath.Join(t.TempDir(), "nested", "overview.pdf")

	if code := te.run("convert", "-o", out, overviewURL); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	if n := pdftest.PageCount(t, out); n != 1 {
		t.Errorf("page count = %d, want 1", n)
	}

	got := te.stdout.String()
	for _, want := range []string{
		"Converting " + overviewURL + " to PDF...\n",
		`Using hardcoded selectors: parent="#docs-content", child=".text.content"` + "\n",
		"PDF saved to " + out + "\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("stdout missing %q\ngot: %s", want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Quiet - -q silences progress
// ---------------------------------------------------------------------------

func TestConvert_Quiet(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	out := filepath.Join(t.TempDir(), "a.pdf")

	if code := te.run("convert", "-q", "-o", out, overviewURL); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if te.stdout.Len() != 0 {
		t.Errorf("stdout should be empty with -q, got %q", te.stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestConvert_PDFOptions - Flags reach the renderer
// ---------------------------------------------------------------------------

func TestConvert_PDFOptions(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	out := filepath.Join(t.TempDir(), "a.pdf")

	code := te.run("convert", "-o", out,
		"--format", "letter", "--landscape", "--scale", "1", "--margin", "1cm", "--no-background",
		overviewURL)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	got := te.renderer.gotPDF
	if got == nil {
		t.Fatal("renderer received no options")
	}
	if got.Format != "letter" || !got.Landscape || got.Scale != 1 || got.PrintBackground {
		t.Errorf("options = %+v", got)
	}
	if got.Margin != docs2pdf.UniformMargin("1cm") {
		t.Errorf("Margin = %+v, want 1cm on every side", got.Margin)
	}
}

func TestConvert_DefaultPDFOptions(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	te.run("convert", "-o", filepath.Join(t.TempDir(), "a.pdf"), overviewURL)

	want := docs2pdf.DefaultPDFOptions()
	if got := te.renderer.gotPDF; got == nil || *got != *want {
		t.Errorf("options = %+v, want %+v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_RendererOptions - Engine, timeout and style selection
// ---------------------------------------------------------------------------

func TestConvert_RendererOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		vars        map[string]string
		args        []string
		wantEngine  string
		wantTimeout time.Duration
	}{
		{
			name:       "defaults",
			wantEngine: docs2pdf.EngineRod,
		},
		{
			name:        "flags",
			args:        []string{"--engine", "chromedp", "--timeout", "30s"},
			wantEngine:  docs2pdf.EngineChromedp,
			wantTimeout: 30 * time.Second,
		},
		{
			name:        "environment",
			vars:        map[string]string{"DOCS2PDF_ENGINE": "chromedp", "DOCS2PDF_TIMEOUT": "2m"},
			wantEngine:  docs2pdf.EngineChromedp,
			wantTimeout: 2 * time.Minute,
		},
		{
			name:        "flags override environment",
			vars:        map[string]string{"DOCS2PDF_ENGINE": "chromedp", "DOCS2PDF_TIMEOUT": "2m"},
			args:        []string{"--engine", "rod", "-t", "5s"},
			wantEngine:  docs2pdf.EngineRod,
			wantTimeout: 5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(tt.vars)
			args := append([]string{"convert", "-o", filepath.Join(t.TempDir(), "a.pdf")}, tt.args...)
			args = append(args, overviewURL)

			if code := te.run(args...); code != ExitSuccess {
				t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
			}

			if te.gotOpts.Engine != tt.wantEngine {
				t.Errorf("Engine = %q, want %q", te.gotOpts.Engine, tt.wantEngine)
			}
			if te.gotOpts.Timeout != tt.wantTimeout {
				t.Errorf("Timeout = %v, want %v", te.gotOpts.Timeout, tt.wantTimeout)
			}
			if !strings.Contains(te.gotOpts.Style, "@page") {
				t.Error("Style should be the print stylesheet")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert_WarnsUnknownEnvVar - Typo detection
// ---------------------------------------------------------------------------

func TestConvert_WarnsUnknownEnvVar(t *testing.T) {
	t.Parallel()

	te := newTestEnv(map[string]string{"DOCS2PDF_TIMOUT": "30s"})
	te.run("convert", "-o", filepath.Join(t.TempDir(), "a.pdf"), overviewURL)

	if !strings.Contains(te.stderr.String(), "warning: unknown environment variable DOCS2PDF_TIMOUT") {
		t.Errorf("stderr = %q", te.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Verbose - Timing on stderr
// ---------------------------------------------------------------------------

func TestConvert_Verbose(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	te.run("convert", "-v", "-o", filepath.Join(t.TempDir(), "a.pdf"), overviewURL)

	if !strings.Contains(te.stderr.String(), "Completed in") {
		t.Errorf("stderr should report timing with -v, got %q", te.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestWritePDF - Parent directory creation and write errors
// ---------------------------------------------------------------------------

func TestWritePDF(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "doc.pdf")
		if err := writePDF(path, pdftest.Build(100)); err != nil {
			t.Fatalf("writePDF() error = %v", err)
		}
		if n := pdftest.PageCount(t, path); n != 1 {
			t.Errorf("page count = %d, want 1", n)
		}
	})

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		writeFile(t, blocker, "x")

		err := writePDF(filepath.Join(blocker, "doc.pdf"), []byte("%PDF"))
		if err == nil || !strings.Contains(err.Error(), ErrWritePDF.Error()) {
			t.Errorf("writePDF() error = %v, want ErrWritePDF", err)
		}
	})
}
