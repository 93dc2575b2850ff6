package main

// Notes:
// - extractAll is tested with the fake renderer as links.Fetcher; the
//   navigation parsing itself is covered by the links package.
// - runExtract is tested through runMain for the written files.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-docs2pdf/internal/config"
	"github.com/alnah/go-docs2pdf/internal/links"
)

// ---------------------------------------------------------------------------
// TestExtractAll - Saving and error collection
// ---------------------------------------------------------------------------

func TestExtractAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out strings.Builder

	err := extractAll(context.Background(), &fakeRenderer{}, links.Sources(), dir, &out)
	if err != nil {
		t.Fatalf("extractAll() error = %v", err)
	}

	svelte, err := links.Load(linksPath(dir, links.Svelte.Name))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"https://svelte.dev/docs/svelte/overview", "https://svelte.dev/docs/svelte/legacy-overview"}
	if strings.Join(svelte, ",") != strings.Join(want, ",") {
		t.Errorf("svelte links = %v, want %v", svelte, want)
	}

	got := out.String()
	for _, want := range []string{
		"\nOpening Svelte documentation at " + links.Svelte.IndexURL + "\n",
		"Extracting SvelteKit links...\n",
		"Complete Svelte links extracted successfully",
		"\nExtraction complete!\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\ngot: %s", want, got)
		}
	}
}

func TestExtractAll_Errors(t *testing.T) {
	t.Parallel()

	t.Run("fetch failure is reported per source", func(t *testing.T) {
		t.Parallel()

		fetchErr := errors.New("boom")
		r := &fakeRenderer{fetchErr: fetchErr}
		var out strings.Builder

		err := extractAll(context.Background(), r, links.Sources(), t.TempDir(), &out)
		if !errors.Is(err, ErrExtract) || !errors.Is(err, fetchErr) {
			t.Fatalf("extractAll() error = %v, want ErrExtract wrapping the fetch error", err)
		}
		for _, title := range []string{"Svelte: ", "SvelteKit: "} {
			if !strings.Contains(err.Error(), title) {
				t.Errorf("error should name %q, got %v", title, err)
			}
		}
		if len(r.fetched) != 2 {
			t.Errorf("fetched %d pages, want both sources tried", len(r.fetched))
		}
		if strings.Contains(out.String(), "Extraction complete!") {
			t.Error("completion line printed after a failure")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := &fakeRenderer{}

		err := extractAll(ctx, r, links.Sources(), t.TempDir(), &strings.Builder{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("extractAll() error = %v, want context.Canceled", err)
		}
		if len(r.fetched) != 0 {
			t.Error("nothing should be fetched after cancellation")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunExtract - Command wiring
// ---------------------------------------------------------------------------

func TestRunExtract(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	te := newTestEnv(nil)

	if code := te.run("extract", "--dir", dir); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}
	for _, name := range []string{links.Svelte.Name, links.SvelteKit.Name} {
		if _, err := links.Load(linksPath(dir, name)); err != nil {
			t.Errorf("links/%s.yaml: %v", name, err)
		}
	}
	if !te.renderer.closed {
		t.Error("renderer should be closed")
	}
}

func TestRunExtract_ConfiguredIndexURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docs2pdf.yaml")
	writeFile(t, cfgPath, "sources:\n  svelte:\n    indexURL: https://mirror.example/docs/svelte/overview\n")
	te := newTestEnv(nil)

	if code := te.run("extract", "-q", "--config", cfgPath, "--dir", dir); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}
	if te.renderer.fetched[0] != "https://mirror.example/docs/svelte/overview" {
		t.Errorf("fetched = %v, want the configured index URL first", te.renderer.fetched)
	}
}

// ---------------------------------------------------------------------------
// TestConfiguredSources - Index URL overrides
// ---------------------------------------------------------------------------

func TestConfiguredSources(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Sources.SvelteKit.IndexURL = "https://kit.example/docs/kit/introduction"

	got := configuredSources(cfg)
	if len(got) != 2 {
		t.Fatalf("configuredSources() returned %d sources, want 2", len(got))
	}
	if got[0].IndexURL != links.Svelte.IndexURL {
		t.Errorf("Svelte IndexURL = %q", got[0].IndexURL)
	}
	if got[1].IndexURL != "https://kit.example/docs/kit/introduction" || got[1].Name != links.SvelteKit.Name {
		t.Errorf("SvelteKit source = %+v", got[1])
	}
}
