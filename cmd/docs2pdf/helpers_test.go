package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/pdftest"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake renderer and environment
// ---------------------------------------------------------------------------

// navPage is an index page whose docs navigation lists two Svelte pages
// and two SvelteKit pages.
const navPage = `<!DOCTYPE html>
<html><body>
<nav aria-label="Docs">
  <section>
    <h2>Svelte</h2>
    <ul>
      <li><a href="/docs/svelte/overview">Overview</a></li>
      <li><a href="/docs/svelte/legacy-overview">Legacy</a></li>
    </ul>
  </section>
  <section>
    <h2>SvelteKit</h2>
    <ul>
      <li><a href="/docs/kit/introduction">Introduction</a></li>
      <li><a href="/docs/kit/migrating">Migrating</a></li>
    </ul>
  </section>
</nav>
</body></html>`

// fakeRenderer prints a one-page PDF per URL and serves navPage.
type fakeRenderer struct {
	mu         sync.Mutex
	convertErr map[string]error
	fetchErr   error
	converted  []string
	fetched    []string
	gotPDF     *docs2pdf.PDFOptions
	closed     bool
}

func (f *fakeRenderer) Convert(_ context.Context, url string, opts *docs2pdf.PDFOptions) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.converted = append(f.converted, url)
	f.gotPDF = opts
	if err := f.convertErr[url]; err != nil {
		return nil, err
	}
	return pdftest.Build(300 + len(f.converted)), nil
}

func (f *fakeRenderer) FetchHTML(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, url)
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return navPage, nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// testEnv is an Environment backed by buffers, a variable map and a fake
// renderer.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	renderer *fakeRenderer
	vars     map[string]string
	gotOpts  rendererOptions
	created  int
}

func newTestEnv(vars map[string]string) *testEnv {
	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		renderer: &fakeRenderer{},
		vars:     vars,
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(key string) string { return te.vars[key] },
		Environ: func() []string {
			env := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				env = append(env, k+"="+v)
			}
			sort.Strings(env)
			return env
		},
		NewRenderer: func(opts rendererOptions) (Renderer, error) {
			te.gotOpts = opts
			te.created++
			return te.renderer, nil
		},
	}
	return te
}

// run executes the CLI with args (without the program name).
func (te *testEnv) run(args ...string) int {
	return runMain(append([]string{"docs2pdf"}, args...), te.Environment)
}

// writeLinks writes links/<name>.yaml under dir.
func writeLinks(t *testing.T, dir, name string, urls ...string) {
	t.Helper()
	content := "source: " + name + "\nlinks:\n"
	for _, u := range urls {
		content += "  - " + u + "\n"
	}
	writeFile(t, filepath.Join(dir, "links", name+".yaml"), content)
}

// writeFile writes content to path, creating parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

var errRender = errors.New("render failed")
