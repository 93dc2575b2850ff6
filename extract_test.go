package docs2pdf

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestExtractFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		html        string
		wantContain []string
		wantAbsent  []string
		wantErr     error
	}{
		{
			name: "header and text content",
			html: `<div id="docs-content">
				<header><h1>Loading data</h1></header>
				<aside class="toc">On this page</aside>
				<div class="text content"><p>Every page can define a load function.</p></div>
			</div>`,
			wantContain: []string{"<h1>Loading data</h1>", "Every page can define a load function."},
			wantAbsent:  []string{"On this page"},
		},
		{
			name: "header comes first",
			html: `<div id="docs-content">
				<div class="text content"><p>Body</p></div>
				<h1>Title</h1>
			</div>`,
			wantContain: []string{"<h1>Title</h1><div class=\"text content\">"},
		},
		{
			name: "text content without header",
			html: `<div id="docs-content"><div class="text content"><p>Only text</p></div></div>`,
			wantContain: []string{`<div class="text content"><p>Only text</p></div>`},
		},
		{
			name: "falls back to the container",
			html: `<div id="docs-content">
				<h1>Overview</h1>
				<section><p>Legacy markup</p></section>
			</div>`,
			wantContain: []string{"<h1>Overview</h1>", "<section><p>Legacy markup</p></section>", `id="docs-content"`},
		},
		{
			name:    "missing container",
			html:    `<main><div class="text content">Lost</div></main>`,
			wantErr: ErrSelectorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractFragment(mustDoc(t, tt.html), DefaultExtractionRule)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ExtractFragment() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractFragment() unexpected error: %v", err)
			}
			for _, s := range tt.wantContain {
				if !strings.Contains(got, s) {
					t.Errorf("fragment missing %q:\n%s", s, got)
				}
			}
			for _, s := range tt.wantAbsent {
				if strings.Contains(got, s) {
					t.Errorf("fragment should not contain %q:\n%s", s, got)
				}
			}
		})
	}
}

func TestExtractFragment_FallbackDropsDuplicateHeader(t *testing.T) {
	t.Parallel()

	html := `<div id="docs-content"><h1>Overview</h1><p>Body</p></div>`
	got, err := ExtractFragment(mustDoc(t, html), DefaultExtractionRule)
	if err != nil {
		t.Fatalf("ExtractFragment() error = %v", err)
	}
	if n := strings.Count(got, "<h1>Overview</h1>"); n != 1 {
		t.Errorf("header appears %d times, want 1:\n%s", n, got)
	}
}

func TestExtractFragment_CustomRule(t *testing.T) {
	t.Parallel()

	rule := ExtractionRule{Container: "article", Text: ".prose", Header: "h2"}
	html := `<article><h2>Guide</h2><div class="prose">Read me</div><footer>skip</footer></article>`

	got, err := ExtractFragment(mustDoc(t, html), rule)
	if err != nil {
		t.Fatalf("ExtractFragment() error = %v", err)
	}
	if got != `<h2>Guide</h2><div class="prose">Read me</div>` {
		t.Errorf("ExtractFragment() = %q", got)
	}
}

func TestBuildPrintDocument(t *testing.T) {
	t.Parallel()

	page := `<!DOCTYPE html><html><head><title>Load</title><script src="/app.js"></script></head>
<body><nav>Sidebar</nav>
<div id="docs-content"><h1>Load</h1><div class="text content"><img src="/images/a.png"><p>Text</p></div></div>
<script>hydrate()</script></body></html>`

	got, err := BuildPrintDocument(page, "https://svelte.dev/docs/kit/load", DefaultExtractionRule, "h1{color:red}")
	if err != nil {
		t.Fatalf("BuildPrintDocument() error = %v", err)
	}

	for _, s := range []string{
		"<!DOCTYPE html>",
		`<base href="https://svelte.dev/docs/kit/load"/>`,
		"<style>h1{color:red}</style>",
		"<title>Load</title>",
		`<img src="/images/a.png"/>`,
	} {
		if !strings.Contains(got, s) {
			t.Errorf("document missing %q:\n%s", s, got)
		}
	}
	for _, s := range []string{"<script", "Sidebar", "hydrate()"} {
		if strings.Contains(got, s) {
			t.Errorf("document should not contain %q:\n%s", s, got)
		}
	}
}

func TestBuildPrintDocument_KeepsExistingBase(t *testing.T) {
	t.Parallel()

	page := `<html><head><base href="https://cdn.example/"></head><body><div id="docs-content">x</div></body></html>`
	got, err := BuildPrintDocument(page, "https://svelte.dev/docs", DefaultExtractionRule, "")
	if err != nil {
		t.Fatalf("BuildPrintDocument() error = %v", err)
	}
	if strings.Count(got, "<base ") != 1 || !strings.Contains(got, "https://cdn.example/") {
		t.Errorf("existing <base> should be kept alone:\n%s", got)
	}
	if strings.Contains(got, "<style>") {
		t.Error("no <style> expected for empty css")
	}
}

func TestBuildPrintDocument_MissingContainer(t *testing.T) {
	t.Parallel()

	_, err := BuildPrintDocument(`<html><body><p>404</p></body></html>`, "https://svelte.dev/x", DefaultExtractionRule, "")
	if !errors.Is(err, ErrSelectorNotFound) {
		t.Errorf("BuildPrintDocument() error = %v, want ErrSelectorNotFound", err)
	}
}

func TestExtractionRule_String(t *testing.T) {
	t.Parallel()

	want := `parent="#docs-content", child=".text.content"`
	if got := DefaultExtractionRule.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
