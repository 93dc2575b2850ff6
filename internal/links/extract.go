package links

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// navSelector matches the documentation sidebar of svelte.dev.
const navSelector = `nav[aria-label="Docs"]`

// docsPrefix is the path prefix of documentation pages; other navigation
// links (blog, playground, external) are dropped.
const docsPrefix = "/docs/"

// Scope selects which part of the docs navigation belongs to a source.
type Scope int

const (
	// ScopeSvelte keeps every docs link outside /kit/.
	ScopeSvelte Scope = iota
	// ScopeSvelteKit keeps the links of navigation sections mentioning "kit".
	ScopeSvelteKit
)

// Source is a documentation set whose links are scraped from one index page.
type Source struct {
	Name     string // list name, e.g. "svelte"
	Title    string // display name, e.g. "Svelte"
	IndexURL string // page holding the docs navigation
	Scope    Scope
}

// Built-in sources.
var (
	Svelte = Source{
		Name:     "svelte",
		Title:    "Svelte",
		IndexURL: "https://svelte.dev/docs/svelte/overview",
		Scope:    ScopeSvelte,
	}
	SvelteKit = Source{
		Name:     "sveltekit",
		Title:    "SvelteKit",
		IndexURL: "https://svelte.dev/docs/kit/introduction",
		Scope:    ScopeSvelteKit,
	}
)

// Sources returns the built-in sources in processing order.
func Sources() []Source {
	return []Source{Svelte, SvelteKit}
}

// Fetcher returns the rendered HTML of a page.
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// Extract loads the source's index page and returns its documentation links.
func Extract(ctx context.Context, f Fetcher, src Source) ([]string, error) {
	html, err := f.FetchHTML(ctx, src.IndexURL)
	if err != nil {
		return nil, err
	}
	return ExtractNavLinks(html, src)
}

// ExtractNavLinks returns the absolute URLs of the documentation links in
// the page's docs navigation that belong to src, in navigation order and
// without duplicates. Relative links resolve against src.IndexURL.
func ExtractNavLinks(pageHTML string, src Source) ([]string, error) {
	base, err := url.Parse(src.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("invalid index URL %q: %w", src.IndexURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.IndexURL, err)
	}

	nav := doc.Find(navSelector).First()
	if nav.Length() == 0 {
		return nil, ErrNavNotFound
	}

	var urls []string
	seen := make(map[string]bool)
	anchors(nav, src.Scope).Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !strings.HasPrefix(href, docsPrefix) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		abs.Fragment = ""

		u := abs.String()
		if seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	})

	if len(urls) == 0 {
		return nil, fmt.Errorf("%w in %s navigation", ErrNoLinks, src.Title)
	}
	return urls, nil
}

// anchors selects the links of nav that belong to scope.
func anchors(nav *goquery.Selection, scope Scope) *goquery.Selection {
	if scope == ScopeSvelteKit {
		sections := nav.Children().FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(strings.ToLower(s.Text()), "kit")
		})
		return sections.Find("a")
	}

	return nav.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return !strings.Contains(a.AttrOr("href", ""), "/kit/")
	})
}
