package docs2pdf

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractionRule names the DOM regions kept in the printed page.
type ExtractionRule struct {
	Container string // root element whose content is printed
	Text      string // primary prose inside Container
	Header    string // header-like element inside Container
}

// DefaultExtractionRule is the fixed rule for the svelte.dev documentation markup.
var DefaultExtractionRule = ExtractionRule{
	Container: "#docs-content",
	Text:      ".text.content",
	Header:    "header, h1, .header",
}

// String reports the rule the way the CLI announces it.
func (r ExtractionRule) String() string {
	return fmt.Sprintf("parent=%q, child=%q", r.Container, r.Text)
}

// ExtractFragment returns the HTML kept from doc under rule.
//
// The header (first match of rule.Header inside the container) is kept
// together with the text-content child. When the text child is missing the
// whole container is kept instead, minus the header already captured.
func ExtractFragment(doc *goquery.Document, rule ExtractionRule) (string, error) {
	container := doc.Find(rule.Container).First()
	if container.Length() == 0 {
		return "", fmt.Errorf("%w: %q", ErrSelectorNotFound, rule.Container)
	}

	header := container.Find(rule.Header).First()
	text := container.Find(rule.Text).First()

	var b strings.Builder
	if header.Length() > 0 {
		h, err := goquery.OuterHtml(header)
		if err != nil {
			return "", fmt.Errorf("rendering header: %w", err)
		}
		b.WriteString(h)
	}

	if text.Length() > 0 {
		t, err := goquery.OuterHtml(text)
		if err != nil {
			return "", fmt.Errorf("rendering text content: %w", err)
		}
		b.WriteString(t)
		return b.String(), nil
	}

	clone := container.Clone()
	if header.Length() > 0 {
		clone.Find(rule.Header).First().Remove()
	}
	c, err := goquery.OuterHtml(clone)
	if err != nil {
		return "", fmt.Errorf("rendering container: %w", err)
	}
	b.WriteString(c)
	return b.String(), nil
}

// BuildPrintDocument rewrites a loaded page so that only the extracted
// fragment remains in the body.
//
// Scripts are removed so the rewritten document is not hydrated again, css is
// appended to the head, and a <base> element pointing at pageURL is added when
// the page has none so relative images keep resolving.
func BuildPrintDocument(pageHTML, pageURL string, rule ExtractionRule, css string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", fmt.Errorf("parsing page HTML: %w", err)
	}

	fragment, err := ExtractFragment(doc, rule)
	if err != nil {
		return "", err
	}

	doc.Find("script, noscript").Remove()

	head := doc.Find("head").First()
	if pageURL != "" && head.Find("base[href]").Length() == 0 {
		head.PrependHtml(fmt.Sprintf(`<base href="%s">`, htmlAttrEscaper.Replace(pageURL)))
	}
	if css != "" {
		head.AppendHtml("<style>" + css + "</style>")
	}

	doc.Find("body").First().SetHtml("<div>" + fragment + "</div>")

	out, err := goquery.OuterHtml(doc.Find("html").First())
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return "<!DOCTYPE html>" + out, nil
}

var htmlAttrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")
