package links

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-docs2pdf/internal/fileutil"
)

// markdown parses link lists. Linkify turns bare URLs into links.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// ParseMarkdown returns every absolute http(s) link destination in data,
// in document order. Relative links and anchors are skipped.
func ParseMarkdown(data []byte) []string {
	doc := markdown.Parser().Parse(text.NewReader(data))

	var urls []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var dest string
		switch node := n.(type) {
		case *ast.Link:
			dest = string(node.Destination)
		case *ast.AutoLink:
			if node.AutoLinkType != ast.AutoLinkURL {
				return ast.WalkContinue, nil
			}
			dest = string(node.URL(data))
		default:
			return ast.WalkContinue, nil
		}

		if fileutil.IsURL(dest) {
			urls = append(urls, dest)
		}
		// Link text cannot contain further links.
		return ast.WalkSkipChildren, nil
	})
	return urls
}
