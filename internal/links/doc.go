// Package links loads, filters, saves and scrapes documentation link lists.
//
// A link list is an ordered list of page URLs. The order is the page order
// of any combined PDF built from it. Lists can be read from three formats:
//
//   - plain text: one URL per line; blank lines and lines starting with #
//     are ignored
//   - YAML (.yaml, .yml): a List document with a source name and links
//   - Markdown (.md, .markdown): every absolute link in document order
//
// Lists for the svelte.dev documentation are scraped from the
// nav[aria-label="Docs"] element of a rendered index page.
package links
