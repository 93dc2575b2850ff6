// Package merge concatenates PDF documents and reports page statistics.
//
// Inputs are merged in the order given. Each input's pages are copied
// structurally (objects, fonts and images are carried over, nothing is
// re-rendered) after the pages of the inputs before it.
//
// An input that cannot be read, parsed or appended is skipped with a
// warning; the remaining inputs still produce a document. Only failing to
// write the combined document is fatal. An empty input list produces a
// valid document without pages.
package merge
