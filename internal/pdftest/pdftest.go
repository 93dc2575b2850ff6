// Package pdftest builds small PDF fixtures and inspects PDF files in tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageHeight is shared by every fixture page; widths identify pages.
const PageHeight = 842

// Build returns a minimal valid PDF with one page per width.
// Each page draws a line so it has a real content stream.
func Build(widths ...int) []byte {
	n := len(widths)
	// Objects: 1 catalog, 2 page tree, then a page and its content per width.
	objCount := 2 + 2*n
	bodies := make([]string, objCount+1)

	kids := make([]string, n)
	for i, w := range widths {
		pageObj := 3 + 2*i
		contentObj := pageObj + 1
		kids[i] = fmt.Sprintf("%d 0 R", pageObj)

		bodies[pageObj] = fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << >> /Contents %d 0 R >>",
			w, PageHeight, contentObj)

		stream := fmt.Sprintf("0 0 m %d %d l S", w, PageHeight)
		bodies[contentObj] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)
	}
	bodies[1] = "<< /Type /Catalog /Pages 2 0 R >>"
	bodies[2] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, objCount+1)
	for k := 1; k <= objCount; k++ {
		offsets[k] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", k, bodies[k])
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for k := 1; k <= objCount; k++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[k])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xref)

	return buf.Bytes()
}

// PageWidths reads the PDF at path and returns the width of every page, in order.
func PageWidths(tb testing.TB, path string) []int {
	tb.Helper()

	dims, err := api.PageDims(bytes.NewReader(read(tb, path)), model.NewDefaultConfiguration())
	if err != nil {
		tb.Fatalf("reading page dimensions of %s: %v", path, err)
	}

	widths := make([]int, len(dims))
	for i, d := range dims {
		widths[i] = int(d.Width)
	}
	return widths
}

// PageCount reads the PDF at path and returns its page count.
func PageCount(tb testing.TB, path string) int {
	tb.Helper()

	n, err := api.PageCount(bytes.NewReader(read(tb, path)), model.NewDefaultConfiguration())
	if err != nil {
		tb.Fatalf("counting pages of %s: %v", path, err)
	}
	return n
}

func read(tb testing.TB, path string) []byte {
	tb.Helper()

	data, err := os.ReadFile(path) // #nosec G304 -- test fixture
	if err != nil {
		tb.Fatalf("reading %s: %v", path, err)
	}
	return data
}
