package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-docs2pdf/internal/pdftest"
)

// writePDF writes a fixture with the given page widths into dir.
func writePDF(t *testing.T, dir, name string, widths ...int) string {
	t.Helper()
	return writeFile(t, dir, name, pdftest.Build(widths...))
}

// writeFile writes raw bytes into dir and returns the path.
func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// pageWidths returns the width of every page of the PDF at path.
func pageWidths(t *testing.T, path string) []int {
	t.Helper()
	return pdftest.PageWidths(t, path)
}

// pageCount returns the page count of the PDF at path.
func pageCount(t *testing.T, path string) int {
	t.Helper()
	return pdftest.PageCount(t, path)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
