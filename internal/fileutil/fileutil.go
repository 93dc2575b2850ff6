// Package fileutil provides output naming and file helpers.
package fileutil

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// PDFExt is appended to every derived output name.
const PDFExt = ".pdf"

// indexName names pages whose URL has no path.
const indexName = "index"

// Sentinel errors for file utility operations.
var (
	ErrEmptyDir  = errors.New("directory cannot be empty")
	ErrCreateDir = errors.New("failed to create directory")
)

// NameFromURL derives a stable file name (without extension) from a URL:
// the hostname, an underscore, then the path with every character that is
// not an ASCII letter or digit replaced by '_'. The result is lowercased.
// A URL with an empty path ("https://svelte.dev" or ".../") yields
// "<host>_index". Strings that do not parse as absolute URLs are normalized
// as a whole.
//
// Examples:
//   - "https://svelte.dev/docs/kit/load" -> "svelte.dev_docs_kit_load"
//   - "https://svelte.dev/"              -> "svelte.dev_index"
//   - "not a url"                        -> "not_a_url"
func NameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return Sanitize(raw)
	}

	p := strings.Trim(u.Path, "/")
	if p == "" {
		p = indexName
	}
	return strings.ToLower(u.Hostname()) + "_" + Sanitize(p)
}

// NameFromLastSegment returns the last path segment of a URL, or "index"
// when the path is empty or ends with a slash. Curated documentation lists
// use it because their pages share one prefix.
//
// Examples:
//   - "https://svelte.dev/docs/svelte/$state" -> "$state"
//   - "https://svelte.dev/docs/kit/"           -> "index"
func NameFromLastSegment(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return Sanitize(raw)
	}

	seg := u.Path[strings.LastIndex(u.Path, "/")+1:]
	if seg == "" || seg == "." || seg == ".." {
		return indexName
	}
	return seg
}

// Sanitize lowercases s and replaces every character that is not an ASCII
// letter or digit with '_'.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// PDFPath joins dir and name, adding the .pdf extension when missing.
func PDFPath(dir, name string) string {
	if !strings.EqualFold(filepath.Ext(name), PDFExt) {
		name += PDFExt
	}
	return filepath.Join(dir, name)
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if dir == "" {
		return ErrEmptyDir
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateDir, err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
