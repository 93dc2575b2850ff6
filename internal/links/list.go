package links

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/yamlutil"
)

// List is the YAML form of a link list.
type List struct {
	Source string   `yaml:"source"`
	Links  []string `yaml:"links"`
}

// Format identifies a link list file format.
type Format int

const (
	FormatText Format = iota
	FormatYAML
	FormatMarkdown
)

// DetectFormat chooses a format from the file extension. Unknown
// extensions are read as plain text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// Load reads the link list at path in the format given by its extension.
// Returns ErrNoLinks if the file holds no URL.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided list
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadList, err)
	}
	return Parse(data, DetectFormat(path))
}

// Parse decodes a link list in the given format.
// Returns ErrNoLinks if the data holds no URL.
func Parse(data []byte, format Format) ([]string, error) {
	var urls []string

	switch format {
	case FormatYAML:
		list, err := ParseYAML(data)
		if err != nil {
			return nil, err
		}
		urls = list.Links
	case FormatMarkdown:
		urls = ParseMarkdown(data)
	default:
		urls = ParseText(data)
	}

	urls = clean(urls)
	if len(urls) == 0 {
		return nil, ErrNoLinks
	}
	return urls, nil
}

// ParseText returns the non-blank, non-comment lines of data, trimmed.
func ParseText(data []byte) []string {
	var urls []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}

// ParseYAML decodes a List. Unknown fields are rejected.
func ParseYAML(data []byte) (*List, error) {
	var list List
	if err := yamlutil.UnmarshalStrict(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseList, err)
	}
	return &list, nil
}

// Save writes list as YAML to path, creating parent directories.
// The file is replaced if it exists.
func Save(path string, list List) error {
	data, err := yamlutil.MarshalWithHeader(list,
		fmt.Sprintf("%s documentation links, in navigation order.", titleFor(list.Source)),
		"Refresh with: docs2pdf extract",
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveList, err)
	}

	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveList, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- list is meant to be edited and shared
		return fmt.Errorf("%w: %v", ErrSaveList, err)
	}
	return nil
}

// Filter drops every URL containing one of patterns, compared
// case-insensitively. It returns the kept URLs and how many were dropped.
func Filter(urls []string, patterns ...string) (kept []string, removed int) {
	kept = make([]string, 0, len(urls))
	for _, u := range urls {
		if matchesAny(u, patterns) {
			removed++
			continue
		}
		kept = append(kept, u)
	}
	return kept, removed
}

func matchesAny(u string, patterns []string) bool {
	lower := strings.ToLower(u)
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// clean trims entries and drops blanks.
func clean(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func titleFor(source string) string {
	for _, s := range Sources() {
		if s.Name == source {
			return s.Title
		}
	}
	if source == "" {
		return "Documentation"
	}
	return source
}
