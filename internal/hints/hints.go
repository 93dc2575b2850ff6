// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// CIVariables are set by the CI services whose runners break Chrome's sandbox.
var CIVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// ForBrowserConnect returns hints for browser launch failures. getenv reads
// the process environment; inContainer reports container detection, which
// the caller owns.
func ForBrowserConnect(getenv func(string) string, inContainer bool) string {
	var hints []string

	inCI := false
	for _, v := range CIVariables {
		if getenv(v) != "" {
			inCI = true
			break
		}
	}

	if (inCI || inContainer) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'docs2pdf doctor' to check the setup")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the page load timeout.
func ForTimeout() string {
	return format("slow pages need a longer --timeout (e.g. --timeout 2m)")
}

// ForSelectorNotFound returns a hint for pages without the docs markup.
func ForSelectorNotFound() string {
	return format("only pages with a #docs-content container (svelte.dev docs) can be converted")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/docs2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), "/docs2pdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForNoURLs returns a hint for empty URL lists.
func ForNoURLs() string {
	return format("put one URL per line; blank lines and lines starting with # are ignored")
}

// ForLinkList returns a hint for a missing or unreadable documentation link list.
func ForLinkList() string {
	return format("run 'docs2pdf extract' to refresh links/, or pass --links <file>")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

// toSlash normalizes Windows separators for matching.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
