package docs2pdf

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Engine names accepted by WithEngine.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// transformFunc rewrites the HTML of a loaded page before it is printed.
type transformFunc func(pageHTML string) (string, error)

// browserEngine abstracts the headless browser so the converter can be tested
// without one.
type browserEngine interface {
	// Print loads url, replaces the document with transform's output and
	// prints it with params.
	Print(ctx context.Context, url string, transform transformFunc, params printParams) ([]byte, error)
	// FetchHTML loads url and returns the rendered document HTML.
	FetchHTML(ctx context.Context, url string) (string, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ browserEngine = (*rodEngine)(nil)
	_ browserEngine = (*chromedpEngine)(nil)
)

// newEngine builds the engine registered under name.
func newEngine(name string, timeout time.Duration) (browserEngine, error) {
	switch strings.ToLower(name) {
	case "", EngineRod:
		return newRodEngine(timeout), nil
	case EngineChromedp:
		return newChromedpEngine(timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, name, EngineRod, EngineChromedp)
	}
}

// IsValidEngine reports whether name selects a known engine.
func IsValidEngine(name string) bool {
	switch strings.ToLower(name) {
	case "", EngineRod, EngineChromedp:
		return true
	}
	return false
}

// SandboxDisabled reports whether the browser is started without Chrome's
// sandbox: on CI (CI=true), with ROD_NO_SANDBOX=1, or with a pre-installed
// browser from ROD_BROWSER_BIN, which usually means a container. Both
// engines apply it.
func SandboxDisabled(getenv func(string) string) bool {
	return getenv("CI") == "true" || getenv("ROD_NO_SANDBOX") == "1" || getenv("ROD_BROWSER_BIN") != ""
}

// timeoutFor returns the remaining budget for one page load.
func timeoutFor(ctx context.Context, fallback time.Duration) (time.Duration, error) {
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if remaining < fallback {
			return remaining, nil
		}
	}
	return fallback, nil
}
