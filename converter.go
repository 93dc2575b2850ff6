package docs2pdf

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alnah/go-docs2pdf/internal/assets"
)

// printStyleName is the embedded stylesheet appended to every printed page.
const printStyleName = "print"

// Converter renders documentation pages to PDF.
// Create with NewConverter, use Convert for each URL, and Close when done.
// The browser is started on the first conversion and reused afterwards.
type Converter struct {
	cfg    converterConfig
	engine browserEngine

	mu     sync.Mutex
	closed bool
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithEngine).
// Returns error if the engine is unknown or the print stylesheet is missing.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout, engine: EngineRod},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.style == "" {
		css, err := assets.NewEmbeddedLoader().LoadStyle(printStyleName)
		if err != nil {
			return nil, fmt.Errorf("loading print style: %w", err)
		}
		c.cfg.style = css
	}

	// Create engine if not injected (e.g., by tests)
	if c.engine == nil {
		e, err := newEngine(c.cfg.engine, c.cfg.timeout)
		if err != nil {
			return nil, err
		}
		c.engine = e
	}

	return c, nil
}

// Convert renders rawURL and returns the PDF bytes.
// Only the documentation content region is kept (see DefaultExtractionRule).
// If opts is nil, DefaultPDFOptions values are used.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, rawURL string, opts *PDFOptions) (pdf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	params, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	transform := func(pageHTML string) (string, error) {
		return BuildPrintDocument(pageHTML, target, DefaultExtractionRule, c.cfg.style)
	}

	pdf, err = c.engine.Print(ctx, target, transform, params)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// FetchHTML returns the rendered HTML of rawURL without printing it.
func (c *Converter) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	if err := c.checkClosed(); err != nil {
		return "", err
	}

	target, err := NormalizeURL(rawURL)
	if err != nil {
		return "", err
	}
	return c.engine.FetchHTML(ctx, target)
}

// Close releases resources (headless browser). Close is idempotent.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.engine != nil {
		return c.engine.Close()
	}
	return nil
}

func (c *Converter) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

// NormalizeURL trims rawURL and prefixes https:// when no http(s) scheme is given.
func NormalizeURL(rawURL string) (string, error) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return "", ErrEmptyURL
	}
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		u = "https://" + u
	}
	return u, nil
}
