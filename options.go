package docs2pdf

import "time"

// defaultTimeout bounds a single page load.
const defaultTimeout = 60 * time.Second

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout time.Duration
	engine  string
	style   string
}

// Option configures a Converter.
type Option func(*Converter)

// WithTimeout sets the page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docs2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the browser engine: "rod" (default) or "chromedp".
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithStyle replaces the embedded print stylesheet with css.
func WithStyle(css string) Option {
	return func(c *Converter) {
		c.cfg.style = css
	}
}

// withEngine injects a browser engine (tests).
func withEngine(e browserEngine) Option {
	return func(c *Converter) {
		c.engine = e
	}
}
