package main

import (
	"context"
	"io"
	"os"
	"time"

	docs2pdf "github.com/alnah/go-docs2pdf"
)

// Renderer is what commands need from the page converter.
type Renderer interface {
	Convert(ctx context.Context, url string, opts *docs2pdf.PDFOptions) ([]byte, error)
	FetchHTML(ctx context.Context, url string) (string, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Renderer = (*docs2pdf.Converter)(nil)

// rendererOptions configures the renderer a command creates.
type rendererOptions struct {
	Engine  string
	Timeout time.Duration
	Style   string
}

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and renderer construction.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Getenv      func(string) string
	Environ     func() []string
	NewRenderer func(rendererOptions) (Renderer, error)
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Getenv:      os.Getenv,
		Environ:     os.Environ,
		NewRenderer: newConverter,
	}
}

// newConverter creates a docs2pdf.Converter from opts.
func newConverter(opts rendererOptions) (Renderer, error) {
	var options []docs2pdf.Option
	if opts.Engine != "" {
		options = append(options, docs2pdf.WithEngine(opts.Engine))
	}
	if opts.Timeout > 0 {
		options = append(options, docs2pdf.WithTimeout(opts.Timeout))
	}
	if opts.Style != "" {
		options = append(options, docs2pdf.WithStyle(opts.Style))
	}
	return docs2pdf.NewConverter(options...)
}
