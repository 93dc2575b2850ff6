package main

import (
	"context"
	"errors"
	"fmt"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/assets"
	"github.com/alnah/go-docs2pdf/internal/batch"
	"github.com/alnah/go-docs2pdf/internal/hints"
	"github.com/alnah/go-docs2pdf/internal/links"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidTimeout  = errors.New("invalid timeout")
	ErrWritePDF        = errors.New("failed to write PDF file")
	ErrNoURLs          = errors.New("no URLs to process")
	ErrExtract         = errors.New("link extraction failed")
)

// printError writes err to stderr and, when one applies, an actionable hint.
func printError(env *Environment, err error) {
	fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err, env.Getenv))
}

// hintFor returns the hint matching err, or "".
func hintFor(err error, getenv func(string) string) string {
	switch {
	case errors.Is(err, docs2pdf.ErrBrowserConnect):
		inContainer, _ := isContainer(getenv)
		return hints.ForBrowserConnect(getenv, inContainer)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, docs2pdf.ErrSelectorNotFound):
		return hints.ForSelectorNotFound()
	case errors.Is(err, batch.ErrOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrNoURLs), errors.Is(err, batch.ErrNoURLs), errors.Is(err, links.ErrNoLinks):
		return hints.ForNoURLs()
	case errors.Is(err, links.ErrParseList), errors.Is(err, assets.ErrLinksNotFound):
		return hints.ForLinkList()
	}
	return ""
}
