package main

import (
	"errors"

	flag "github.com/spf13/pflag"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/assets"
	"github.com/alnah/go-docs2pdf/internal/config"
)

// Exit codes for the docs2pdf CLI.
// Follows Unix conventions: 0=success, 1=runtime failure, 2=usage.
const (
	ExitSuccess = 0 // Command completed (per-page failures are reported, not fatal)
	ExitGeneral = 1 // Render, read, write or merge failure
	ExitUsage   = 2 // Invalid flags, arguments, config, or options
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, docs2pdf.ErrUnknownEngine) ||
		errors.Is(err, docs2pdf.ErrInvalidPaperFormat) ||
		errors.Is(err, docs2pdf.ErrInvalidScale) ||
		errors.Is(err, docs2pdf.ErrInvalidMargin) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	return ExitGeneral
}
