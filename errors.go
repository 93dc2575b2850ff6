package docs2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyURL         = errors.New("URL cannot be empty")
	ErrSelectorNotFound = errors.New("content selector not found")
	ErrNavigation       = errors.New("failed to load page")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrUnknownEngine    = errors.New("unknown browser engine")
	ErrClosed           = errors.New("converter is closed")

	// PDF options validation errors.
	ErrInvalidPaperFormat = errors.New("invalid paper format")
	ErrInvalidScale       = errors.New("invalid scale")
	ErrInvalidMargin      = errors.New("invalid margin")
)
