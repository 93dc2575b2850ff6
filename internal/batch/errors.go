package batch

import "errors"

var (
	// ErrOutputDir indicates the output directory could not be created.
	ErrOutputDir = errors.New("cannot create output directory")

	// ErrWritePDF indicates a rendered PDF could not be written to disk.
	ErrWritePDF = errors.New("cannot write PDF")

	// ErrNoURLs indicates the URL list was empty after trimming.
	ErrNoURLs = errors.New("no URLs to process")
)
