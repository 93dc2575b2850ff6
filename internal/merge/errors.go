package merge

import "errors"

// Per-input errors. The merge logs them and skips the input.
var (
	// ErrReadInput indicates an input file could not be read.
	ErrReadInput = errors.New("cannot read input PDF")

	// ErrParseInput indicates an input file is not a valid PDF.
	ErrParseInput = errors.New("cannot parse input PDF")

	// ErrAppendPages indicates the pages of a parsed input could not be
	// appended to the combined document.
	ErrAppendPages = errors.New("cannot append pages")
)

// Fatal errors. The merge stops and returns them.
var (
	// ErrEmptyOutput indicates no output path was given.
	ErrEmptyOutput = errors.New("output path cannot be empty")

	// ErrWriteOutput indicates the combined document could not be
	// serialized or written to disk.
	ErrWriteOutput = errors.New("cannot write combined PDF")
)

// errRestore indicates the combined document could not be rebuilt after a
// failed append. Merge reports it as ErrWriteOutput.
var errRestore = errors.New("cannot restore combined document")
