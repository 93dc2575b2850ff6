package links

import "errors"

// Sentinel errors for link list operations.
var (
	// ErrReadList indicates a link list file could not be read.
	ErrReadList = errors.New("cannot read link list")

	// ErrParseList indicates a link list file is malformed.
	ErrParseList = errors.New("cannot parse link list")

	// ErrNoLinks indicates a link list or navigation contained no links.
	ErrNoLinks = errors.New("no links found")

	// ErrNavNotFound indicates the page has no docs navigation.
	ErrNavNotFound = errors.New(`navigation nav[aria-label="Docs"] not found`)

	// ErrSaveList indicates a link list could not be written.
	ErrSaveList = errors.New("cannot save link list")
)
