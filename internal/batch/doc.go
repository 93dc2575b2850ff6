// Package batch converts a list of documentation URLs to PDF files, one at
// a time, and optionally merges the results into a single document.
//
// A URL that fails is reported and skipped; only an unusable output
// directory or a failed merge stops the run.
package batch
