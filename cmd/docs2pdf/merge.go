package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/merge"
)

// ErrNothingMerged is returned when no input could be merged.
var ErrNothingMerged = errors.New("no input could be merged")

// runMergeCmd combines existing PDF files into one.
func runMergeCmd(_ context.Context, args []string, env *Environment) error {
	f := &mergeFlags{}
	positional, err := parseArgs(newMergeFlagSet(f), args)
	if err != nil {
		return usageError(err)
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: <output.pdf> <input.pdf>...", ErrMissingArgument)
	}
	if len(positional) == 1 {
		return fmt.Errorf("%w: at least one input PDF", ErrMissingArgument)
	}
	output, inputs := positional[0], positional[1:]

	if dir := filepath.Dir(output); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return fmt.Errorf("%w: %v", merge.ErrWriteOutput, err)
		}
	}

	out := progress(env, f.quiet)
	stats, err := merge.New(merge.WithOutput(out, env.Stderr)).Merge(inputs, output)
	if err != nil {
		return err
	}
	printStats(out, "", stats, f.verbose)

	if len(stats.Skipped) == len(inputs) {
		return fmt.Errorf("%w: all %d inputs were skipped", ErrNothingMerged, len(inputs))
	}
	return nil
}
