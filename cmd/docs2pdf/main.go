package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdConvert    = "convert"
	cmdBulk       = "bulk"
	cmdURLs       = "urls"
	cmdSvelte     = "svelte"
	cmdSvelteKit  = "sveltekit"
	cmdDocs       = "docs"
	cmdExtract    = "extract"
	cmdMerge      = "merge"
	cmdDoctor     = "doctor"
	cmdCompletion = "completion"
	cmdVersion    = "version"
	cmdHelp       = "help"
)

// commandFunc runs one command. It returns nil on success.
type commandFunc func(ctx context.Context, args []string, env *Environment) error

// commands maps names to the commands that take a context.
var commands = map[string]commandFunc{
	cmdConvert:    runConvert,
	cmdBulk:       runBulk,
	cmdURLs:       runURLs,
	cmdSvelte:     runSvelte,
	cmdSvelteKit:  runSvelteKit,
	cmdDocs:       runDocs,
	cmdExtract:    runExtract,
	cmdMerge:      runMergeCmd,
	cmdCompletion: runCompletion,
}

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	name, rest := args[1], args[2:]
	switch name {
	case cmdHelp, "-h", "--help":
		return runHelp(rest, env)
	case cmdVersion, "--version":
		fmt.Fprintf(env.Stdout, "docs2pdf %s\n", Version)
		return ExitSuccess
	case cmdDoctor:
		return runDoctorCmd(rest, env)
	}

	run, ok := commands[name]
	if !ok {
		printError(env, fmt.Errorf("%w: %q", ErrUnknownCommand, name))
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, rest, env)
	if err == nil {
		return ExitSuccess
	}
	if isHelp(err) {
		printCommandUsage(env.Stdout, name)
		return ExitSuccess
	}

	printError(env, err)
	code := exitCodeFor(err)
	if code == ExitUsage {
		fmt.Fprintf(env.Stderr, "Run 'docs2pdf help %s' for usage.\n", name)
	}
	return code
}

// usageError marks a flag parsing error as a usage error. Help requests
// pass through unchanged.
func usageError(err error) error {
	if isHelp(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// isHelp reports whether err is a -h/--help request.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
