package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commandInfo documents one command for help and shell completion.
type commandInfo struct {
	Name     string
	Args     string // synopsis of positional arguments
	Desc     string
	Long     string
	FlagSet  func() *flag.FlagSet // nil if the command has no flags
	ArgGlob  string               // file glob for positional arguments, if any
	ArgIsURL bool
}

// commandInfos lists the commands in help order.
// Flag sets are built from the same functions the commands parse with.
func commandInfos() []commandInfo {
	return []commandInfo{
		{
			Name:     cmdConvert,
			Args:     "<url>",
			Desc:     "Convert one documentation page to PDF",
			Long:     "Print the documentation content of one page to a PDF file.",
			FlagSet:  func() *flag.FlagSet { return newConvertFlagSet(&convertFlags{}) },
			ArgIsURL: true,
		},
		{
			Name:    cmdBulk,
			Args:    "<urls-file>",
			Desc:    "Convert every URL listed in a file",
			Long:    "Convert the URLs of a list file: plain text (one URL per line, # comments),\nYAML link list (.yaml, .yml) or Markdown (.md, every link in order).",
			FlagSet: func() *flag.FlagSet { return newBatchFlagSet(cmdBulk, &batchFlags{}) },
			ArgGlob: "*.txt,*.yaml,*.yml,*.md",
		},
		{
			Name:     cmdURLs,
			Args:     "<url>...",
			Desc:     "Convert the URLs given as arguments",
			Long:     "Convert each URL to its own PDF, named after host and path.",
			FlagSet:  func() *flag.FlagSet { return newBatchFlagSet(cmdURLs, &batchFlags{}) },
			ArgIsURL: true,
		},
		{
			Name:    cmdSvelte,
			Desc:    "Convert the Svelte documentation",
			Long:    "Convert the pages of links/svelte.yaml (the embedded list when absent).",
			FlagSet: func() *flag.FlagSet { return newSourceFlagSet(cmdSvelte, &sourceFlags{}) },
		},
		{
			Name:    cmdSvelteKit,
			Desc:    "Convert the SvelteKit documentation",
			Long:    "Convert the pages of links/sveltekit.yaml (the embedded list when absent).",
			FlagSet: func() *flag.FlagSet { return newSourceFlagSet(cmdSvelteKit, &sourceFlags{}) },
		},
		{
			Name:    cmdDocs,
			Desc:    "Refresh the link lists and convert both documentation sets",
			Long:    "Extract the latest links, then convert the Svelte and SvelteKit\ndocumentation, each merged into one PDF.",
			FlagSet: func() *flag.FlagSet { return newDocsFlagSet(&docsFlags{}) },
		},
		{
			Name:    cmdExtract,
			Desc:    "Refresh the documentation link lists",
			Long:    "Read the docs navigation of each index page and write links/<source>.yaml.",
			FlagSet: func() *flag.FlagSet { return newExtractFlagSet(&extractFlags{}) },
		},
		{
			Name:    cmdMerge,
			Args:    "<output.pdf> <input.pdf>...",
			Desc:    "Merge existing PDF files into one",
			Long:    "Append the pages of every input, in order, to a new document.\nUnreadable inputs are reported and skipped.",
			FlagSet: func() *flag.FlagSet { return newMergeFlagSet(&mergeFlags{}) },
			ArgGlob: "*.pdf",
		},
		{
			Name: cmdDoctor,
			Desc: "Check the browser and environment",
			Long: "Check Chrome/Chromium, sandbox settings and the temp directory.",
			FlagSet: func() *flag.FlagSet {
				var jsonOutput bool
				return newDoctorFlagSet(&jsonOutput)
			},
		},
		{
			Name: cmdCompletion,
			Args: "<shell>",
			Desc: "Generate shell completion script",
			Long: "Generate a completion script for bash, zsh or fish.",
		},
		{
			Name: cmdVersion,
			Desc: "Show version information",
			Long: "Show version information.",
		},
		{
			Name: cmdHelp,
			Args: "[command]",
			Desc: "Show help for a command",
			Long: "Show help for a command.",
		},
	}
}

// lookupCommand returns the command named name.
func lookupCommand(name string) (commandInfo, bool) {
	for _, c := range commandInfos() {
		if c.Name == name {
			return c, true
		}
	}
	return commandInfo{}, false
}

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docs2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandInfos() {
		fmt.Fprintf(w, "  %-11s%s\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docs2pdf help <command>' for details on a specific command.")
}

// printCommandUsage prints usage for one command. Unknown names print the
// main usage.
func printCommandUsage(w io.Writer, name string) {
	c, ok := lookupCommand(name)
	if !ok {
		printUsage(w)
		return
	}

	synopsis := "docs2pdf " + c.Name
	if c.FlagSet != nil {
		synopsis += " [flags]"
	}
	if c.Args != "" {
		synopsis += " " + c.Args
	}

	fmt.Fprintf(w, "Usage: %s\n", synopsis)
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.Long)

	if c.FlagSet != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprint(w, c.FlagSet().FlagUsages())
	}
	if c.Name == cmdCompletion {
		fmt.Fprintln(w)
		printCompletionInstall(w)
	}
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	if _, ok := lookupCommand(args[0]); !ok {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	printCommandUsage(env.Stdout, args[0])
	return ExitSuccess
}
