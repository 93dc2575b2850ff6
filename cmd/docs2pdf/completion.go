package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	docs2pdf "github.com/alnah/go-docs2pdf"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long       string   // --output
	Short      string   // -o (empty if none)
	Type       flagType // completion type
	Desc       string   // help text
	Values     []string // for enum flags
	FileGlob   string   // for file flags, e.g. "*.yaml,*.yml"
	Repeatable bool
}

// commandDef describes a command for completion.
type commandDef struct {
	Name     string
	Desc     string
	Flags    []flagDef
	ArgGlob  string   // file glob for positional arguments
	ArgWords []string // fixed positional values
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"engine": {Values: []string{docs2pdf.EngineRod, docs2pdf.EngineChromedp}},
	"format": {Values: []string{
		docs2pdf.FormatA4, docs2pdf.FormatLetter, docs2pdf.FormatLegal,
		docs2pdf.FormatTabloid, docs2pdf.FormatLedger, docs2pdf.FormatA3, docs2pdf.FormatA5,
	}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"links":  {FileGlob: "*.txt,*.yaml,*.yml,*.md"},
	"output": {FileGlob: "*.pdf"},

	"output-dir":    {IsDir: true},
	"dir":           {IsDir: true},
	"svelte-dir":    {IsDir: true},
	"sveltekit-dir": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "float32", "float64":
			fd.Type = flagFloat
		case "stringArray", "stringSlice":
			fd.Repeatable = true
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	infos := commandInfos()
	names := make([]string, 0, len(infos))
	for _, c := range infos {
		names = append(names, c.Name)
	}

	cmds := make([]commandDef, 0, len(infos))
	for _, c := range infos {
		def := commandDef{Name: c.Name, Desc: c.Desc, ArgGlob: c.ArgGlob}
		if c.FlagSet != nil {
			def.Flags = extractFlagsFromFlagSet(c.FlagSet())
		}
		switch c.Name {
		case cmdCompletion:
			def.ArgWords = []string{string(ShellBash), string(ShellZsh), string(ShellFish)}
		case cmdHelp:
			def.ArgWords = names
		}
		cmds = append(cmds, def)
	}
	return cmds
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(_ context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printCommandUsage(env.Stdout, cmdCompletion)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionInstall prints how to load the scripts.
func printCompletionInstall(w io.Writer) {
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(docs2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(docs2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    docs2pdf completion fish > ~/.config/fish/completions/docs2pdf.fish")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(cmds []commandDef) string {
	var b strings.Builder

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	b.WriteString("# bash completion for docs2pdf\n\n")
	b.WriteString("_docs2pdf() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	fmt.Fprintf(&b, "    local commands=%q\n\n", strings.Join(names, " "))
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=($(compgen -W \"${commands}\" -- \"${cur}\"))\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)

		if valued := bashValueCases(c.Flags); valued != "" {
			b.WriteString("            case \"${prev}\" in\n")
			b.WriteString(valued)
			b.WriteString("            esac\n")
		}

		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				words = append(words, "-"+f.Short)
			}
		}
		if len(words) > 0 {
			b.WriteString("            if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(words, " "))
			b.WriteString("                return\n")
			b.WriteString("            fi\n")
		}

		switch {
		case len(c.ArgWords) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(c.ArgWords, " "))
		case c.ArgGlob != "":
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '%s' -- \"${cur}\"))\n", bashGlob(c.ArgGlob))
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o default -F _docs2pdf docs2pdf\n")
	return b.String()
}

// bashValueCases completes the values of enum, file and dir flags.
func bashValueCases(flags []flagDef) string {
	var b strings.Builder
	for _, f := range flags {
		var reply string
		switch f.Type {
		case flagEnum:
			reply = fmt.Sprintf("compgen -W %q -- \"${cur}\"", strings.Join(f.Values, " "))
		case flagFile:
			reply = fmt.Sprintf("compgen -f -X '%s' -- \"${cur}\"", bashGlob(f.FileGlob))
		case flagDir:
			reply = "compgen -d -- \"${cur}\""
		default:
			continue
		}
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern = "-" + f.Short + "|" + pattern
		}
		fmt.Fprintf(&b, "                %s)\n", pattern)
		fmt.Fprintf(&b, "                    COMPREPLY=($(%s))\n", reply)
		b.WriteString("                    return\n")
		b.WriteString("                    ;;\n")
	}
	return b.String()
}

// bashGlob turns "*.yaml,*.yml" into the extglob filter "!*.@(yaml|yml)".
func bashGlob(glob string) string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return "!*.@(" + strings.Join(exts, "|") + ")"
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef docs2pdf\n\n")
	b.WriteString("_docs2pdf() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case $words[2] in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments -s")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, " \\\n                %s", zshFlagSpec(f))
		}
		switch {
		case len(c.ArgWords) > 0:
			fmt.Fprintf(&b, " \\\n                '1:argument:(%s)'", strings.Join(c.ArgWords, " "))
		case c.ArgGlob != "":
			fmt.Fprintf(&b, " \\\n                '*:file:_files -g \"%s\"'", zshGlob(c.ArgGlob))
		}
		b.WriteString("\n            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _docs2pdf docs2pdf\n")
	return b.String()
}

// zshFlagSpec returns the _arguments spec of one flag.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"" + zshGlob(f.FileGlob) + "\""
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value:"
	}

	repeat := ""
	if f.Repeatable {
		repeat = "*"
	}

	if f.Short == "" {
		return "'" + repeat + "--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)".
func zshGlob(glob string) string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	if len(exts) == 1 {
		return "*." + exts[0]
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// zshEscape escapes text for an _arguments description.
func zshEscape(s string) string {
	s = strings.NewReplacer("[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
	return zshQuote(s)
}

// zshQuote escapes single quotes inside a single-quoted word.
func zshQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for docs2pdf\n\n")
	b.WriteString("complete -c docs2pdf -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c docs2pdf -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range cmds {
		b.WriteString("\n")
		cond := fmt.Sprintf("-n '__fish_seen_subcommand_from %s'", c.Name)

		for _, f := range c.Flags {
			line := "complete -c docs2pdf " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long

			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'\n", fishQuote(f.Desc))
			b.WriteString(line)
		}

		switch {
		case len(c.ArgWords) > 0:
			fmt.Fprintf(&b, "complete -c docs2pdf %s -x -a '%s'\n", cond, strings.Join(c.ArgWords, " "))
		case c.ArgGlob != "":
			fmt.Fprintf(&b, "complete -c docs2pdf %s -F\n", cond)
		}
	}

	return b.String()
}

// fishQuote escapes text for a single-quoted fish string.
func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}
