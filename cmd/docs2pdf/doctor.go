package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/assets"
	"github.com/alnah/go-docs2pdf/internal/hints"
	"github.com/alnah/go-docs2pdf/internal/links"
)

// Overall doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// Check levels.
const (
	levelOK    = "ok"
	levelWarn  = "warn"
	levelError = "error"
)

// Report sections, in print order.
const (
	sectionBrowser     = "Browser"
	sectionEnvironment = "Environment"
	sectionAssets      = "Assets"
	sectionSystem      = "System"
)

var doctorSections = []string{sectionBrowser, sectionEnvironment, sectionAssets, sectionSystem}

// doctorCheck is one line of the report.
type doctorCheck struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Level   string `json:"level"`
	Detail  string `json:"detail"`
}

// doctorResult is what doctor prints, as text or JSON.
type doctorResult struct {
	Status   string        `json:"status"`
	Platform string        `json:"platform"`
	Engine   string        `json:"engine"`
	Browser  string        `json:"browser,omitempty"`
	Checks   []doctorCheck `json:"checks"`
}

func (r *doctorResult) add(section, name, level, detail string) {
	r.Checks = append(r.Checks, doctorCheck{Section: section, Name: name, Level: level, Detail: detail})
}

// count returns how many checks have level.
func (r *doctorResult) count(level string) int {
	n := 0
	for _, c := range r.Checks {
		if c.Level == level {
			n++
		}
	}
	return n
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Warnings still exit 0; any error check exits 1.
func runDoctorCmd(args []string, env *Environment) int {
	var jsonOutput bool
	fs := newDoctorFlagSet(&jsonOutput)
	if _, err := parseArgs(fs, args); err != nil {
		if isHelp(err) {
			printCommandUsage(env.Stdout, cmdDoctor)
			return ExitSuccess
		}
		printError(env, usageError(err))
		return ExitUsage
	}

	result := runDoctor(env.Getenv)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor runs every check against the environment read through getenv.
func runDoctor(getenv func(string) string) *doctorResult {
	engine := strings.ToLower(getenv("DOCS2PDF_ENGINE"))
	if engine == "" {
		engine = docs2pdf.EngineRod
	}

	r := &doctorResult{
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Engine:   engine,
	}

	checkEngine(r)
	checkBrowser(r, getenv)
	checkEnvironment(r, getenv)
	checkAssets(r, getenv("DOCS2PDF_ASSET_PATH"))
	checkSystem(r)

	switch {
	case r.count(levelError) > 0:
		r.Status = statusErrors
	case r.count(levelWarn) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

func checkEngine(r *doctorResult) {
	if !docs2pdf.IsValidEngine(r.Engine) {
		r.add(sectionBrowser, "Engine", levelError,
			fmt.Sprintf("DOCS2PDF_ENGINE=%s is not an engine (%s, %s)", r.Engine, docs2pdf.EngineRod, docs2pdf.EngineChromedp))
		return
	}
	r.add(sectionBrowser, "Engine", levelOK, r.Engine)
}

// checkBrowser looks for Chrome/Chromium: ROD_BROWSER_BIN first, then the
// locations rod searches. Both engines drive the same binary.
func checkBrowser(r *doctorResult, getenv func(string) string) {
	bin := getenv("ROD_BROWSER_BIN")
	if bin == "" {
		found, ok := launcher.LookPath()
		if !ok {
			level := levelWarn
			detail := "not installed; rod downloads Chromium on first use"
			if r.Engine == docs2pdf.EngineChromedp {
				level = levelError
				detail = "not installed; install Chrome or set ROD_BROWSER_BIN"
			}
			r.add(sectionBrowser, "Chrome/Chromium", level, detail)
			return
		}
		bin = found
	}

	if _, err := os.Stat(bin); err != nil {
		r.add(sectionBrowser, "Chrome/Chromium", levelError, "not found at "+bin)
		return
	}
	r.Browser = bin
	r.add(sectionBrowser, "Chrome/Chromium", levelOK, bin)

	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- browser path from env or launcher lookup
	if err != nil {
		r.add(sectionBrowser, "Version", levelWarn, fmt.Sprintf("cannot run %s --version: %v", filepath.Base(bin), err))
	} else {
		r.add(sectionBrowser, "Version", levelOK, strings.TrimSpace(string(out)))
	}

	if docs2pdf.SandboxDisabled(getenv) {
		r.add(sectionBrowser, "Sandbox", levelOK, "disabled")
	} else {
		r.add(sectionBrowser, "Sandbox", levelOK, "enabled")
	}
}

// checkEnvironment reports container and CI detection. Chrome's sandbox
// usually fails in both unless it is disabled.
func checkEnvironment(r *doctorResult, getenv func(string) string) {
	r.add(sectionEnvironment, "Platform", levelOK, r.Platform)

	container, why := isContainer(getenv)
	if container {
		r.add(sectionEnvironment, "Container", levelOK, "detected ("+why+")")
	}

	ci := ""
	for _, v := range hints.CIVariables {
		if getenv(v) != "" {
			ci = v
			break
		}
	}
	if ci != "" {
		r.add(sectionEnvironment, "CI", levelOK, "detected ("+ci+")")
	}

	if (container || ci != "") && !docs2pdf.SandboxDisabled(getenv) {
		r.add(sectionEnvironment, "Sandbox", levelWarn, "container or CI detected; set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether we run in a container, and which signal said so.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("DOCS2PDF_CONTAINER") == "1" {
		return true, "DOCS2PDF_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkAssets loads the print stylesheet and both link lists the way the
// svelte and sveltekit commands do.
func checkAssets(r *doctorResult, assetPath string) {
	dir := assetPath
	if dir == "" {
		dir = defaultAssetDir
	}

	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		r.add(sectionAssets, "Directory", levelError, err.Error())
		return
	}
	r.add(sectionAssets, "Directory", levelOK, dir)

	if _, err := resolver.LoadStyle(assets.DefaultStyleName); err != nil {
		r.add(sectionAssets, "Print style", levelError, err.Error())
	} else {
		r.add(sectionAssets, "Print style", levelOK, assets.DefaultStyleName+".css")
	}

	for _, src := range links.Sources() {
		name := src.Title + " links"
		data, err := resolver.LoadLinks(src.Name)
		if err != nil {
			r.add(sectionAssets, name, levelWarn, err.Error()+"; run 'docs2pdf extract'")
			continue
		}
		urls, err := links.Parse(data, links.FormatYAML)
		if err != nil {
			r.add(sectionAssets, name, levelError, err.Error())
			continue
		}
		r.add(sectionAssets, name, levelOK, fmt.Sprintf("%d URLs", len(urls)))
	}
}

// checkSystem verifies the temp directory is writable; both engines put the
// browser profile there.
func checkSystem(r *doctorResult) {
	tmpDir := os.TempDir()
	probe := filepath.Join(tmpDir, "docs2pdf-doctor-probe")
	if err := os.WriteFile(probe, []byte("probe"), 0o600); err != nil {
		r.add(sectionSystem, "Temp directory", levelError, "not writable: "+tmpDir)
		return
	}
	_ = os.Remove(probe)
	r.add(sectionSystem, "Temp directory", levelOK, "writable")
}

// printDoctorResult writes the report section by section.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "docs2pdf doctor")

	for _, section := range doctorSections {
		printed := false
		for _, c := range r.Checks {
			if c.Section != section {
				continue
			}
			if !printed {
				fmt.Fprintf(w, "\n%s\n", section)
				printed = true
			}
			fmt.Fprintf(w, "  [%s] %s: %s\n", strings.ToUpper(c.Level), c.Name, c.Detail)
		}
	}
	fmt.Fprintln(w)

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintf(w, "Status: Ready with %d warning(s)\n", r.count(levelWarn))
	case statusErrors:
		fmt.Fprintf(w, "Status: Not ready (%d error(s))\n", r.count(levelError))
	}
}
