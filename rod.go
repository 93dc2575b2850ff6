package docs2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docs2pdf/internal/process"
)

// requestIdleWindow is how long the network must stay quiet before a page
// counts as loaded, close to puppeteer's networkidle2.
const requestIdleWindow = 500 * time.Millisecond

// rodEngine implements browserEngine using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodEngine struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newRodEngine(timeout time.Duration) *rodEngine {
	return &rodEngine{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodEngine) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if SandboxDisabled(os.Getenv) {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	return nil
}

// Close releases browser resources.
func (r *rodEngine) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		r.launcher.Kill()
		r.launcher.Cleanup()
		r.launcher = nil
	}
	return err
}

// open creates a tab, navigates to url and waits until it is loaded.
// The returned page carries a timeout; callers must close it.
func (r *rodEngine) open(ctx context.Context, url string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout, err := timeoutFor(ctx, r.timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	p := page.Context(ctx).Timeout(timeout)
	wait := p.WaitRequestIdle(requestIdleWindow, nil, nil, nil)

	if err := p.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	wait()

	if err := p.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}

	return p, nil
}

// FetchHTML loads url and returns the rendered document.
func (r *rodEngine) FetchHTML(ctx context.Context, url string) (string, error) {
	page, err := r.open(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() {
		page.CancelTimeout()
		_ = page.Close()
	}()

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: reading document: %v", ErrNavigation, err)
	}
	return html, nil
}

// Print loads url, swaps in the transformed document and prints it.
func (r *rodEngine) Print(ctx context.Context, url string, transform transformFunc, params printParams) ([]byte, error) {
	page, err := r.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		page.CancelTimeout()
		_ = page.Close()
	}()

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("%w: reading document: %v", ErrNavigation, err)
	}

	printable, err := transform(html)
	if err != nil {
		return nil, err
	}

	if err := page.SetDocumentContent(printable); err != nil {
		return nil, fmt.Errorf("%w: replacing document: %v", ErrPDFGeneration, err)
	}
	// Images referenced by the fragment may still be loading.
	_ = page.WaitLoad()

	reader, err := page.PDF(buildRodPDFOptions(params))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// buildRodPDFOptions maps printParams to proto.PagePrintToPDF.
func buildRodPDFOptions(p printParams) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		Landscape:       p.Landscape,
		PrintBackground: p.PrintBackground,
		Scale:           floatPtr(p.Scale),
		PaperWidth:      floatPtr(p.PaperWidth),
		PaperHeight:     floatPtr(p.PaperHeight),
		MarginTop:       floatPtr(p.MarginTop),
		MarginBottom:    floatPtr(p.MarginBottom),
		MarginLeft:      floatPtr(p.MarginLeft),
		MarginRight:     floatPtr(p.MarginRight),
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
