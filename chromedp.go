package docs2pdf

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// chromedpEngine implements browserEngine using chromedp.
// The browser process is started on first use and shared by every tab.
type chromedpEngine struct {
	timeout       time.Duration
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func newChromedpEngine(timeout time.Duration) *chromedpEngine {
	return &chromedpEngine{timeout: timeout}
}

// ensureBrowser starts the browser process if needed.
func (c *chromedpEngine) ensureBrowser() error {
	if c.browserCtx != nil {
		return nil
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
	)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(bin))
	}
	if SandboxDisabled(os.Getenv) {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface before the first page.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	c.allocCancel = allocCancel
	c.browserCtx = browserCtx
	c.browserCancel = browserCancel
	return nil
}

// Close stops the browser process.
func (c *chromedpEngine) Close() error {
	if c.browserCancel != nil {
		c.browserCancel()
		c.allocCancel()
		c.browserCtx = nil
		c.browserCancel = nil
		c.allocCancel = nil
	}
	return nil
}

// tab opens a new tab bound to ctx and the load timeout.
func (c *chromedpEngine) tab(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	timeout, err := timeoutFor(ctx, c.timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	if err := c.ensureBrowser(); err != nil {
		return nil, nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	timeoutCtx, timeoutCancel := context.WithTimeout(tabCtx, timeout)

	// Propagate cancellation of the caller's context to the tab.
	stop := context.AfterFunc(ctx, timeoutCancel)

	return timeoutCtx, func() {
		stop()
		timeoutCancel()
		tabCancel()
	}, nil
}

// FetchHTML loads url and returns the rendered document.
func (c *chromedpEngine) FetchHTML(ctx context.Context, url string) (string, error) {
	tabCtx, cancel, err := c.tab(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	var html string
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	return html, nil
}

// Print loads url, swaps in the transformed document and prints it.
func (c *chromedpEngine) Print(ctx context.Context, url string, transform transformFunc, params printParams) ([]byte, error) {
	tabCtx, cancel, err := c.tab(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	var html string
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}

	printable, err := transform(html)
	if err != nil {
		return nil, err
	}

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, printable).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(params.PaperWidth).
				WithPaperHeight(params.PaperHeight).
				WithMarginTop(params.MarginTop).
				WithMarginRight(params.MarginRight).
				WithMarginBottom(params.MarginBottom).
				WithMarginLeft(params.MarginLeft).
				WithScale(params.Scale).
				WithLandscape(params.Landscape).
				WithPrintBackground(params.PrintBackground).
				Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	return buf, nil
}
