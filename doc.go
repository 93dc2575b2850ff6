// Package docs2pdf renders documentation web pages to PDF using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert a page, and close when done:
//
//	conv, err := docs2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	pdf, err := conv.Convert(ctx, "https://svelte.dev/docs/kit/load", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("load.pdf", pdf, 0644)
//
// # Content Extraction
//
// Only the documentation region of a page is printed. After the page has
// loaded, the converter keeps the header and the ".text.content" element of
// "#docs-content" (see DefaultExtractionRule), falls back to the whole
// container when the text element is missing, and fails with
// ErrSelectorNotFound when the container itself is absent. The kept fragment
// replaces the page body; scripts are removed and a print stylesheet is
// appended.
//
// # Print Options
//
// A nil *PDFOptions prints with DefaultPDFOptions: A4 portrait, scale 0.7,
// 1cm margins and background graphics:
//
//	opts := docs2pdf.DefaultPDFOptions()
//	opts.Landscape = true
//	opts.Margin = docs2pdf.UniformMargin("0.5in")
//	pdf, err := conv.Convert(ctx, url, opts)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := docs2pdf.NewConverter(
//	    docs2pdf.WithTimeout(2 * time.Minute),
//	    docs2pdf.WithEngine(docs2pdf.EngineChromedp),
//	)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The default go-rod engine
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/);
// the chromedp engine uses the Chrome found on the system.
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary; the
// sandbox is then disabled too, as it is when CI=true.
package docs2pdf
