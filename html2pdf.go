package eml2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-eml2pdf/internal/fileutil"
)

// backend renders one document to PDF bytes.
// Available reports whether the backend can run in this environment;
// the fallback text backend always can.
type backend interface {
	Available() bool
	Render(ctx context.Context, doc *document) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ backend = (*chromeBackend)(nil)
	_ backend = (*textBackend)(nil)
)

// chromeBackend renders the HTML document with headless Chrome via go-rod,
// preserving layout, inline images, and multi-page flow.
type chromeBackend struct {
	browser *rod.Browser
	timeout time.Duration
	page    *PageSettings
}

// newChromeBackend creates a chromeBackend with the given timeout and
// page settings.
func newChromeBackend(timeout time.Duration, page *PageSettings) *chromeBackend {
	return &chromeBackend{timeout: timeout, page: page}
}

// Available reports whether a browser binary can be found.
// ROD_BROWSER_BIN overrides detection (Docker/containerized environments).
func (b *chromeBackend) Available() bool {
	if os.Getenv("ROD_BROWSER_BIN") != "" {
		return true
	}
	_, found := launcher.LookPath()
	return found
}

// ensureBrowser lazily connects to the browser.
func (b *chromeBackend) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.browser = rod.New().ControlURL(u)
	if err := b.browser.Connect(); err != nil {
		b.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (b *chromeBackend) Close() error {
	if b.browser != nil {
		err := b.browser.Close()
		b.browser = nil
		return err
	}
	return nil
}

// Render writes the document HTML to a temp file, opens it in headless
// Chrome, and prints it to PDF. Returns explicit errors instead of
// panicking when browser operations fail.
func (b *chromeBackend) Render(ctx context.Context, doc *document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(doc.HTML(), "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := b.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(b.buildPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF from the page settings.
func (b *chromeBackend) buildPDFOptions() *proto.PagePrintToPDF {
	width, height := b.page.paperDimensions()
	margin := b.page.margin()

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
