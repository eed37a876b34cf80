package eml2pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Text backend layout constants.
const (
	textFontFamily = "Helvetica"
	textFontSize   = 11
	textLineHeight = 5.5 // mm
	mmPerInch      = 25.4
)

// fixedCreationDate pins PDF metadata in deterministic mode so repeated
// runs produce byte-identical output.
var fixedCreationDate = time.Unix(0, 0).UTC()

// textBackend is the always-available fallback renderer: a structured
// text-only PDF with a header block, word-wrapped body, and attachment
// summary. Page breaks are inserted automatically when content exceeds
// the page height.
type textBackend struct {
	page          *PageSettings
	deterministic bool
}

// newTextBackend creates a textBackend. With deterministic set, output
// embeds no timestamp metadata and is byte-identical across runs.
func newTextBackend(page *PageSettings, deterministic bool) *textBackend {
	return &textBackend{page: page, deterministic: deterministic}
}

// Available always returns true; this backend has no external requirements.
func (b *textBackend) Available() bool { return true }

// Close is a no-op; the text backend holds no resources.
func (b *textBackend) Close() error { return nil }

// Render produces the fallback PDF for one document.
func (b *textBackend) Render(ctx context.Context, doc *document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New(b.fpdfOrientation(), "mm", b.fpdfPageSize(), "")
	margin := b.page.margin() * mmPerInch
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)

	if b.deterministic {
		pdf.SetCreationDate(fixedCreationDate)
		pdf.SetModificationDate(fixedCreationDate)
		pdf.SetCompression(false)
		// Without catalog sorting fpdf emits font objects in Go map
		// iteration order, which is randomized per instance.
		pdf.SetCatalogSort(true)
	}

	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header block: each header on its own line, long lines wrapped.
	lines := doc.HeaderLines()
	pdf.SetFont(textFontFamily, "B", 12)
	pdf.MultiCell(0, textLineHeight, tr(lines[0]), "", "L", false)
	pdf.SetFont(textFontFamily, "", textFontSize)
	for _, line := range lines[1:] {
		pdf.MultiCell(0, textLineHeight, tr(line), "", "L", false)
	}
	pdf.Ln(textLineHeight)

	// Body with automatic word wrapping and page breaks.
	if body := doc.BodyText(); body != "" {
		for _, para := range strings.Split(body, "\n") {
			if strings.TrimSpace(para) == "" {
				pdf.Ln(textLineHeight)
				continue
			}
			pdf.MultiCell(0, textLineHeight, tr(para), "", "L", false)
		}
	}

	if len(doc.Attachments) > 0 {
		pdf.Ln(textLineHeight)
		pdf.SetFont(textFontFamily, "B", textFontSize)
		pdf.MultiCell(0, textLineHeight, "Attachments:", "", "L", false)
		pdf.SetFont(textFontFamily, "", textFontSize)
		for _, a := range doc.Attachments {
			line := fmt.Sprintf("- %s (%s, %d bytes)", a.SanitizedFilename, a.MIMEType, a.Size)
			pdf.MultiCell(0, textLineHeight, tr(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return buf.Bytes(), nil
}

// fpdfOrientation maps PageSettings to fpdf's orientation code.
func (b *textBackend) fpdfOrientation() string {
	if b.page != nil && strings.EqualFold(b.page.Orientation, OrientationLandscape) {
		return "L"
	}
	return "P"
}

// fpdfPageSize maps PageSettings to fpdf's page size name.
func (b *textBackend) fpdfPageSize() string {
	if b.page == nil {
		return "Letter"
	}
	switch strings.ToLower(b.page.Size) {
	case PageSizeA4:
		return "A4"
	case PageSizeLegal:
		return "Legal"
	default:
		return "Letter"
	}
}
