package eml2pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-eml2pdf/internal/fileutil"
)

// Converter orchestrates the EML-to-PDF conversion pipeline for single
// messages: parse, extract attachments, resolve content, render, write.
// Create with NewConverter, use Convert per message, and Close when done.
type Converter struct {
	cfg  converterConfig
	html backend
	text backend
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithForceText).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create backends if not injected (e.g., by tests)
	if c.html == nil {
		c.html = newChromeBackend(c.cfg.timeout, c.cfg.page)
	}
	if c.text == nil {
		c.text = newTextBackend(c.cfg.page, c.cfg.forceText)
	}

	return c
}

// Convert processes one EML file into a PDF. The context is used for
// cancellation and timeout. Errors never propagate past the result: the
// Status and Err fields record the outcome so a batch caller can keep
// going. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{
		SourcePath: input.SourcePath,
		OutputPath: input.OutputPath,
		Status:     StatusFailed,
	}
	defer func() {
		if r := recover(); r != nil {
			result.Status = StatusFailed
			result.Err = fmt.Errorf("internal error: %v", r)
		}
		result.Duration = time.Since(start)
	}()

	if err := c.validateInput(input); err != nil {
		result.Err = err
		return result
	}

	if fileutil.FileExists(input.OutputPath) && !input.Overwrite {
		result.Status = StatusSkipped
		result.Err = fmt.Errorf("%w: %s", ErrDestinationExists, input.OutputPath)
		return result
	}

	raw, err := os.ReadFile(input.SourcePath) // #nosec G304 -- caller-provided path
	if err != nil {
		result.Err = fmt.Errorf("reading message: %w", err)
		return result
	}

	msg, err := ParseMessage(raw)
	if err != nil {
		result.Err = err
		return result
	}
	result.Warnings = append(result.Warnings, msg.Defects...)

	var attachments []ExtractedAttachment
	if input.ExtractAttachments {
		var warnings []string
		attachments, warnings, err = ExtractAttachments(msg, input.AttachmentsDir)
		result.Warnings = append(result.Warnings, warnings...)
		if err != nil {
			// Extraction failure is not fatal; cid references dangle.
			result.Warnings = append(result.Warnings, fmt.Sprintf("attachment extraction failed: %v", err))
		}
	}
	result.AttachmentsWritten = len(attachments)

	body, warnings := ResolveContent(msg, attachments)
	result.Warnings = append(result.Warnings, warnings...)

	doc := &document{
		Summary:     msg.Summary(),
		Body:        body,
		Attachments: attachments,
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	pdfBytes, warnings, err := c.render(ctx, doc)
	result.Warnings = append(result.Warnings, warnings...)
	if err != nil {
		result.Err = err
		return result
	}

	if err := writeFileAtomic(input.OutputPath, pdfBytes); err != nil {
		result.Err = fmt.Errorf("writing PDF: %w", err)
		return result
	}

	result.Status = StatusSuccess
	result.Err = nil
	return result
}

// render selects a backend and renders the document. A browser backend
// failure is retried once on the text backend before surfacing as a
// message-level RenderError.
func (c *Converter) render(ctx context.Context, doc *document) ([]byte, []string, error) {
	if c.cfg.forceText || !c.html.Available() {
		pdfBytes, err := c.text.Render(ctx, doc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		return pdfBytes, nil, nil
	}

	pdfBytes, err := c.html.Render(ctx, doc)
	if err == nil {
		return pdfBytes, nil, nil
	}
	if ctx.Err() != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	warnings := []string{fmt.Sprintf("browser rendering failed, retrying with text backend: %v", err)}
	pdfBytes, retryErr := c.text.Render(ctx, doc)
	if retryErr != nil {
		return nil, warnings, fmt.Errorf("%w: %v (fallback: %v)", ErrRender, err, retryErr)
	}
	return pdfBytes, warnings, nil
}

// Close releases backend resources (headless Chrome browser).
func (c *Converter) Close() error {
	var errs []error
	if c.html != nil {
		errs = append(errs, c.html.Close())
	}
	if c.text != nil {
		errs = append(errs, c.text.Close())
	}
	return errors.Join(errs...)
}

// validateInput checks that required fields are present and valid.
func (c *Converter) validateInput(input Input) error {
	if input.SourcePath == "" {
		return ErrNoSourcePath
	}
	if input.OutputPath == "" {
		return ErrNoOutputPath
	}
	if input.ExtractAttachments && input.AttachmentsDir == "" {
		return errors.New("attachments directory required when extraction is enabled")
	}
	return c.cfg.page.Validate()
}

// writeFileAtomic writes data to path via a temp file in the destination
// directory and a rename, so readers never observe a partial PDF.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".eml2pdf-*.pdf")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, filePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
