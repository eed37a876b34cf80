package eml2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// paperDimensions returns the paper width and height in inches,
// honoring the orientation. Nil settings fall back to portrait letter.
func (p *PageSettings) paperDimensions() (width, height float64) {
	size := PageSizeLetter
	orientation := OrientationPortrait
	if p != nil {
		if p.Size != "" {
			size = strings.ToLower(p.Size)
		}
		if p.Orientation != "" {
			orientation = strings.ToLower(p.Orientation)
		}
	}

	switch size {
	case PageSizeA4:
		width, height = 8.27, 11.69
	case PageSizeLegal:
		width, height = 8.5, 14
	default:
		width, height = 8.5, 11
	}

	if orientation == OrientationLandscape {
		width, height = height, width
	}
	return width, height
}

// margin returns the configured margin in inches, or the default.
func (p *PageSettings) margin() float64 {
	if p == nil || p.Margin == 0 {
		return DefaultMargin
	}
	return p.Margin
}

// Input contains conversion parameters for a single message.
type Input struct {
	SourcePath         string // EML file to convert (required)
	OutputPath         string // destination PDF path (required)
	AttachmentsDir     string // directory for extracted attachments (required when ExtractAttachments)
	ExtractAttachments bool   // write attachment parts to AttachmentsDir
	Overwrite          bool   // replace an existing PDF instead of skipping
}

// Status describes the terminal state of a single conversion.
type Status string

// Conversion statuses.
const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ConversionResult holds the outcome of a single conversion.
// One per input message; immutable once returned.
type ConversionResult struct {
	SourcePath         string
	OutputPath         string
	AttachmentsWritten int
	Warnings           []string
	Status             Status
	Err                error
	Duration           time.Duration
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout   time.Duration
	forceText bool
	page      *PageSettings
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-message rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("eml2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithForceText disables the browser backend unconditionally, rendering
// every message with the structured text backend. Output is deterministic:
// byte-identical across runs for the same input.
func WithForceText(force bool) Option {
	return func(c *Converter) {
		c.cfg.forceText = force
	}
}

// WithPageSettings sets page dimensions for rendered PDFs.
// Settings are validated on the first Convert call.
func WithPageSettings(p *PageSettings) Option {
	return func(c *Converter) {
		c.cfg.page = p
	}
}
