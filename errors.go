package eml2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Message-level errors.
	ErrMalformedMessage  = errors.New("malformed email message")
	ErrDestinationExists = errors.New("destination PDF already exists")
	ErrRender            = errors.New("PDF rendering failed")

	// Browser backend errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Input validation errors.
	ErrNoSourcePath = errors.New("source path cannot be empty")
	ErrNoOutputPath = errors.New("output path cannot be empty")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)
