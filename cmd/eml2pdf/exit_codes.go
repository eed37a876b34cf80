package main

import (
	"errors"
	"os"

	eml2pdf "github.com/alnah/go-eml2pdf"
	"github.com/alnah/go-eml2pdf/internal/config"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess = 0 // all conversions succeeded or were skipped
	ExitGeneral = 1 // one or more conversions failed
	ExitUsage   = 2 // bad flags, arguments, or config
	ExitIO      = 3 // input path missing or unreadable
	ExitBrowser = 4 // browser backend could not be reached
)

// exitCodeFor maps an error to its exit code. Usage and environment
// problems get distinct codes so scripts can tell them apart from
// conversion failures.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrNoOutput),
		errors.Is(err, ErrInvalidExtension),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrEmptyPath),
		errors.Is(err, eml2pdf.ErrInvalidPageSize),
		errors.Is(err, eml2pdf.ErrInvalidOrientation),
		errors.Is(err, eml2pdf.ErrInvalidMargin):
		return ExitUsage
	case errors.Is(err, os.ErrNotExist),
		errors.Is(err, ErrNoMessages):
		return ExitIO
	case errors.Is(err, eml2pdf.ErrBrowserConnect):
		return ExitBrowser
	default:
		return ExitGeneral
	}
}
