package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	eml2pdf "github.com/alnah/go-eml2pdf"
	"github.com/alnah/go-eml2pdf/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"no input", ErrNoInput, ExitUsage},
		{"no output", ErrNoOutput, ExitUsage},
		{"bad extension", ErrInvalidExtension, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", fmt.Errorf("%w: bad yaml", config.ErrConfigParse), ExitUsage},
		{"bad page size", fmt.Errorf("%w: tabloid", eml2pdf.ErrInvalidPageSize), ExitUsage},
		{"bad margin", eml2pdf.ErrInvalidMargin, ExitUsage},
		{"missing path", os.ErrNotExist, ExitIO},
		{"wrapped missing path", fmt.Errorf("discovering messages: %w", os.ErrNotExist), ExitIO},
		{"no messages", ErrNoMessages, ExitIO},
		{"browser connect", fmt.Errorf("%w: no binary", eml2pdf.ErrBrowserConnect), ExitBrowser},
		{"batch failure", errors.New("2 conversion(s) failed"), ExitGeneral},
		{"render error", eml2pdf.ErrRender, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
