// Package config loads YAML configuration for the eml2pdf CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrEmptyPath      = errors.New("config path cannot be empty")
)

// MaxConfigSize limits config input to prevent memory exhaustion (1MB).
const MaxConfigSize = 1 << 20

// Config holds all configuration for batch conversion.
// CLI flags override any value set here.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Attachments AttachmentsConfig `yaml:"attachments"`
	Convert     ConvertConfig     `yaml:"convert"`
	Render      RenderConfig      `yaml:"render"`
	Page        PageConfig        `yaml:"page"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = must specify)
}

// AttachmentsConfig defines attachment extraction options.
type AttachmentsConfig struct {
	Enabled bool   `yaml:"enabled"` // Extract attachments (default: true)
	Dir     string `yaml:"dir"`     // Directory within output for attachments (default: "attachments")
}

// ConvertConfig defines batch conversion options.
type ConvertConfig struct {
	Recursive bool   `yaml:"recursive"` // Descend into subdirectories
	Overwrite bool   `yaml:"overwrite"` // Replace existing PDFs
	Workers   int    `yaml:"workers"`   // Parallel workers (0 = auto, default: 1)
	Timeout   string `yaml:"timeout"`   // Per-message render timeout, e.g. "30s", "2m"
}

// RenderConfig defines rendering backend options.
type RenderConfig struct {
	ForceText bool `yaml:"forceText"` // Disable the browser backend unconditionally
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// DefaultConfig returns the configuration used when no file is given:
// attachments extracted under "attachments/", sequential processing.
func DefaultConfig() *Config {
	return &Config{
		Attachments: AttachmentsConfig{Enabled: true, Dir: "attachments"},
		Convert:     ConvertConfig{Workers: 1},
	}
}

// LoadConfig loads configuration from a YAML file.
// Unknown fields are rejected to catch typos early.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrConfigParse, path, MaxConfigSize)
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks config values that have a constrained domain.
func (c *Config) Validate() error {
	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("page.size: invalid value %q (must be letter, a4, or legal)", c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("page.orientation: invalid value %q (must be portrait or landscape)", c.Page.Orientation)
		}
	}
	if c.Convert.Workers < 0 {
		return fmt.Errorf("convert.workers: must be >= 0, got %d", c.Convert.Workers)
	}
	if c.Convert.Timeout != "" {
		if _, err := time.ParseDuration(c.Convert.Timeout); err != nil {
			return fmt.Errorf("convert.timeout: %v", err)
		}
	}
	return nil
}
