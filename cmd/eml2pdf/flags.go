package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common         commonFlags
	recursive      bool
	overwrite      bool
	noAttachments  bool
	attachmentsDir string
	forceText      bool
	workers        int
	timeout        string
	page           pageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.BoolVar(&f.recursive, "recursive", false, "descend into subdirectories")
	fs.BoolVar(&f.overwrite, "overwrite", false, "replace existing output PDFs")
	fs.BoolVar(&f.noAttachments, "no-attachments", false, "skip extracting attachments")
	fs.StringVar(&f.attachmentsDir, "attachments-dir", "", "directory for saved attachments (relative to output dir unless absolute)")
	fs.BoolVar(&f.forceText, "force-text", false, "disable the browser backend (deterministic output)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = config default)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-message render timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
