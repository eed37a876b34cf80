package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: eml2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert EML files to PDF")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'eml2pdf help convert' for details on the convert command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: eml2pdf convert <input_path> <output_dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert EML files to PDF. Produces <output_dir>/<stem>.pdf per message")
	fmt.Fprintln(w, "and <output_dir>/attachments/<stem>/ for extracted attachments.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input_path    EML file or directory")
	fmt.Fprintln(w, "  output_dir    Output directory for PDFs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --recursive             Descend into subdirectories")
	fmt.Fprintln(w, "      --overwrite             Replace existing output PDFs")
	fmt.Fprintln(w, "      --no-attachments        Skip extracting attachments")
	fmt.Fprintln(w, "      --attachments-dir <s>   Attachments directory; relative names nest")
	fmt.Fprintln(w, "                              under the output directory, absolute paths")
	fmt.Fprintln(w, "                              are used as-is")
	fmt.Fprintln(w, "      --force-text            Disable the browser backend (deterministic)")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = config default)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Per-message render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>            Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <path>         Config file path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  EML2PDF_FORCE_TEXT=1        Same as --force-text")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN=<path>      Browser binary for the HTML backend")
}
