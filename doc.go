// Package eml2pdf converts EML email message files to PDF documents.
//
// # Quick Start
//
// Create a converter, convert a message, and close when done:
//
//	conv := eml2pdf.NewConverter()
//	defer conv.Close()
//
//	result := conv.Convert(ctx, eml2pdf.Input{
//	    SourcePath:         "inbox/report.eml",
//	    OutputPath:         "out/report.pdf",
//	    AttachmentsDir:     "out/attachments/report",
//	    ExtractAttachments: true,
//	})
//	if result.Err != nil {
//	    log.Fatal(result.Err)
//	}
//
// The result records the terminal status (success, skipped, failed), the
// number of attachments written, and any warnings accumulated along the
// way. A message's failure is reported through the result, never raised,
// so batch callers keep going.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Message parsing into headers, body parts, and attachment parts
//     (jhillyerd/enmime; charset decoding never fails)
//  2. Attachment extraction with filename sanitization and collision
//     counters, one directory per message
//  3. Content resolution: HTML body preferred, plain text fallback,
//     cid: references rewritten to extracted attachment paths
//  4. PDF rendering via headless Chrome (go-rod) when a browser is
//     available, else a structured text backend (go-pdf/fpdf)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := eml2pdf.NewConverter(
//	    eml2pdf.WithTimeout(2 * time.Minute),
//	    eml2pdf.WithForceText(true),
//	    eml2pdf.WithPageSettings(&eml2pdf.PageSettings{Size: "a4"}),
//	)
//
// WithForceText disables the browser backend for deterministic,
// byte-identical output across runs; the EML2PDF_FORCE_TEXT=1 environment
// variable is mapped to this option by the CLI, never read by the
// library itself.
package eml2pdf
