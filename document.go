package eml2pdf

import (
	"fmt"
	"html"
	"strings"
)

// document bundles everything a rendering backend needs for one message.
type document struct {
	Summary     HeaderSummary
	Body        *ResolvedBody
	Attachments []ExtractedAttachment
}

// documentStyle is the stylesheet for the generated HTML scaffold.
const documentStyle = `
      body { font-family: Arial, sans-serif; font-size: 12px; color: #111; }
      .meta { margin-bottom: 16px; }
      .meta div { margin: 2px 0; }
      .content { margin-top: 8px; }
      pre { white-space: pre-wrap; font-family: Arial, sans-serif; }
      h2 { margin-top: 24px; font-size: 14px; }
`

// HTML builds the full HTML document for the browser backend: a header
// block (Subject/From/To/Date), the resolved body, and an attachment
// summary when attachments were extracted.
func (d *document) HTML() string {
	var sb strings.Builder
	sb.WriteString("<!doctype html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>")
	sb.WriteString(documentStyle)
	sb.WriteString("</style>\n</head>\n<body>\n")

	sb.WriteString("<div class=\"meta\">\n")
	writeMetaLine(&sb, "Subject", d.Summary.Subject)
	writeMetaLine(&sb, "From", d.Summary.From)
	writeMetaLine(&sb, "To", d.Summary.To)
	writeMetaLine(&sb, "Date", d.Summary.Date)
	sb.WriteString("</div>\n")

	sb.WriteString("<div class=\"content\">")
	if d.Body != nil {
		sb.WriteString(d.Body.HTML)
	}
	sb.WriteString("</div>\n")

	if len(d.Attachments) > 0 {
		sb.WriteString("<h2>Attachments</h2>\n<ul>\n")
		for _, a := range d.Attachments {
			fmt.Fprintf(&sb, "<li><strong>%s</strong> (%s, %d bytes)</li>\n",
				html.EscapeString(a.SanitizedFilename), html.EscapeString(a.MIMEType), a.Size)
		}
		sb.WriteString("</ul>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// BodyText returns the body as plain text for the fallback backend.
func (d *document) BodyText() string {
	if d.Body == nil {
		return ""
	}
	return d.Body.Text
}

// HeaderLines returns the header block rows in render order.
func (d *document) HeaderLines() []string {
	return []string{
		"Subject: " + d.Summary.Subject,
		"From: " + d.Summary.From,
		"To: " + d.Summary.To,
		"Date: " + d.Summary.Date,
	}
}

func writeMetaLine(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "<div><strong>%s:</strong> %s</div>\n", label, html.EscapeString(value))
}
