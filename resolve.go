package eml2pdf

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
)

// Body content types.
type BodyContentType string

const (
	ContentHTML      BodyContentType = "html"
	ContentPlainText BodyContentType = "text"
)

// ResolvedBody is the single body representation selected for rendering.
// Derived from a ParsedMessage; exists only for the duration of one
// message's rendering.
type ResolvedBody struct {
	ContentType BodyContentType
	HTML        string            // renderable HTML fragment (cid references rewritten, markup sanitized)
	Text        string            // visible text for the fallback backend
	InlineRefs  map[string]string // contentId -> resolved local path
}

// bodyPolicy sanitizes HTML bodies before rendering: scripts, styles, and
// event handlers are stripped, local file references for rewritten inline
// images are allowed.
var bodyPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowURLSchemes("http", "https", "mailto", "cid", "file", "data")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
	return p
}()

// ResolveContent selects the body to render and rewrites inline content
// references. HTML is preferred when non-empty; else plain text (escaped,
// line breaks preserved); else an empty placeholder. A bodyless message
// is not an error, it renders a header-only PDF.
//
// Every cid:<id> reference matching an extracted attachment's contentId is
// rewritten to that attachment's local path. Unresolved references are
// left as-is and reported as warnings.
func ResolveContent(msg *ParsedMessage, attachments []ExtractedAttachment) (*ResolvedBody, []string) {
	refs := make(map[string]string, len(attachments))
	for _, a := range attachments {
		if a.ContentID != "" {
			refs[a.ContentID] = a.Path
		}
	}

	if htmlBody := msg.HTMLBody(); htmlBody != "" {
		rewritten, warnings := rewriteContentIDs(htmlBody, refs)
		sanitized := bodyPolicy.Sanitize(rewritten)
		return &ResolvedBody{
			ContentType: ContentHTML,
			HTML:        sanitized,
			Text:        VisibleText(sanitized),
			InlineRefs:  refs,
		}, warnings
	}

	text := msg.TextBody()
	body := &ResolvedBody{
		ContentType: ContentPlainText,
		Text:        text,
		InlineRefs:  refs,
	}
	if text != "" {
		// Escape for the HTML backend; <pre> keeps line breaks intact.
		body.HTML = "<pre>" + html.EscapeString(text) + "</pre>"
	}
	return body, nil
}

// rewriteContentIDs replaces cid: URLs in src/href attributes with local
// file references. Returns the rewritten HTML and one warning per
// unresolved reference.
func rewriteContentIDs(htmlContent string, refs map[string]string) (string, []string) {
	if !strings.Contains(htmlContent, "cid:") {
		return htmlContent, nil
	}

	doc, err := xhtml.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// Not parseable as markup; leave untouched, the sanitizer and
		// text stripper still get a chance at it.
		return htmlContent, []string{fmt.Sprintf("cannot parse HTML body for cid resolution: %v", err)}
	}

	var warnings []string
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode {
			for i, attr := range n.Attr {
				if attr.Key != "src" && attr.Key != "href" {
					continue
				}
				id, ok := strings.CutPrefix(attr.Val, "cid:")
				if !ok {
					continue
				}
				id = strings.Trim(id, "<>")
				if path, found := refs[id]; found {
					n.Attr[i].Val = "file://" + path
				} else {
					warnings = append(warnings, fmt.Sprintf("unresolved content reference cid:%s", id))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var sb strings.Builder
	if err := xhtml.Render(&sb, doc); err != nil {
		return htmlContent, warnings
	}
	return sb.String(), warnings
}
