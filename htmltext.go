package eml2pdf

import (
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

// blockElements introduce a line break around their content when HTML is
// stripped to visible text.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "table": true,
	"ul": true, "ol": true, "blockquote": true, "pre": true, "section": true,
	"article": true, "header": true, "footer": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// VisibleText strips HTML markup down to its visible text content.
// Tags are removed, script/style contents dropped, and <br> plus block
// elements become newlines. Runs of three or more newlines collapse to a
// blank line.
func VisibleText(htmlContent string) string {
	doc, err := xhtml.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return strings.TrimSpace(htmlContent)
	}

	var sb strings.Builder
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		switch n.Type {
		case xhtml.TextNode:
			sb.WriteString(n.Data)
			return
		case xhtml.ElementNode:
			switch n.Data {
			case "script", "style", "head":
				return
			case "br":
				sb.WriteString("\n")
				return
			}
			if blockElements[n.Data] {
				sb.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == xhtml.ElementNode && blockElements[n.Data] {
			sb.WriteString("\n")
		}
	}
	walk(doc)

	text := excessNewlines.ReplaceAllString(sb.String(), "\n\n")
	return strings.TrimSpace(text)
}
