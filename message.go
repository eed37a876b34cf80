package eml2pdf

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"github.com/jhillyerd/enmime"
)

// HeaderField is a single header name/value pair.
type HeaderField struct {
	Name  string
	Value string
}

// Headers holds message headers in original order.
// Lookups are case-insensitive; duplicate fields are preserved.
type Headers struct {
	fields []HeaderField
}

// Get returns the first value for the given header name, or "".
func (h Headers) Get(name string) string {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// Values returns all values for the given header name, in order.
func (h Headers) Values(name string) []string {
	var values []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

// Fields returns all header fields in original order.
func (h Headers) Fields() []HeaderField {
	return h.fields
}

// HeaderSummary holds the headers rendered at the top of every PDF.
type HeaderSummary struct {
	Subject string
	From    string
	To      string
	Date    string
}

// BodyPart is a renderable body representation of the message.
// Text is decoded to UTF-8; characters the declared charset could not
// decode are replaced, never rejected.
type BodyPart struct {
	MIMEType string // "text/plain" or "text/html"
	Charset  string
	Text     string
}

// AttachmentPart is a non-body part of the message.
type AttachmentPart struct {
	Filename  string
	MIMEType  string
	ContentID string // without angle brackets, "" if absent
	Content   []byte
	Inline    bool // inline disposition or referenced by Content-ID
}

// ParsedMessage is the structured form of one EML file.
// Immutable once parsed; the conversion pipeline never mutates it.
type ParsedMessage struct {
	Headers     Headers
	BodyParts   []BodyPart
	Attachments []AttachmentPart
	Defects     []string // non-fatal structural problems found while parsing
}

// TextBody returns the plain text body, or "".
func (m *ParsedMessage) TextBody() string {
	return m.bodyByType("text/plain")
}

// HTMLBody returns the HTML body, or "".
func (m *ParsedMessage) HTMLBody() string {
	return m.bodyByType("text/html")
}

func (m *ParsedMessage) bodyByType(mimeType string) string {
	for _, p := range m.BodyParts {
		if p.MIMEType == mimeType {
			return p.Text
		}
	}
	return ""
}

// Summary extracts the From/To/Subject/Date headers for rendering.
func (m *ParsedMessage) Summary() HeaderSummary {
	return HeaderSummary{
		Subject: m.Headers.Get("Subject"),
		From:    m.Headers.Get("From"),
		To:      m.Headers.Get("To"),
		Date:    m.Headers.Get("Date"),
	}
}

// ParseMessage parses raw EML bytes into a ParsedMessage.
// Handles single-part and multipart messages; multipart/alternative keeps
// both renderings so the resolver can prefer HTML. Charset decoding never
// fails: undecodable bytes become replacement characters.
// Returns ErrMalformedMessage when the structure cannot be decoded at all.
func ParseMessage(raw []byte) (*ParsedMessage, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedMessage)
	}

	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	msg := &ParsedMessage{
		Headers: parseRawHeaders(raw),
	}

	if text := strings.TrimSpace(env.Text); text != "" {
		msg.BodyParts = append(msg.BodyParts, BodyPart{
			MIMEType: "text/plain",
			Charset:  "utf-8",
			Text:     text,
		})
	}
	if html := strings.TrimSpace(env.HTML); html != "" {
		msg.BodyParts = append(msg.BodyParts, BodyPart{
			MIMEType: "text/html",
			Charset:  "utf-8",
			Text:     html,
		})
	}

	for _, part := range env.Attachments {
		msg.Attachments = append(msg.Attachments, attachmentFromPart(part, false))
	}
	for _, part := range env.Inlines {
		if isBodyPart(part) {
			continue
		}
		msg.Attachments = append(msg.Attachments, attachmentFromPart(part, true))
	}
	for _, part := range env.OtherParts {
		msg.Attachments = append(msg.Attachments, attachmentFromPart(part, part.ContentID != ""))
	}

	for _, e := range env.Errors {
		msg.Defects = append(msg.Defects, fmt.Sprintf("%s: %s", e.Name, e.Detail))
	}

	return msg, nil
}

// attachmentFromPart converts an enmime part to an AttachmentPart.
func attachmentFromPart(part *enmime.Part, inline bool) AttachmentPart {
	return AttachmentPart{
		Filename:  part.FileName,
		MIMEType:  part.ContentType,
		ContentID: strings.Trim(part.ContentID, "<>"),
		Content:   part.Content,
		Inline:    inline,
	}
}

// isBodyPart reports whether an inline part duplicates the message body
// (enmime surfaces inline text parts next to images).
func isBodyPart(part *enmime.Part) bool {
	if part.FileName != "" || part.ContentID != "" {
		return false
	}
	switch part.ContentType {
	case "text/plain", "text/html":
		return true
	}
	return false
}

// parseRawHeaders extracts the header block in original order.
// The body after the first blank line is ignored; continuation lines are
// unfolded and RFC 2047 encoded words decoded.
func parseRawHeaders(raw []byte) Headers {
	block := raw
	if idx := bytes.Index(raw, []byte("\r\n\r\n")); idx != -1 {
		block = raw[:idx]
	} else if idx := bytes.Index(raw, []byte("\n\n")); idx != -1 {
		block = raw[:idx]
	}

	var h Headers
	var current *HeaderField

	for _, line := range strings.Split(string(block), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		// Continuation of the previous field
		if line[0] == ' ' || line[0] == '\t' {
			if current != nil {
				current.Value += " " + strings.TrimSpace(line)
			}
			continue
		}

		if current != nil {
			current.Value = decodeHeaderValue(current.Value)
			h.fields = append(h.fields, *current)
			current = nil
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		current = &HeaderField{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		}
	}

	if current != nil {
		current.Value = decodeHeaderValue(current.Value)
		h.fields = append(h.fields, *current)
	}

	return h
}

// decodeHeaderValue decodes RFC 2047 encoded words.
// Example: =?UTF-8?Q?Invitaci=C3=B3n?= -> Invitación
// Returns the original string if decoding fails.
func decodeHeaderValue(s string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(s)
	if err != nil {
		return s
	}
	return decoded
}
