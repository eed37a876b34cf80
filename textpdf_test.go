package eml2pdf

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func testDocument(bodyText string) *document {
	return &document{
		Summary: HeaderSummary{
			Subject: "Test Subject",
			From:    "alice@example.com",
			To:      "bob@example.com",
			Date:    "Mon, 02 Jan 2006 15:04:05 -0700",
		},
		Body: &ResolvedBody{ContentType: ContentPlainText, Text: bodyText},
	}
}

func TestTextBackendRender(t *testing.T) {
	b := newTextBackend(nil, false)

	pdf, err := b.Render(context.Background(), testDocument("Hello World"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF magic, got %q", pdf[:min(len(pdf), 8)])
	}
	if len(pdf) == 0 {
		t.Error("output is empty")
	}
}

func TestTextBackendDeterministic(t *testing.T) {
	b := newTextBackend(nil, true)
	doc := testDocument("Same input, same output.")

	first, err := b.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := b.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("deterministic renders differ byte-for-byte")
	}
}

func TestTextBackendContentVisible(t *testing.T) {
	// Deterministic mode disables stream compression, so the text shows
	// up literally in the content stream.
	b := newTextBackend(nil, true)

	pdf, err := b.Render(context.Background(), testDocument("findable-body-marker"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.Contains(pdf, []byte("findable-body-marker")) {
		t.Error("body text missing from uncompressed PDF output")
	}
	if !bytes.Contains(pdf, []byte("Test Subject")) {
		t.Error("subject missing from header block")
	}
}

func TestTextBackendAttachmentSummary(t *testing.T) {
	b := newTextBackend(nil, true)
	doc := testDocument("see attached")
	doc.Attachments = []ExtractedAttachment{
		{SanitizedFilename: "report.pdf", MIMEType: "application/pdf", Size: 1234},
	}

	pdf, err := b.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.Contains(pdf, []byte("report.pdf")) {
		t.Error("attachment filename missing from output")
	}
	if !bytes.Contains(pdf, []byte("1234 bytes")) {
		t.Error("attachment size missing from output")
	}
}

func TestTextBackendLongBodyGrows(t *testing.T) {
	b := newTextBackend(nil, true)

	short, err := b.Render(context.Background(), testDocument("one line"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	long, err := b.Render(context.Background(), testDocument(strings.Repeat("a reasonably long paragraph of body text\n", 300)))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(long) <= len(short) {
		t.Errorf("long body output (%d bytes) not larger than short (%d bytes)", len(long), len(short))
	}
	// 300 lines cannot fit one page; the pages object must count more.
	if bytes.Contains(long, []byte("/Count 1\n")) {
		t.Error("long body did not paginate")
	}
}

func TestTextBackendCancelledContext(t *testing.T) {
	b := newTextBackend(nil, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.Render(ctx, testDocument("x")); err == nil {
		t.Error("Render() with cancelled context, want error")
	}
}

func TestTextBackendPageSizes(t *testing.T) {
	tests := []struct {
		name            string
		page            *PageSettings
		wantOrientation string
		wantSize        string
	}{
		{"nil defaults", nil, "P", "Letter"},
		{"a4 portrait", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5}, "P", "A4"},
		{"legal landscape", &PageSettings{Size: "legal", Orientation: "landscape", Margin: 0.5}, "L", "Legal"},
		{"case insensitive", &PageSettings{Size: "A4", Orientation: "LANDSCAPE", Margin: 0.5}, "L", "A4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTextBackend(tt.page, false)
			if got := b.fpdfOrientation(); got != tt.wantOrientation {
				t.Errorf("fpdfOrientation() = %q, want %q", got, tt.wantOrientation)
			}
			if got := b.fpdfPageSize(); got != tt.wantSize {
				t.Errorf("fpdfPageSize() = %q, want %q", got, tt.wantSize)
			}
		})
	}
}

func TestTextBackendAlwaysAvailable(t *testing.T) {
	b := newTextBackend(nil, false)
	if !b.Available() {
		t.Error("Available() = false, want true")
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
