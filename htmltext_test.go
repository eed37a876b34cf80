package eml2pdf

import (
	"strings"
	"testing"
)

func TestVisibleText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "inline markup stripped",
			html: "<p>Hello <b>Bob</b></p>",
			want: "Hello Bob",
		},
		{
			name: "br becomes newline",
			html: "line one<br>line two",
			want: "line one\nline two",
		},
		{
			name: "block elements separate lines",
			html: "<p>first</p><p>second</p>",
			want: "first\n\nsecond",
		},
		{
			name: "script dropped",
			html: `<p>visible</p><script>alert("hidden")</script>`,
			want: "visible",
		},
		{
			name: "style dropped",
			html: "<style>p { color: red }</style><p>styled</p>",
			want: "styled",
		},
		{
			name: "list items on own lines",
			html: "<ul><li>alpha</li><li>beta</li></ul>",
			want: "alpha\n\nbeta",
		},
		{
			name: "empty input",
			html: "",
			want: "",
		},
		{
			name: "plain text passes through",
			html: "no markup at all",
			want: "no markup at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleText(tt.html)
			if got != tt.want {
				t.Errorf("VisibleText(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}

func TestVisibleTextCollapsesNewlines(t *testing.T) {
	got := VisibleText("<div><div><div>deep</div></div></div><p>after</p>")
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("VisibleText() = %q, runs of newlines not collapsed", got)
	}
	if !strings.Contains(got, "deep") || !strings.Contains(got, "after") {
		t.Errorf("VisibleText() = %q, content lost", got)
	}
}
