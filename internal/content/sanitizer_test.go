package content_test

import (
	"strings"
	"testing"

	"github.com/research-editing-site/internal/content"
)

func TestSanitizeEmpty(t *testing.T) {
	if got := content.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

func TestSanitizeStripsScripts(t *testing.T) {
	got := content.Sanitize("<p>ok</p><script>evil()</script>")
	if got != "<p>ok</p>" {
		t.Errorf("Sanitize() = %q, want %q", got, "<p>ok</p>")
	}
}

func TestSanitizeStripsJavascriptURIs(t *testing.T) {
	tests := []string{
		`<img src="javascript:alert(1)">`,
		`<a href="javascript:alert(1)">click</a>`,
		`<a href="JaVaScRiPt:alert(1)">click</a>`,
	}
	for _, in := range tests {
		got := content.Sanitize(in)
		if strings.Contains(strings.ToLower(got), "javascript:") {
			t.Errorf("Sanitize(%q) = %q, javascript: URI survived", in, got)
		}
	}
}

func TestSanitizeAllowedSchemes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "https link kept",
			in:   `<a href="https://example.com" title="ref">ref</a>`,
			want: `href="https://example.com"`,
		},
		{
			name: "mailto link kept",
			in:   `<a href="mailto:hello@example.com">mail</a>`,
			want: `href="mailto:hello@example.com"`,
		},
		{
			name: "data image kept",
			in:   `<img src="data:image/png;base64,iVBORw0KGgo=">`,
			want: `src="data:image/png;base64,iVBORw0KGgo="`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := content.Sanitize(tt.in)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Sanitize(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeImageAttributes(t *testing.T) {
	in := `<img src="https://example.com/a.png" alt="figure" width="640" height="480" loading="lazy" onerror="evil()" style="position:fixed">`
	got := content.Sanitize(in)

	for _, want := range []string{`src=`, `alt="figure"`, `width="640"`, `height="480"`, `loading="lazy"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Sanitize() = %q, missing %q", got, want)
		}
	}
	for _, banned := range []string{"onerror", "style"} {
		if strings.Contains(got, banned) {
			t.Errorf("Sanitize() = %q, %q attribute survived", got, banned)
		}
	}
}

func TestSanitizeKeepsRichText(t *testing.T) {
	in := "<h2>Heading</h2><p>Body with <strong>bold</strong> and <em>emphasis</em>.</p><ul><li>one</li><li>two</li></ul><blockquote>quoted</blockquote>"
	got := content.Sanitize(in)
	if got != in {
		t.Errorf("rich text should pass through unchanged:\n in: %s\ngot: %s", in, got)
	}
}

func TestSanitizeDropsUnknownElements(t *testing.T) {
	got := content.Sanitize(`<p>before</p><iframe src="https://example.com"></iframe><object></object><p>after</p>`)
	for _, banned := range []string{"<iframe", "<object"} {
		if strings.Contains(got, banned) {
			t.Errorf("Sanitize() = %q, %s element survived", got, banned)
		}
	}
	if !strings.Contains(got, "<p>before</p>") || !strings.Contains(got, "<p>after</p>") {
		t.Errorf("Sanitize() = %q, surrounding paragraphs lost", got)
	}
}
