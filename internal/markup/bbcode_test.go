package markup

import (
	"strings"
	"testing"
)

func TestToMarkdownInlineTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bold", "[b]strong[/b]", "**strong**"},
		{"italic", "[i]em[/i]", "*em*"},
		{"inline code", "[code]get_node()[/code]", "`get_node()`"},
		{"member", "Emitted when [member name] changes.", "Emitted when `name` changes."},
		{"param", "See [param body].", "See `body`."},
		{"constant", "Returns [constant OK].", "Returns `OK`."},
		{"method", "Call [method queue_free] first.", "Call `queue_free()` first."},
		{"signal", "Fires [signal pressed].", "Fires `pressed`."},
		{"enum", "One of [enum Error].", "One of `Error`."},
		{"url", "[url=https://godotengine.org]docs[/url]", "[docs](https://godotengine.org)"},
		{"unknown tags stripped", "a [gdscript]x[/gdscript] b", "a x b"},
		{"bare unknown tag stripped", "before [kbd] after", "before  after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToMarkdown(tt.input); got != tt.expected {
				t.Errorf("ToMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// Link text must survive the unknown-tag stripper, which would otherwise
// match the [text] half of a just-produced Markdown link.
func TestToMarkdownLinkTextSurvivesStripping(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"link alone",
			"[url=https://godotengine.org]docs[/url]",
			"[docs](https://godotengine.org)",
		},
		{
			"link next to unknown tag",
			"[url=https://example.com]here[/url] [kbd]Ctrl[/kbd]",
			"[here](https://example.com) Ctrl",
		},
		{
			"two links",
			"[url=a]one[/url] and [url=b]two[/url]",
			"[one](a) and [two](b)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToMarkdown(tt.input); got != tt.expected {
				t.Errorf("ToMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestToMarkdownCodeblock(t *testing.T) {
	input := "Example:[codeblock]\n    var x = 1\n    print(x)\n[/codeblock]"
	got := ToMarkdown(input)

	want := "Example:\n```text\nvar x = 1\nprint(x)\n```\n"
	if got != want {
		t.Errorf("ToMarkdown codeblock = %q, want %q", got, want)
	}
}

func TestToMarkdownCodeblocksUsesGDScriptFence(t *testing.T) {
	got := ToMarkdown("[codeblocks]\n  print(1)\n[/codeblocks]")
	if !strings.Contains(got, "```gdscript\nprint(1)\n```") {
		t.Errorf("ToMarkdown codeblocks = %q, want gdscript fence", got)
	}
}

func TestDedent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"common margin", "  a\n    b\n  c", "a\n  b\nc"},
		{"no margin", "a\n  b", "a\n  b"},
		{"blank lines ignored", "  a\n\n  b", "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dedent(tt.input); got != tt.expected {
				t.Errorf("Dedent(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeDocComment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tabs expanded", "a\tb", "a    b"},
		{"block comment close escaped", "evil */ text", `evil *\/ text`},
		{"nested doc comment escaped", "/// nope", `\/\/\/ nope`},
		{"odd backticks balanced", "broken `code", "broken `code`"},
		{"even backticks untouched", "fine `code`", "fine `code`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDocComment(tt.input); got != tt.expected {
				t.Errorf("SanitizeDocComment(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
