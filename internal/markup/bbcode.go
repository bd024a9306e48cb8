// Package markup converts Godot's BBCode documentation markup into
// Rustdoc-compatible Markdown, sanitized for embedding in doc comments.
package markup

import (
	"regexp"
	"strings"
)

var (
	memberTag   = regexp.MustCompile(`\[member\s+([^\]]+)\]`)
	paramTag    = regexp.MustCompile(`\[param\s+([^\]]+)\]`)
	constantTag = regexp.MustCompile(`\[constant\s+([^\]]+)\]`)
	methodTag   = regexp.MustCompile(`\[method\s+([^\]]+)\]`)
	signalTag   = regexp.MustCompile(`\[signal\s+([^\]]+)\]`)
	enumTag     = regexp.MustCompile(`\[enum\s+([^\]]+)\]`)
	urlTag      = regexp.MustCompile(`\[url=([^\]]+)\]([^\[]+)\[/url\]`)
	codeblock   = regexp.MustCompile(`(?s)\[codeblock\](.*?)\[/codeblock\]`)
	codeblocks  = regexp.MustCompile(`(?s)\[codeblocks\](.*?)\[/codeblocks\]`)
	leftoverTag = regexp.MustCompile(`\[/?[a-zA-Z0-9_]+\]`)
)

// ToMarkdown converts the fixed set of BBCode tags Godot uses in class
// documentation to Markdown. Tags outside that set are stripped so no raw
// BBCode leaks into generated comments.
func ToMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"[b]", "**", "[/b]", "**",
		"[i]", "*", "[/i]", "*",
		"[code]", "`", "[/code]", "`",
	)
	text = replacer.Replace(text)

	text = memberTag.ReplaceAllString(text, "`$1`")
	text = paramTag.ReplaceAllString(text, "`$1`")
	text = constantTag.ReplaceAllString(text, "`$1`")
	text = methodTag.ReplaceAllString(text, "`$1()`")
	text = signalTag.ReplaceAllString(text, "`$1`")
	text = enumTag.ReplaceAllString(text, "`$1`")
	// The leftover stripper below must not eat the [text] half of the
	// Markdown links produced here, so links are built with placeholder
	// brackets and restored after stripping.
	text = urlTag.ReplaceAllString(text, "\x00$2\x01($1)")

	// Dedent before trimming so the indentation the schema uses inside the
	// tag body is measured over every line, not just the ones after the first.
	text = codeblock.ReplaceAllStringFunc(text, func(m string) string {
		code := codeblock.FindStringSubmatch(m)[1]
		return "\n```text\n" + strings.TrimSpace(Dedent(code)) + "\n```\n"
	})
	text = codeblocks.ReplaceAllStringFunc(text, func(m string) string {
		code := codeblocks.FindStringSubmatch(m)[1]
		return "\n```gdscript\n" + strings.TrimSpace(Dedent(code)) + "\n```\n"
	})

	text = leftoverTag.ReplaceAllString(text, "")
	return strings.NewReplacer("\x00", "[", "\x01", "]").Replace(text)
}

// Dedent strips the longest whitespace prefix common to all non-blank lines.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	margin := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		for !strings.HasPrefix(indent, margin) {
			margin = margin[:len(margin)-1]
		}
	}
	if margin == "" {
		return text
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}
