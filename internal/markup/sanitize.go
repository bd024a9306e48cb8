package markup

import "strings"

// SanitizeDocComment makes text safe to embed inside Rust doc comments.
// It expands tabs, escapes sequences that would close a block comment or
// open a nested line doc comment, and balances inline-code backticks so
// malformed input never produces unparsable output.
func SanitizeDocComment(text string) string {
	text = strings.ReplaceAll(text, "\t", "    ")
	text = strings.ReplaceAll(text, "*/", `*\/`)
	text = strings.ReplaceAll(text, "///", `\/\/\/`)

	if strings.Count(text, "`")%2 != 0 {
		text += "`"
	}
	return text
}
