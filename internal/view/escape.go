package view

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five characters that can break out of text or
// attribute context. Every interpolated field goes through it.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
