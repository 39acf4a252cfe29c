package render

import (
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// SanitizeTerminal makes untrusted text safe to print: ANSI escape sequences
// are removed, and so is every other control character except newline and tab.
func SanitizeTerminal(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// EscapeHTML escapes the characters that are significant in HTML markup.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
