package render

import (
	"fmt"
	"strings"

	"github.com/sudo-self/sudollama/internal/models"
)

// Body returns the sanitized display text of msg for a terminal of the given width.
// Code-block replies are rendered as a preformatted block through glamour;
// everything else is plain text with no markup interpretation.
func Body(msg models.ChatMessage, opts Options) string {
	text := SanitizeTerminal(msg.Text)
	if !msg.IsCodeBlock() {
		return text
	}

	rendered, err := Markdown(codeMarkdown(text), opts)
	if err != nil {
		return text
	}
	return strings.Trim(rendered, "\n")
}

// codeMarkdown turns a reply that starts with a fence into markdown that
// renders as exactly one code block. A single well-formed fenced block is kept
// as is so its language hint drives highlighting; anything else is wrapped in
// a longer fence and shown verbatim.
func codeMarkdown(text string) string {
	trimmed := strings.TrimRight(text, " \t\n")
	if len(trimmed) >= 2*len(models.CodeFence) &&
		strings.HasSuffix(trimmed, models.CodeFence) &&
		strings.Count(trimmed, models.CodeFence) == 2 &&
		maxBacktickRun(trimmed) == len(models.CodeFence) {
		return trimmed
	}

	n := maxBacktickRun(text) + 1
	if n < 4 {
		n = 4
	}
	fence := strings.Repeat("`", n)
	return fence + "\n" + text + "\n" + fence
}

// maxBacktickRun returns the length of the longest run of backticks in s
func maxBacktickRun(s string) int {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	return longest
}

// HTML renders msg as an HTML fragment. All message text is escaped.
// Classification is exposed as a class attribute; styling belongs to the page.
func HTML(msg models.ChatMessage) string {
	class := msg.Sender.String()
	if msg.IsError {
		class += " error"
	}
	label := EscapeHTML(msg.Sender.Label())
	text := EscapeHTML(msg.Text)

	if msg.IsCodeBlock() {
		return fmt.Sprintf(`<p class="%s"><b>%s:</b></p><pre class="%s"><code>%s</code></pre>`, class, label, class, text)
	}
	return fmt.Sprintf(`<p class="%s"><b>%s:</b> %s</p>`, class, label, text)
}
