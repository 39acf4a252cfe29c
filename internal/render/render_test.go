package render

import (
	"strings"
	"testing"

	"github.com/sudo-self/sudollama/internal/models"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != "dark" {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().WithWidth(100).WithStyle("light")

	if opts.Width != 100 {
		t.Errorf("expected Width=100, got %d", opts.Width)
	}
	if opts.Style != "light" {
		t.Errorf("expected Style='light', got %s", opts.Style)
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown("```go\nfunc main() {}\n```", DefaultOptions().WithStyle("notty"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "func main() {}") {
		t.Errorf("rendered output missing code: %q", out)
	}
}

func TestHTML_EscapesMarkup(t *testing.T) {
	tests := []struct {
		name string
		msg  models.ChatMessage
	}{
		{"user", models.NewUserMessage("<script>alert(1)</script>")},
		{"assistant", models.NewAssistantMessage("<script>alert(1)</script>", false)},
		{"error", models.NewAssistantMessage("<script>alert(1)</script>", true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := HTML(tt.msg)
			if strings.Contains(out, "<script>") || strings.Contains(out, "</script>") {
				t.Errorf("HTML() left markup unescaped: %s", out)
			}
			if !strings.Contains(out, "&lt;script&gt;alert(1)&lt;/script&gt;") {
				t.Errorf("HTML() = %s, want escaped text", out)
			}
		})
	}
}

func TestHTML_EscapesAllSignificantCharacters(t *testing.T) {
	out := HTML(models.NewUserMessage(`a & b "c" 'd' <e>`))
	want := `a &amp; b &#34;c&#34; &#39;d&#39; &lt;e&gt;`
	if !strings.Contains(out, want) {
		t.Errorf("HTML() = %s, want to contain %s", out, want)
	}
}

func TestHTML_CodeBlockHeuristic(t *testing.T) {
	tests := []struct {
		name    string
		msg     models.ChatMessage
		wantPre bool
	}{
		{"assistant fenced", models.NewAssistantMessage("```python\nprint(1)\n```", false), true},
		{"assistant plain", models.NewAssistantMessage("print(1)", false), false},
		{"assistant fence in middle", models.NewAssistantMessage("Here:\n```x```", false), false},
		{"user fenced", models.NewUserMessage("```python\nprint(1)\n```"), false},
		{"leading space", models.NewAssistantMessage(" ```x```", false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := HTML(tt.msg)
			hasPre := strings.Contains(out, "<pre") && strings.Contains(out, "<code>")
			if hasPre != tt.wantPre {
				t.Errorf("HTML() = %s, wantPre %v", out, tt.wantPre)
			}
			if !tt.wantPre && !strings.HasPrefix(out, "<p") {
				t.Errorf("HTML() = %s, want inline paragraph", out)
			}
		})
	}
}

func TestHTML_LabelsAndClasses(t *testing.T) {
	user := HTML(models.NewUserMessage("hi"))
	if user != `<p class="user"><b>Human:</b> hi</p>` {
		t.Errorf("HTML(user) = %s", user)
	}

	failed := HTML(models.NewAssistantMessage("Error: boom", true))
	if failed != `<p class="assistant error"><b>Llama:</b> Error: boom</p>` {
		t.Errorf("HTML(error) = %s", failed)
	}
}

func TestSanitizeTerminal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"markup untouched", "<script>alert(1)</script>", "<script>alert(1)</script>"},
		{"color codes", "\x1b[31mred\x1b[0m", "red"},
		{"osc title", "\x1b]0;pwned\x07text", "text"},
		{"bell and backspace", "a\x07b\x08c", "abc"},
		{"keeps newline and tab", "a\n\tb", "a\n\tb"},
		{"crlf", "a\r\nb", "a\nb"},
		{"unicode", "héllo 世界", "héllo 世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTerminal(tt.in); got != tt.want {
				t.Errorf("SanitizeTerminal(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBody_Paragraph(t *testing.T) {
	msg := models.NewAssistantMessage("**not bold** \x1b[2J<b>x</b>", false)
	got := Body(msg, DefaultOptions())
	if got != "**not bold** <b>x</b>" {
		t.Errorf("Body() = %q, want literal sanitized text", got)
	}
}

func TestBody_UserFenceStaysLiteral(t *testing.T) {
	msg := models.NewUserMessage("```go\nx := 1\n```")
	if got := Body(msg, DefaultOptions()); got != msg.Text {
		t.Errorf("Body() = %q, want unchanged user text", got)
	}
}

func TestBody_CodeBlock(t *testing.T) {
	msg := models.NewAssistantMessage("```go\nfmt.Println(\"<hi>\")\n```", false)
	got := Body(msg, DefaultOptions().WithStyle("notty").WithWidth(60))

	if !strings.Contains(got, `fmt.Println("<hi>")`) {
		t.Errorf("Body() = %q, want code content", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("Body() = %q, well-formed fence should not be shown literally", got)
	}
}

func TestCodeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single block", "```go\nx\n```", "```go\nx\n```"},
		{"trailing newline", "```go\nx\n```\n", "```go\nx\n```"},
		{"unterminated", "```go\nx", "````\n```go\nx\n````"},
		{"prose after block", "```\nx\n```\nmore", "````\n```\nx\n```\nmore\n````"},
		{"bare fence", "```", "````\n```\n````"},
		{"long run inside", "```\n`````\n```", "``````\n```\n`````\n```\n``````"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeMarkdown(tt.in); got != tt.want {
				t.Errorf("codeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMaxBacktickRun(t *testing.T) {
	tests := map[string]int{
		"":          0,
		"abc":       0,
		"`a``b":     2,
		"```x````":  4,
		"x`y`z`w``": 2,
	}
	for in, want := range tests {
		if got := maxBacktickRun(in); got != want {
			t.Errorf("maxBacktickRun(%q) = %d, want %d", in, got, want)
		}
	}
}
