// Package render turns chat messages into terminal or HTML output.
package render

// Options configures the code-block renderer.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style is a glamour standard style ("dark", "light", "notty", ...) or a path to a JSON style
	Style string
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width: 80,
		Style: "dark",
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// MarkdownStyle describes one of glamour's standard styles
type MarkdownStyle struct {
	Name        string
	Description string
}

var markdownStyles = []MarkdownStyle{
	{Name: "dark", Description: "Default dark terminal style"},
	{Name: "light", Description: "For light terminal backgrounds"},
	{Name: "dracula", Description: "Dracula color scheme"},
	{Name: "tokyo-night", Description: "Tokyo Night color scheme"},
	{Name: "pink", Description: "Pink accents"},
	{Name: "ascii", Description: "No colors, ASCII only"},
	{Name: "notty", Description: "Plain output for non-terminals"},
}

// AvailableMarkdownStyles returns glamour's standard styles
func AvailableMarkdownStyles() []MarkdownStyle {
	out := make([]MarkdownStyle, len(markdownStyles))
	copy(out, markdownStyles)
	return out
}

// MarkdownStyleNames returns the names of the standard styles
func MarkdownStyleNames() []string {
	names := make([]string, len(markdownStyles))
	for i, s := range markdownStyles {
		names[i] = s.Name
	}
	return names
}
