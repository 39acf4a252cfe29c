package render

import (
	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the chat window
type TUITheme struct {
	Name        string
	Description string

	Border lipgloss.Color

	Primary   lipgloss.Color // assistant
	Secondary lipgloss.Color // user
	Accent    lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
	CodeBg   lipgloss.Color
}

// Built-in TUI themes
var (
	// TokyoNightTheme is the default dark theme based on Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Border: lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#9ece6a"),
		Secondary: lipgloss.Color("#7aa2f7"),
		Accent:    lipgloss.Color("#bb9af7"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
		CodeBg:   lipgloss.Color("#1f2335"),
	}

	// ClassicTheme mirrors the palette of the original Sudo Llama window
	ClassicTheme = TUITheme{
		Name:        "classic",
		Description: "Classic - Charcoal with dodger blue and lime",

		Border: lipgloss.Color("#3c3f41"),

		Primary:   lipgloss.Color("#32cd32"), // Lime green
		Secondary: lipgloss.Color("#1e90ff"), // Dodger blue
		Accent:    lipgloss.Color("#1e90ff"),
		Error:     lipgloss.Color("#ff4500"), // Orange red

		Text:     lipgloss.Color("#ffffff"),
		TextDim:  lipgloss.Color("#a0a0a0"),
		TextMute: lipgloss.Color("#5c5c5c"),
		CodeBg:   lipgloss.Color("#282c34"),
	}

	// NordTheme is based on the Nord color palette
	NordTheme = TUITheme{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",

		Border: lipgloss.Color("#4c566a"),

		Primary:   lipgloss.Color("#a3be8c"), // Aurora green
		Secondary: lipgloss.Color("#88c0d0"), // Frost
		Accent:    lipgloss.Color("#b48ead"), // Aurora purple
		Error:     lipgloss.Color("#bf616a"), // Aurora red

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),
		CodeBg:   lipgloss.Color("#3b4252"),
	}
)

// currentTUITheme holds the currently active TUI theme
var currentTUITheme = TokyoNightTheme

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if ok {
		currentTUITheme = theme
		return true
	}
	return false
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		TokyoNightTheme,
		ClassicTheme,
		NordTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
