// Package tui provides the terminal chat window for sudollama.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/sudo-self/sudollama/internal/errors"
	"github.com/sudo-self/sudollama/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder    lipgloss.Color
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorError     lipgloss.Color
	colorText      lipgloss.Color
	colorTextDim   lipgloss.Color
	colorTextMute  lipgloss.Color
	colorCodeBg    lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle       lipgloss.Style
	titleStyle        lipgloss.Style
	subtitleStyle     lipgloss.Style
	hintStyle         lipgloss.Style
	messagesAreaStyle lipgloss.Style

	userLabelStyle       lipgloss.Style
	userBubbleStyle      lipgloss.Style
	assistantLabelStyle  lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	errorLabelStyle      lipgloss.Style
	errorBubbleStyle     lipgloss.Style
	codeBubbleStyle      lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	loadingStyle    lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style

	errorStyle lipgloss.Style

	welcomeStyle      lipgloss.Style
	welcomeTitleStyle lipgloss.Style
	welcomeIconStyle  lipgloss.Style

	configHeaderStyle       lipgloss.Style
	configSectionTitleStyle lipgloss.Style
	configPanelStyle        lipgloss.Style
	configPathStyle         lipgloss.Style
	configMenuItemStyle     lipgloss.Style
	configMenuSelectedStyle lipgloss.Style
	configCursorStyle       lipgloss.Style
	configValueStyle        lipgloss.Style
	configEnabledStyle      lipgloss.Style
	configDisabledStyle     lipgloss.Style
	configCurrentStyle      lipgloss.Style
	configFeedbackStyle     lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute
	colorCodeBg = theme.CodeBg

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2).
		MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1)

	// Sender labels are always bold; color only distinguishes senders
	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginLeft(4)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	errorLabelStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	errorBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorError).
		Foreground(colorError).
		Padding(0, 1).
		MarginRight(4)

	codeBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorTextDim).
		Background(colorCodeBg).
		MarginRight(4)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		MarginTop(1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginRight(1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		MarginTop(1)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		Align(lipgloss.Center)

	welcomeIconStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Align(lipgloss.Center)

	// Config menu
	configHeaderStyle = headerStyle
	configSectionTitleStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	configPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		MarginBottom(1)

	configPathStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	configMenuItemStyle = lipgloss.NewStyle().
		Foreground(colorText)

	configMenuSelectedStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	configCursorStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	configValueStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	configEnabledStyle = lipgloss.NewStyle().
		Foreground(colorPrimary)

	configDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	configCurrentStyle = lipgloss.NewStyle().
		Foreground(colorPrimary)

	configFeedbackStyle = noticeStyle
}

// FormatError returns a styled status-line error with a hint when one applies.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim).PaddingLeft(2)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	switch {
	case errors.Is(err, apierrors.ErrQueueFull):
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("Hint: wait for a reply or press Esc to cancel outstanding requests"))
	case errors.Is(err, apierrors.ErrQueueClosed):
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("Hint: restart sudollama"))
	}

	return sb.String()
}
