package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sudo-self/sudollama/internal/config"
	"github.com/sudo-self/sudollama/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewSelect
)

// Menu item indices for main view
const (
	menuCopyToClipboard = iota
	menuMarkdownStyle
	menuTUITheme
	menuLogLevel
	menuExit
	menuItemCount
)

// logLevels are the values offered for log_level
var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// selectOption is one entry of a selection sub-menu
type selectOption struct {
	value string
	desc  string
}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config     config.Config
	configPath string
	logPath    string
	save       func(config.Config) error

	// Navigation
	view         configView
	cursor       int
	selecting    int // menu item whose options are shown
	options      []selectOption
	optionCursor int

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a new config TUI model for cfg
func NewConfigModel(cfg config.Config) ConfigModel {
	configPath, _ := config.GetConfigPath()
	logPath, _ := config.GetLogPath(cfg)

	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		logPath:         logPath,
		save:            config.SaveConfig,
		view:            viewMain,
		feedbackTimeout: 2 * time.Second,
	}
}

// Config returns the configuration as edited so far
func (m ConfigModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view == viewSelect {
				m.view = viewMain
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			if m.view == viewMain {
				m.cursor = wrap(m.cursor-1, menuItemCount)
			} else {
				m.optionCursor = wrap(m.optionCursor-1, len(m.options))
			}

		case "down", "j":
			if m.view == viewMain {
				m.cursor = wrap(m.cursor+1, menuItemCount)
			} else {
				m.optionCursor = wrap(m.optionCursor+1, len(m.options))
			}

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i%n + n) % n
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	if m.view == viewSelect {
		opt := m.options[m.optionCursor]
		m.view = viewMain
		return m.apply(m.selecting, opt.value)
	}

	switch m.cursor {
	case menuCopyToClipboard:
		return m.apply(menuCopyToClipboard, strconv.FormatBool(!m.config.CopyToClipboard))

	case menuMarkdownStyle, menuTUITheme, menuLogLevel:
		m.selecting = m.cursor
		m.options = optionsFor(m.cursor)
		m.optionCursor = 0
		current := m.currentValue(m.cursor)
		for i, opt := range m.options {
			if opt.value == current {
				m.optionCursor = i
				break
			}
		}
		m.view = viewSelect
		return m, nil

	case menuExit:
		return m, tea.Quit
	}

	return m, nil
}

// apply sets one config key, saves the file and reports the outcome
func (m ConfigModel) apply(item int, value string) (tea.Model, tea.Cmd) {
	key := configKey(item)
	if err := m.config.Set(key, value); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
		return m, clearFeedback(m.feedbackTimeout)
	}

	if item == menuTUITheme {
		// Apply the new TUI theme immediately
		render.SetTUITheme(value)
		UpdateTheme()
	}

	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = fmt.Sprintf("%s set to %s", menuLabel(item), m.currentValue(item))
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func configKey(item int) string {
	switch item {
	case menuCopyToClipboard:
		return "copy_to_clipboard"
	case menuMarkdownStyle:
		return "markdown.style"
	case menuTUITheme:
		return "tui_theme"
	case menuLogLevel:
		return "log_level"
	}
	return ""
}

func menuLabel(item int) string {
	switch item {
	case menuCopyToClipboard:
		return "Copy to Clipboard"
	case menuMarkdownStyle:
		return "Code Block Style"
	case menuTUITheme:
		return "TUI Theme"
	case menuLogLevel:
		return "Log Level"
	case menuExit:
		return "Exit"
	}
	return ""
}

// currentValue returns the display value of a menu item
func (m ConfigModel) currentValue(item int) string {
	switch item {
	case menuCopyToClipboard:
		if m.config.CopyToClipboard {
			return "enabled"
		}
		return "disabled"
	case menuMarkdownStyle:
		if m.config.Markdown.Style == "" {
			return render.DefaultOptions().Style
		}
		return m.config.Markdown.Style
	case menuTUITheme:
		if m.config.TUITheme == "" {
			return render.TokyoNightTheme.Name
		}
		return m.config.TUITheme
	case menuLogLevel:
		return m.config.LogLevel
	}
	return ""
}

// optionsFor lists the choices of a selection sub-menu
func optionsFor(item int) []selectOption {
	var opts []selectOption
	switch item {
	case menuMarkdownStyle:
		for _, s := range render.AvailableMarkdownStyles() {
			opts = append(opts, selectOption{value: s.Name, desc: s.Description})
		}
	case menuTUITheme:
		for _, t := range render.AvailableTUIThemes() {
			opts = append(opts, selectOption{value: t.Name, desc: t.Description})
		}
	case menuLogLevel:
		for _, l := range logLevels {
			opts = append(opts, selectOption{value: l})
		}
	}
	return opts
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections = append(sections, configHeaderStyle.Width(contentWidth).Render(titleStyle.Render("Configuration")))

	pathsContent := lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Paths"),
		fmt.Sprintf("   Config: %s", configPathStyle.Render(m.configPath)),
		fmt.Sprintf("   Log:    %s", configPathStyle.Render(m.logPath)),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(pathsContent))

	var settingsContent string
	if m.view == viewSelect {
		settingsContent = m.renderSelect()
	} else {
		settingsContent = m.renderMainMenu()
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(settingsContent))

	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render(m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	items := []string{configSectionTitleStyle.Render("Settings"), ""}

	for i := 0; i < menuItemCount; i++ {
		cursor := "  "
		style := configMenuItemStyle
		if m.cursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configMenuSelectedStyle
		}

		label := menuLabel(i)
		if i == menuExit {
			items = append(items, "", cursor+style.Render(label))
			continue
		}

		var value string
		switch {
		case i == menuCopyToClipboard && m.config.CopyToClipboard:
			value = configEnabledStyle.Render("enabled")
		case i == menuCopyToClipboard:
			value = configDisabledStyle.Render("disabled")
		default:
			value = configValueStyle.Render(m.currentValue(i))
		}

		items = append(items, cursor+style.Render(fmt.Sprintf("%-20s", label))+value)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderSelect renders the option list for the item being edited
func (m ConfigModel) renderSelect() string {
	items := []string{configSectionTitleStyle.Render("Select " + menuLabel(m.selecting)), ""}
	current := m.currentValue(m.selecting)

	for i, opt := range m.options {
		cursor := "  "
		style := configMenuItemStyle
		if m.optionCursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configMenuSelectedStyle
		}

		text := opt.value
		if opt.desc != "" {
			text = fmt.Sprintf("%s - %s", opt.value, opt.desc)
		}

		marker := ""
		if opt.value == current {
			marker = configCurrentStyle.Render(" (current)")
		}
		items = append(items, cursor+style.Render(text)+marker)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	escDesc := "Exit"
	if m.view == viewSelect {
		escDesc = "Back"
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", escDesc},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunConfig starts the config TUI
func RunConfig(cfg config.Config) error {
	p := tea.NewProgram(
		NewConfigModel(cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
