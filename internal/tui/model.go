package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/sudo-self/sudollama/internal/chat"
	"github.com/sudo-self/sudollama/internal/dispatch"
	"github.com/sudo-self/sudollama/internal/models"
	"github.com/sudo-self/sudollama/internal/render"
)

// Message types for the TUI
type (
	// resultMsg carries one dispatcher result onto the update loop
	resultMsg struct {
		result dispatch.Result
	}
	// resultsClosedMsg is sent once the queue has shut down
	resultsClosedMsg struct{}
	// copiedMsg reports the outcome of a clipboard write
	copiedMsg struct {
		err error
	}
)

// Submitter is the part of dispatch.Queue the chat window uses
type Submitter interface {
	Submit(prompt string) (dispatch.Request, error)
	CancelAll() int
	Results() <-chan dispatch.Result
}

// Model represents the TUI state
type Model struct {
	queue      Submitter
	renderOpts render.Options
	copyFn     func(string) error

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	log     chat.Log
	pending int // submitted prompts without a result yet
	ready   bool
	err     error
	notice  string

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(queue Submitter, renderOpts render.Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	// Prompts are sent whole, so neither length nor line count is capped
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.Focus()
	// Enter submits; newlines need a modifier
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		queue:      queue,
		renderOpts: renderOpts,
		copyFn:     clipboard.WriteAll,
		textarea:   ta,
		spinner:    s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		waitForResult(m.queue.Results()),
	)
}

// waitForResult blocks on the results channel off the update loop and turns
// the next result into a message. Exactly one of these is outstanding at a time.
func waitForResult(results <-chan dispatch.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return resultsClosedMsg{}
		}
		return resultMsg{result: res}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 7  // Input panel with border and spinner line
		statusHeight := 2 // Status bar and notice
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.pending == 0 {
				return m, tea.Quit
			}
			n := m.queue.CancelAll()
			m.notice = fmt.Sprintf("Canceling %d request(s)...", n)
			return m, nil

		case "enter":
			return m.submit()

		case "ctrl+y":
			reply, ok := m.log.LastReply()
			if !ok {
				m.notice = "Nothing to copy yet"
				return m, nil
			}
			return m, m.copyReply(reply.Text)
		}

	case resultMsg:
		m.pending--
		if m.pending < 0 {
			m.pending = 0
		}
		m.log.Append(msg.result.Message())
		if m.pending == 0 {
			m.notice = ""
		}
		log.Debug().
			Str("request_id", msg.result.RequestID).
			Bool("error", msg.result.IsError()).
			Dur("duration", msg.result.Duration).
			Msg("result delivered")
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, waitForResult(m.queue.Results())

	case resultsClosedMsg:
		m.pending = 0

	case copiedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Failed to copy to clipboard: %v", msg.err)
		} else {
			m.notice = "Copied last reply to clipboard"
		}

	case spinner.TickMsg:
		if m.pending > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks
	if _, ok := msg.(tea.KeyMsg); ok {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit sends the current input to the queue. Blank input is ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	if _, err := m.queue.Submit(input); err != nil {
		// Keep the input so the user can retry
		m.err = err
		return m, nil
	}

	m.err = nil
	m.notice = ""
	m.log.Append(models.NewUserMessage(input))
	m.pending++
	m.textarea.Reset()
	m.updateViewport()
	m.viewport.GotoBottom()

	if m.pending == 1 {
		return m, m.spinner.Tick
	}
	return m, nil
}

// copyReply writes text to the clipboard off the update loop
func (m Model) copyReply(text string) tea.Cmd {
	copyFn := m.copyFn
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

// Messages returns a copy of the chat log
func (m Model) Messages() []models.ChatMessage {
	return m.log.Messages()
}

// Pending returns the number of prompts still waiting for a reply
func (m Model) Pending() int {
	return m.pending
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Sudo Llama"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(models.ModelName),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages
	var messagesContent string
	if m.log.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input
	inputParts := []string{}
	if m.pending > 0 {
		inputParts = append(inputParts, m.renderLoading())
	}
	inputParts = append(inputParts, inputLabelStyle.Render(models.LabelUser), m.textarea.View())
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, inputParts...),
	))

	// Status
	sections = append(sections, m.renderStatusBar(contentWidth))
	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the empty-log placeholder
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		welcomeIconStyle.Width(width).Render("🦙"),
		"",
		welcomeTitleStyle.Width(width).Render("Sudo Llama"),
		"",
		welcomeStyle.Width(width).Render("Type a message below and press Enter"),
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderLoading renders the waiting indicator
func (m Model) renderLoading() string {
	text := fmt.Sprintf(" %s is thinking...", models.LabelAssistant)
	if m.pending > 1 {
		text += fmt.Sprintf(" (%d queued)", m.pending-1)
	}
	return m.spinner.View() + loadingStyle.Render(text)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	escDesc := "Quit"
	if m.pending > 0 {
		escDesc = "Cancel"
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"Esc", escDesc},
		{"Ctrl+Y", "Copy reply"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	opts := m.renderOpts.WithWidth(bubbleWidth - 4)

	for i, msg := range m.log.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(renderMessage(msg, bubbleWidth, opts))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderMessage renders one log entry as a label line and a bubble
func renderMessage(msg models.ChatMessage, bubbleWidth int, opts render.Options) string {
	body := render.Body(msg, opts)
	label := msg.Sender.Label() + ":"

	switch {
	case msg.Sender == models.SenderUser:
		return userLabelStyle.Render(label) + "\n" + userBubbleStyle.Width(bubbleWidth).Render(body)
	case msg.IsError:
		return errorLabelStyle.Render(label) + "\n" + errorBubbleStyle.Width(bubbleWidth).Render(body)
	case msg.IsCodeBlock():
		return assistantLabelStyle.Render(label) + "\n" + codeBubbleStyle.Width(bubbleWidth).Render(body)
	default:
		return assistantLabelStyle.Render(label) + "\n" + assistantBubbleStyle.Width(bubbleWidth).Render(body)
	}
}

// RunChat starts the chat TUI and blocks until the user quits
func RunChat(queue Submitter, renderOpts render.Options) error {
	p := tea.NewProgram(
		NewChatModel(queue, renderOpts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
