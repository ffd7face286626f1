package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const helpText = "[Enter: Ask] [Ctrl+D: Debug] [Ctrl+N: New chat] [PgUp/PgDn: Scroll] [Ctrl+C: Exit]"

func NewApp(client *Client) *Model {
	ti := textinput.New()
	ti.Placeholder = "ask a question..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = defaultWidth - 6
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		client:     client,
		input:      ti,
		transcript: viewport.New(defaultWidth-2, defaultHeight-8),
		spinner:    sp,
		renderer:   newRenderer(defaultWidth),
		width:      defaultWidth,
		height:     defaultHeight,
	}

	m.refresh()

	return m
}

func (m *Model) Init() tea.Cmd {
	m.fetching = true
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.createSessionCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-6)
		m.renderer = newRenderer(msg.Width)
		m.layout()
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case sessionMsg:
		m.fetching = false
		m.err = nil
		m.session = msg.session
		m.exchanges = nil
		m.layout()
		m.refresh()
		return m, nil

	case answerMsg:
		m.fetching = false
		m.err = nil
		m.session = msg.session
		m.exchanges = append(m.exchanges, exchange{question: msg.question, answer: msg.session.Answer})
		m.refresh()
		m.transcript.GotoBottom()
		return m, nil

	case debugMsg:
		m.fetching = false
		m.err = nil
		m.session = msg.session
		m.layout()
		return m, nil

	case errMsg:
		m.fetching = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case "ctrl+d":
		if m.session == nil || m.fetching {
			return m, nil
		}
		m.fetching = true
		return m, m.toggleDebugCmd(m.session.ID)

	case "ctrl+n":
		if m.fetching {
			return m, nil
		}
		m.fetching = true
		m.input.SetValue("")

		sessionID := ""
		if m.session != nil {
			sessionID = m.session.ID
		}
		return m, m.resetCmd(sessionID)

	case "enter":
		if m.session == nil || m.fetching {
			return m, nil
		}

		// blank questions go through so the server reports them
		question := m.input.Value()
		m.input.SetValue("")
		m.fetching = true
		m.err = nil
		return m, m.askCmd(m.session.ID, strings.TrimSpace(question))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) debugVisible() bool {
	return m.session != nil && m.session.Debug
}

// sizes the transcript to what the header, debug pane and input leave over
func (m *Model) layout() {
	reserved := 8
	if m.debugVisible() {
		reserved += debugHeight + 2
	}

	m.transcript.Width = max(10, m.width-2)
	m.transcript.Height = max(3, m.height-reserved)
}

func (m *Model) refresh() {
	m.transcript.SetContent(renderTranscript(m.exchanges, m.renderer))
}

func (m *Model) View() string {
	var b strings.Builder

	// header
	title := "DOCROUTER"
	if m.session != nil {
		title = fmt.Sprintf("DOCROUTER  %s", m.session.Role)
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render(title),
		strings.Repeat(" ", max(1, m.width-lipgloss.Width(title)-lipgloss.Width(helpText)-1)),
		helpStyle.Render(helpText),
	))
	b.WriteString("\n")

	b.WriteString(boxStyle.Width(max(10, m.width-2)).Render(m.transcript.View()))
	b.WriteString("\n")

	if m.debugVisible() {
		b.WriteString(debugBoxStyle.
			Width(max(10, m.width-2)).
			MaxHeight(debugHeight + 2).
			Render(debugText(m.session.DebugInfo)))
		b.WriteString("\n")
	}

	// status line
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	case m.fetching:
		b.WriteString(statusStyle.Render(m.spinner.View() + " waiting for the assistant..."))
	case m.session != nil && len(m.session.Retrievers) > 0:
		b.WriteString(statusStyle.Render("retrievers: " + strings.Join(m.session.Retrievers, ", ")))
	}
	b.WriteString("\n")

	b.WriteString(boxStyle.Width(max(10, m.width-2)).Padding(0, 1).Render(m.input.View()))

	return b.String()
}

func debugText(info string) string {
	if strings.TrimSpace(info) == "" {
		return "debug on: routing details appear after the next answer."
	}

	return info
}
