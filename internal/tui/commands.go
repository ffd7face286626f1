package tui

import (
	"context"

	"codeberg.org/docrouter/server/api/rest/chat"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) createSessionCmd() tea.Cmd {
	return m.request(func(ctx context.Context) (tea.Msg, error) {
		session, err := m.client.CreateSession(ctx)
		return sessionMsg{session: session}, err
	})
}

func (m *Model) askCmd(sessionID, question string) tea.Cmd {
	return m.request(func(ctx context.Context) (tea.Msg, error) {
		session, err := m.client.Ask(ctx, sessionID, question)
		return answerMsg{question: question, session: session}, err
	})
}

func (m *Model) toggleDebugCmd(sessionID string) tea.Cmd {
	return m.request(func(ctx context.Context) (tea.Msg, error) {
		session, err := m.client.ToggleDebug(ctx, sessionID)
		return debugMsg{session: session}, err
	})
}

func (m *Model) resetCmd(sessionID string) tea.Cmd {
	return m.request(func(ctx context.Context) (tea.Msg, error) {
		var (
			session *chat.SessionResponse
			err     error
		)

		if sessionID == "" {
			session, err = m.client.CreateSession(ctx)
		} else {
			session, err = m.client.Reset(ctx, sessionID)
		}

		return sessionMsg{session: session}, err
	})
}

// runs fn with the request timeout, turning failures into errMsg
func (m *Model) request(fn func(ctx context.Context) (tea.Msg, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msg, err := fn(ctx)
		if err != nil {
			return errMsg{err: err}
		}

		return msg
	}
}
