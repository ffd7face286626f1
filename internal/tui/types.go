package tui

import (
	"net/http"

	"codeberg.org/docrouter/server/api/rest/chat"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// main TUI application model
type Model struct {
	client     *Client
	session    *chat.SessionResponse
	exchanges  []exchange
	input      textinput.Model
	transcript viewport.Model
	spinner    spinner.Model
	renderer   *glamour.TermRenderer
	width      int
	height     int
	fetching   bool
	err        error
}

// one question and the answer it got
type exchange struct {
	question string
	answer   string
}

// manages HTTP requests to the chat REST API
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// sent when a session is created or replaced by a new chat
type sessionMsg struct {
	session *chat.SessionResponse
}

// sent when the server answered a question
type answerMsg struct {
	question string
	session  *chat.SessionResponse
}

// sent when debug mode was toggled
type debugMsg struct {
	session *chat.SessionResponse
}

// sent when a request fails
type errMsg struct {
	err error
}
