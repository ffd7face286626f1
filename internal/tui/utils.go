package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
)

const (
	defaultEndpoint = "http://localhost:8080"

	// answers wait on the router, the retrievers and the chat model
	requestTimeout = 120 * time.Second

	defaultWidth  = 80
	defaultHeight = 24
	debugHeight   = 10
)

func newRenderer(width int) *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(20, width-6)),
	)
	if err != nil {
		return nil
	}

	return renderer
}

// renders every exchange, passing answers through glamour when available
func renderTranscript(exchanges []exchange, renderer *glamour.TermRenderer) string {
	if len(exchanges) == 0 {
		return infoStyle.Render("ask a question about the ingested documents or anything current.")
	}

	var b strings.Builder

	for _, ex := range exchanges {
		b.WriteString(userLabelStyle.Render("== User"))
		b.WriteString("\n")
		b.WriteString(ex.question)
		b.WriteString("\n\n")
		b.WriteString(assistantLabelStyle.Render("== Assistant"))
		b.WriteString("\n")
		b.WriteString(renderMarkdown(renderer, ex.answer))
		b.WriteString("\n")
	}

	return b.String()
}

func renderMarkdown(renderer *glamour.TermRenderer, text string) string {
	if renderer == nil {
		return text
	}

	out, err := renderer.Render(text)
	if err != nil {
		return text
	}

	return strings.TrimRight(out, "\n")
}
