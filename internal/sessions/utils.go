package sessions

import "strings"

func formatExchange(question, answer string) string {
	var sb strings.Builder

	sb.WriteString("== User:\n")
	sb.WriteString(question)
	sb.WriteString("\n== Assistant:\n")
	sb.WriteString(answer)
	sb.WriteString("\n\n")

	return sb.String()
}

// copies a session so callers never share its slices
func snapshot(s Session) Session {
	retrievers := make([]string, len(s.Retrievers))
	copy(retrievers, s.Retrievers)
	s.Retrievers = retrievers

	return s
}
