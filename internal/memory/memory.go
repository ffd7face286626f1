package memory

import (
	"context"
	"sync"

	"codeberg.org/docrouter/server/internal/llm"
)

// process-local window memory
type InMemory struct {
	mu            sync.RWMutex
	maxMessages   int
	conversations map[string][]llm.Message
}

func NewInMemory(maxMessages int) *InMemory {
	if maxMessages <= 0 {
		maxMessages = defaultMaxMessages
	}

	return &InMemory{
		maxMessages:   maxMessages,
		conversations: make(map[string][]llm.Message),
	}
}

func (m *InMemory) Messages(_ context.Context, conversationID string) ([]llm.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.conversations[conversationID]
	out := make([]llm.Message, len(stored))
	copy(out, stored)

	return out, nil
}

// appends messages and evicts the oldest beyond the window
func (m *InMemory) Add(_ context.Context, conversationID string, messages ...llm.Message) error {
	if len(messages) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.conversations[conversationID] = window(append(m.conversations[conversationID], messages...), m.maxMessages)

	return nil
}

func (m *InMemory) Clear(_ context.Context, conversationID string) error {
	m.mu.Lock()
	delete(m.conversations, conversationID)
	m.mu.Unlock()

	return nil
}

// returns the last limit messages, starting at a user turn
func window(messages []llm.Message, limit int) []llm.Message {
	if len(messages) <= limit {
		return messages
	}

	kept := fromUserTurn(messages[len(messages)-limit:])
	out := make([]llm.Message, len(kept))
	copy(out, kept)

	return out
}

// drops leading messages until the first user message; the model rejects
// histories that open with an assistant turn
func fromUserTurn(messages []llm.Message) []llm.Message {
	for i, msg := range messages {
		if msg.Role == llm.RoleUser {
			return messages[i:]
		}
	}

	return messages[:0]
}
