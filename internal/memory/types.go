package memory

import (
	"context"

	"codeberg.org/docrouter/server/internal/llm"
)

// stores the recent messages of each conversation
type ChatMemory interface {
	Messages(ctx context.Context, conversationID string) ([]llm.Message, error)
	Add(ctx context.Context, conversationID string, messages ...llm.Message) error
	Clear(ctx context.Context, conversationID string) error
}

const (
	defaultMaxMessages = 10

	// redis key template for a conversation's message list
	keyConversation = "chat:memory:%s"
)
