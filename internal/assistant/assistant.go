package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codeberg.org/docrouter/server/internal/llm"
	"codeberg.org/docrouter/server/internal/logger"
	"codeberg.org/docrouter/server/internal/memory"
	"codeberg.org/docrouter/server/internal/retriever"
)

// returned when the prompt is empty or whitespace
var ErrEmptyPrompt = errors.New("prompt cannot be empty")

const defaultSystemPrompt = `You are a helpful assistant for questions about artificial intelligence, RAG and finance.
When information is provided after the question, base your answer on it and say so when it does not cover the question.
Answer in the language of the question.`

func New(chat llm.ChatModel, aug Augmenter, mem memory.ChatMemory, opts Options) *Assistant {
	systemPrompt := opts.SystemPrompt
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}

	return &Assistant{
		chat:         chat,
		augmentor:    aug,
		memory:       mem,
		systemPrompt: systemPrompt,
		onAsk:        opts.OnAsk,
	}
}

// answers a prompt within a conversation and explains the routing decision
func (a *Assistant) Ask(ctx context.Context, conversationID, prompt string) (resp *RagResponse, err error) {
	start := time.Now()

	defer func() {
		if a.onAsk != nil {
			a.onAsk(time.Since(start), err)
		}
	}()

	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	history, err := a.memory.Messages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat memory: %w", err)
	}

	augmentation, err := a.augmentor.Augment(ctx, retriever.Query{Text: prompt, ConversationID: conversationID})
	if err != nil {
		return nil, fmt.Errorf("failed to augment prompt: %w", err)
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: augmentation.Message})

	generated, err := a.chat.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: a.systemPrompt,
		Messages:     messages,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	// memory keeps the question as asked, not the augmented message
	err = a.memory.Add(ctx, conversationID,
		llm.Message{Role: llm.RoleUser, Content: prompt},
		llm.Message{Role: llm.RoleAssistant, Content: generated.Text},
	)

	if err != nil {
		return nil, fmt.Errorf("failed to update chat memory: %w", err)
	}

	logger.Debug("answered question",
		"conversation_id", conversationID,
		"retrievers", len(augmentation.Selected),
		"contents", len(augmentation.Contents),
		"history", len(history),
	)

	return &RagResponse{
		Answer:    generated.Text,
		DebugInfo: FormatRouterDebug(augmentation.Selected),
		Selected:  augmentation.Selected,
		Model:     a.chat.Model(),
		Usage:     generated.Usage,
	}, nil
}

// forgets a conversation
func (a *Assistant) Forget(ctx context.Context, conversationID string) error {
	if err := a.memory.Clear(ctx, conversationID); err != nil {
		return fmt.Errorf("failed to clear chat memory: %w", err)
	}

	return nil
}
