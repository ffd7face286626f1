package llm

import (
	"strings"

	"codeberg.org/docrouter/server/internal/config"
	"github.com/tmc/langchaingo/llms"
)

// returns the API key shared by the chat, router and embedding clients
func getAPIKey(baseConfig *config.Config) string {
	if baseConfig == nil {
		return ""
	}

	return baseConfig.GeminiKey
}

// converts a request into the message list the framework expects
func toMessageContent(req GenerateRequest) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(req.Messages)+1)

	if strings.TrimSpace(req.SystemPrompt) != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, req.SystemPrompt))
	}

	for _, msg := range req.Messages {
		role := llms.ChatMessageTypeHuman
		if msg.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}

		content = append(content, llms.TextParts(role, msg.Content))
	}

	return content
}

// reads token counts out of a choice's generation info
func usageFromInfo(info map[string]any) Usage {
	return Usage{
		InputTokens:  intFromInfo(info, "input_tokens"),
		OutputTokens: intFromInfo(info, "output_tokens"),
	}
}

func intFromInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
