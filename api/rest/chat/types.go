package chat

import (
	"time"

	"codeberg.org/docrouter/server/internal/sessions"
)

// request payload for asking a question
type MessageRequest struct {
	Question string `json:"question"`
}

// chat state returned to clients
type SessionResponse struct {
	ID             string    `json:"id"`
	Role           string    `json:"role"`
	RoleChangeable bool      `json:"role_changeable"`
	Question       string    `json:"question,omitempty"`
	Answer         string    `json:"answer"`
	Conversation   string    `json:"conversation"`
	Debug          bool      `json:"debug"`
	DebugInfo      string    `json:"debug_info,omitempty"` // only when debug is on
	Retrievers     []string  `json:"selected_retrievers"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type RolesResponse struct {
	Roles []sessions.Role `json:"roles"`
}
