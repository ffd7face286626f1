package sessions

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/docrouter/server/internal/assistant"
)

const (
	DefaultRole      = "RAG-Base"
	defaultRoleLabel = "RAG assistant (Finance, AI)"
)

// answers questions for a conversation
type Asker interface {
	Ask(ctx context.Context, conversationID, prompt string) (*assistant.RagResponse, error)
	Forget(ctx context.Context, conversationID string) error
}

// a selectable assistant role
type Role struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// the chat state of one visitor
type Session struct {
	ID             string    `json:"id"`
	Role           string    `json:"role"`
	RoleChangeable bool      `json:"role_changeable"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	Conversation   string    `json:"conversation"`
	Debug          bool      `json:"debug"`
	DebugInfo      string    `json:"debug_info"`
	Retrievers     []string  `json:"retrievers"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivity   time.Time `json:"last_activity"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// a session plus its locks; mu is never held while the assistant runs
type entry struct {
	mu      sync.Mutex
	session Session

	// holds a token while a question is in flight
	busy chan struct{}

	// unix nanos, readable without mu
	expiresAt atomic.Int64
}

// manages chat sessions in memory
type Manager struct {
	asker    Asker
	sessions map[string]*entry
	mu       sync.RWMutex
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}
