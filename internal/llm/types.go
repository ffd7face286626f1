package llm

import "context"

// generates chat completions
type ChatModel interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Model() string
}

// generates embeddings from text
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type GenerateRequest struct {
	SystemPrompt string
	Messages     []Message

	// zero values fall back to the client defaults
	Temperature float64
	MaxTokens   int
}

type GenerateResponse struct {
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// holds configuration for the model clients
type Config struct {
	APIKey string

	ChatModel       string  // e.g., "gemini-2.5-flash"
	ChatTemperature float64 // 0.0 to 1.0
	ChatMaxTokens   int

	RouterModel       string // defaults to ChatModel
	RouterTemperature float64
	RouterMaxTokens   int

	EmbeddingModel      string // e.g., "text-embedding-004"
	EmbeddingDimensions int
	EmbeddingBatchSize  int
}

// bundles the clients the server needs
type Clients struct {
	Chat     ChatModel
	Router   ChatModel
	Embedder Embedder
}
