package config

import "time"

// routing modes for the assistant
type RoutingMode string

const (
	// the language model picks the retrievers for each question
	RoutingModeRouter RoutingMode = "router"

	// every retriever is queried for each question
	RoutingModeAll RoutingMode = "all"

	// plain chat, no retrieval
	RoutingModeNone RoutingMode = "none"
)

type Config struct {
	GeminiKey        string
	TavilyKey        string
	WebSearchEnabled bool
	DatabaseURL      string
	RedisURL         string
	JWTSecret        string
	SourcesFile      string
	RoutingMode      RoutingMode
	RouterFallback   string // do_not_route, route_to_all or fail
	RateLimit        string
	CORSOrigins      []string
	Environment      string
	Port             string

	ChunkSize         int
	ChunkOverlap      int
	MemoryMaxMessages int
	SessionTTL        time.Duration
}

type Flags struct {
	SourcesFile string
	Clear       bool

	// token subcommand
	Subject string
	TTL     time.Duration
}
