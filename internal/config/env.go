package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort              = "8080"
	defaultRateLimit         = "60-M"
	defaultChunkSize         = 300
	defaultChunkOverlap      = 30
	defaultMemoryMaxMessages = 10
	defaultSessionTTL        = 2 * time.Hour
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	LoadDotEnv()

	return FromEnv()
}

// loads .env into the process environment when present
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}
}

// builds the subset of configuration the ingester needs
func IngesterFromEnv() (*Config, error) {
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	chunkSize := envInt("CHUNK_SIZE", defaultChunkSize)
	chunkOverlap := envInt("CHUNK_OVERLAP", defaultChunkOverlap)
	if chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", chunkOverlap, chunkSize)
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	return &Config{
		GeminiKey:    strings.TrimSpace(os.Getenv("GEMINI_KEY")),
		DatabaseURL:  databaseURL,
		SourcesFile:  os.Getenv("SOURCES_FILE"),
		Environment:  environment,
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
	}, nil
}

// builds the configuration from the current process environment
func FromEnv() (*Config, error) {
	geminiKey := strings.TrimSpace(os.Getenv("GEMINI_KEY"))
	if geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_KEY environment variable is required")
	}

	webSearchEnabled := envBool("WEB_SEARCH_ENABLED", true)

	tavilyKey := strings.TrimSpace(os.Getenv("TAVILY_KEY"))
	if webSearchEnabled && tavilyKey == "" {
		return nil, fmt.Errorf("TAVILY_KEY environment variable is required for web search (set WEB_SEARCH_ENABLED=false to disable it)")
	}

	routingMode := RoutingMode(strings.ToLower(os.Getenv("ROUTING_MODE")))
	switch routingMode {
	case "":
		routingMode = RoutingModeRouter
	case RoutingModeRouter, RoutingModeAll, RoutingModeNone:
	default:
		return nil, fmt.Errorf("invalid ROUTING_MODE %q: expected router, all or none", routingMode)
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	rateLimit := os.Getenv("RATE_LIMIT")
	if rateLimit == "" {
		rateLimit = defaultRateLimit
	}

	chunkSize := envInt("CHUNK_SIZE", defaultChunkSize)
	chunkOverlap := envInt("CHUNK_OVERLAP", defaultChunkOverlap)
	if chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", chunkOverlap, chunkSize)
	}

	sessionTTL := defaultSessionTTL
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		sessionTTL = ttl
	}

	return &Config{
		GeminiKey:         geminiKey,
		TavilyKey:         tavilyKey,
		WebSearchEnabled:  webSearchEnabled,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SourcesFile:       os.Getenv("SOURCES_FILE"),
		RoutingMode:       routingMode,
		RouterFallback:    strings.ToLower(strings.TrimSpace(os.Getenv("ROUTER_FALLBACK"))),
		RateLimit:         rateLimit,
		CORSOrigins:       splitList(os.Getenv("CORS_ORIGINS")),
		Environment:       environment,
		Port:              port,
		ChunkSize:         chunkSize,
		ChunkOverlap:      chunkOverlap,
		MemoryMaxMessages: envInt("MEMORY_MAX_MESSAGES", defaultMemoryMaxMessages),
		SessionTTL:        sessionTTL,
	}, nil
}

// reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envInt(key string, fallback int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil && val > 0 {
		return val
	}

	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return val
	}

	return fallback
}

// splits a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
