package retriever

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultMaxResults    = 2
	defaultMinScore      = 0.0
	defaultWebMaxResults = 5
)

// loads retrieval settings from environment variables
func LoadConfig() (*Config, error) {
	maxResults := defaultMaxResults
	if maxStr := os.Getenv("RETRIEVAL_MAX_RESULTS"); maxStr != "" {
		val, err := strconv.Atoi(maxStr)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("invalid RETRIEVAL_MAX_RESULTS %q", maxStr)
		}

		maxResults = val
	}

	minScore := defaultMinScore
	if minStr := os.Getenv("RETRIEVAL_MIN_SCORE"); minStr != "" {
		val, err := strconv.ParseFloat(minStr, 64)
		if err != nil || val < 0 || val > 1 {
			return nil, fmt.Errorf("invalid RETRIEVAL_MIN_SCORE %q: must be between 0 and 1", minStr)
		}

		minScore = val
	}

	webMaxResults := defaultWebMaxResults
	if webStr := os.Getenv("WEB_MAX_RESULTS"); webStr != "" {
		if val, err := strconv.Atoi(webStr); err == nil && val > 0 {
			webMaxResults = val
		}
	}

	return &Config{
		MaxResults:    maxResults,
		MinScore:      minScore,
		WebMaxResults: webMaxResults,
	}, nil
}

func DefaultConfig() Config {
	return Config{
		MaxResults:    defaultMaxResults,
		MinScore:      defaultMinScore,
		WebMaxResults: defaultWebMaxResults,
	}
}
