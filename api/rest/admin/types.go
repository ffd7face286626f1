package admin

import (
	"codeberg.org/docrouter/server/internal/assistant"
	"codeberg.org/docrouter/server/internal/augmentor"
)

type SourcesResponse struct {
	Sources []assistant.SourceInfo `json:"sources"`
}

type RouteRequest struct {
	Question string `json:"question"`
}

// the routing decision for a question, without generating an answer
type RouteResponse struct {
	Question  string                `json:"question"`
	Selected  []augmentor.Selection `json:"selected"`
	Message   string                `json:"message"`
	DebugInfo string                `json:"debug_info"`
}
