package health

type Response struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version,omitempty"`
	Sessions int    `json:"sessions"`
	Sources  int    `json:"sources"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// reports live counts for the health endpoint
type StatusFunc func() (sessions, sources int)
