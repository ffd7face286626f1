package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"codeberg.org/docrouter/server/api/rest/chat"
	"codeberg.org/docrouter/server/internal/errors"
)

// creates a new chat REST client
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// starts a new chat session
func (c *Client) CreateSession(ctx context.Context) (*chat.SessionResponse, error) {
	var session chat.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/chat/sessions", nil, http.StatusCreated, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// sends a question and returns the updated session
func (c *Client) Ask(ctx context.Context, sessionID, question string) (*chat.SessionResponse, error) {
	var session chat.SessionResponse

	path := fmt.Sprintf("/api/v1/chat/sessions/%s/messages", sessionID)
	if err := c.do(ctx, http.MethodPost, path, chat.MessageRequest{Question: question}, http.StatusOK, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// flips debug mode for the session
func (c *Client) ToggleDebug(ctx context.Context, sessionID string) (*chat.SessionResponse, error) {
	var session chat.SessionResponse

	path := fmt.Sprintf("/api/v1/chat/sessions/%s/debug", sessionID)
	if err := c.do(ctx, http.MethodPost, path, nil, http.StatusOK, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// discards the session and its memory, returning a fresh one
func (c *Client) Reset(ctx context.Context, sessionID string) (*chat.SessionResponse, error) {
	var session chat.SessionResponse

	path := fmt.Sprintf("/api/v1/chat/sessions/%s/reset", sessionID)
	if err := c.do(ctx, http.MethodPost, path, nil, http.StatusCreated, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, want int, out any) error {
	var body io.Reader

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// handle error responses
	if resp.StatusCode != want {
		var errResp errors.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			if errResp.Details != "" {
				return fmt.Errorf("%s: %s", errResp.Message, errResp.Details)
			}
			return fmt.Errorf("%s", errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
