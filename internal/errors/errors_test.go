package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category string
	}{
		{"pg error", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), CategoryDatabase},
		{"no rows", fmt.Errorf("lookup: %w", pgx.ErrNoRows), CategoryNotFound},
		{"deadline", fmt.Errorf("ask: %w", context.DeadlineExceeded), CategoryTimeout},
		{"canceled", context.Canceled, CategoryTimeout},
		{"upstream", fmt.Errorf("tavily search: API request failed with status 500"), CategoryUpstream},
		{"network", fmt.Errorf("dial tcp: connection refused"), CategoryNetwork},
		{"validation", fmt.Errorf("invalid routing mode"), CategoryValidation},
		{"unknown", fmt.Errorf("boom"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, Category(tt.err))
		})
	}
}

func TestSanitizeError_Production(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	assert.Equal(t, "upstream service failed", sanitizeError(fmt.Errorf("gemini: quota exceeded")))
	assert.Equal(t, "an error occurred", sanitizeError(fmt.Errorf("boom")))
	assert.Equal(t, "", sanitizeError(nil))
}

func TestSanitizeError_Development(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	assert.Equal(t, "boom", sanitizeError(fmt.Errorf("boom")))
}

func TestMissingText(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	MissingText(c, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeMissingText, resp.Error)
	assert.Equal(t, "missing text", resp.Message)
	assert.Equal(t, "please enter a question", resp.Details)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3F2504E0-4F89-11D3-9A0C-0305E82C3301"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("not-a-uuid"))
}
