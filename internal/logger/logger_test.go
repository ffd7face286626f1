package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	previous := Default()
	SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetDefault(previous) })

	return &buf
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithContext(context.Background(), custom)

	assert.Equal(t, custom, FromContext(ctx))
}

func TestErrorErr(t *testing.T) {
	buf := captureLogs(t)

	ErrorErr(assert.AnError, "lookup failed", "source", "rag")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lookup failed", entry["msg"])
	assert.Equal(t, "rag", entry["source"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])
}

func TestRequestLogger(t *testing.T) {
	buf := captureLogs(t)
	gin.SetMode(gin.TestMode)

	var scoped *slog.Logger

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/api/v1/ping", func(c *gin.Context) {
		scoped = FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	require.NotNil(t, scoped)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "/api/v1/ping", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	captureLogs(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}
