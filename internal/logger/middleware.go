package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// attaches a request scoped logger to the request context and logs each request once
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(requestIDHeader, requestID)

		reqLogger := With("request_id", requestID)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), reqLogger))

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		}

		switch {
		case c.Writer.Status() >= 500:
			reqLogger.Error("request failed", args...)
		case c.Request.URL.Path == "/health" || c.Request.URL.Path == "/metrics":
			reqLogger.Debug("request", args...)
		default:
			reqLogger.Info("request", args...)
		}
	}
}
