package main

import (
	"fmt"
	"time"

	"codeberg.org/docrouter/server/api/rest/admin"
	"codeberg.org/docrouter/server/api/rest/chat"
	"codeberg.org/docrouter/server/api/rest/health"
	"codeberg.org/docrouter/server/internal/errors"
	"codeberg.org/docrouter/server/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.Use(corsMiddleware(server.config.CORSOrigins))

	router.GET("/health", health.Handler(server.status))
	router.GET("/metrics", gin.WrapH(server.metrics.Handler()))

	rateLimit, err := rateLimitMiddleware(server.config.RateLimit)
	if err != nil {
		return err
	}

	v1 := router.Group("/api/v1")
	v1.Use(rateLimit)

	{
		v1.GET("/ping", health.PingHandler)

		chat.RegisterRoutes(v1, server.sessions)

		if server.config.JWTSecret != "" {
			admin.RegisterRoutes(v1, server.config.JWTSecret, server.services.Catalog, server.services.Augmentor)
		} else {
			logger.Warn("JWT_SECRET not set, admin routes disabled")
		}
	}

	return nil
}

// allows every origin unless CORS_ORIGINS lists some
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

// limits requests per client IP with a formatted rate such as "60-M"
func rateLimitMiddleware(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "rate limit exceeded, try again later")
		}),
	), nil
}
