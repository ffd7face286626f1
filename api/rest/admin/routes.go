package admin

import (
	"codeberg.org/docrouter/server/internal/assistant"
	"codeberg.org/docrouter/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, secret string, catalog *assistant.Catalog, augmenter assistant.Augmenter) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(auth.AdminMiddleware(secret))
	{
		adminGroup.GET("/sources", SourcesHandler(catalog))
		adminGroup.POST("/route", RouteHandler(augmenter))
	}
}
