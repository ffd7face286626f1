package chat

import (
	"codeberg.org/docrouter/server/internal/sessions"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, manager *sessions.Manager) {
	chatGroup := router.Group("/chat")
	{
		chatGroup.GET("/roles", RolesHandler)
		chatGroup.POST("/sessions", CreateSessionHandler(manager))
		chatGroup.GET("/sessions/:id", GetSessionHandler(manager))
		chatGroup.DELETE("/sessions/:id", DeleteSessionHandler(manager))
		chatGroup.POST("/sessions/:id/messages", SendMessageHandler(manager))
		chatGroup.POST("/sessions/:id/debug", ToggleDebugHandler(manager))
		chatGroup.POST("/sessions/:id/reset", ResetHandler(manager))
	}
}
