package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "docrouter"
	version     = "1.0.0"
)

// Handler godoc
// @Summary Health check
// @Description Returns server health with active session and source counts
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(status StatusFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
		}

		if status != nil {
			resp.Sessions, resp.Sources = status()
		}

		c.JSON(http.StatusOK, resp)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
