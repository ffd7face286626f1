package admin

import (
	"net/http"
	"strings"

	"codeberg.org/docrouter/server/internal/assistant"
	"codeberg.org/docrouter/server/internal/auth"
	"codeberg.org/docrouter/server/internal/errors"
	"codeberg.org/docrouter/server/internal/logger"
	"codeberg.org/docrouter/server/internal/retriever"
	"github.com/gin-gonic/gin"
)

// SourcesHandler godoc
// @Summary List retrieval sources
// @Description Get every registered retriever with its description and segment count
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SourcesResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/v1/admin/sources [get]
func SourcesHandler(catalog *assistant.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, SourcesResponse{Sources: catalog.Sources()})
	}
}

// RouteHandler godoc
// @Summary Preview query routing
// @Description Route a question and retrieve its segments without calling the chat model
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RouteRequest true "Question to route"
// @Success 200 {object} RouteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/admin/route [post]
func RouteHandler(augmenter assistant.Augmenter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RouteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		question := strings.TrimSpace(req.Question)
		if question == "" {
			errors.MissingText(c, "")
			return
		}

		augmentation, err := augmenter.Augment(c.Request.Context(), retriever.Query{Text: question})
		if err != nil {
			errors.InternalError(c, "failed to route question", err)
			return
		}

		subject, _ := auth.GetSubject(c)
		logger.FromContext(c.Request.Context()).Info("routing preview",
			"subject", subject,
			"selected", len(augmentation.Selected),
		)

		c.JSON(http.StatusOK, RouteResponse{
			Question:  question,
			Selected:  augmentation.Selected,
			Message:   augmentation.Message,
			DebugInfo: assistant.FormatRouterDebug(augmentation.Selected),
		})
	}
}
