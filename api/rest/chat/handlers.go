package chat

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/docrouter/server/internal/errors"
	"codeberg.org/docrouter/server/internal/logger"
	"codeberg.org/docrouter/server/internal/sessions"
	"github.com/gin-gonic/gin"
)

// RolesHandler godoc
// @Summary List assistant roles
// @Tags chat
// @Produce json
// @Success 200 {object} RolesResponse
// @Router /api/v1/chat/roles [get]
func RolesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, RolesResponse{Roles: sessions.Roles()})
}

// CreateSessionHandler godoc
// @Summary Start a chat session
// @Tags chat
// @Produce json
// @Success 201 {object} SessionResponse
// @Router /api/v1/chat/sessions [post]
func CreateSessionHandler(manager *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := manager.CreateSession()

		logger.Debug("chat session created", "session_id", session.ID)

		c.JSON(http.StatusCreated, toResponse(session))
	}
}

// GetSessionHandler godoc
// @Summary Get chat session state
// @Tags chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/chat/sessions/{id} [get]
func GetSessionHandler(manager *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		session, err := manager.GetSession(id)
		if err != nil {
			respondSessionError(c, err)
			return
		}

		c.JSON(http.StatusOK, toResponse(session))
	}
}

// DeleteSessionHandler godoc
// @Summary End a chat session
// @Tags chat
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/chat/sessions/{id} [delete]
func DeleteSessionHandler(manager *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if err := manager.DeleteSession(c.Request.Context(), id); err != nil {
			respondSessionError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// SendMessageHandler godoc
// @Summary Ask the assistant a question
// @Description Routes the question to the relevant sources, answers it and appends the exchange to the transcript
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body MessageRequest true "Question"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/chat/sessions/{id}/messages [post]
func SendMessageHandler(manager *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		var req MessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		session, err := manager.Send(c.Request.Context(), id, req.Question)
		if err != nil {
			respondSessionError(c, err)
			return
		}

		c.JSON(http.StatusOK, toResponse(session))
	}
}

// ToggleDebugHandler godoc
// @Summary Toggle the debug pane
// @Tags chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Router /api/v1/chat/sessions/{id}/debug [post]
func ToggleDebugHandler(manager *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		session, err := manager.ToggleDebug(id)
		if err != nil {
			respondSessionError(c, err)
			return
		}

		c.JSON(http.StatusOK, toResponse(session))
	}
}

// ResetHandler godoc
// @Summary Start a new chat
// @Description Ends the session, clears its memory and returns a fresh session
// @Tags chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} SessionResponse
// @Router /api/v1/chat/sessions/{id}/reset [post]
func ResetHandler(manager *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		session, err := manager.Reset(c.Request.Context(), id)
		if err != nil {
			respondSessionError(c, err)
			return
		}

		c.JSON(http.StatusCreated, toResponse(session))
	}
}

func respondSessionError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, sessions.ErrSessionNotFound), stderrors.Is(err, sessions.ErrSessionExpired):
		errors.SessionNotFound(c)
	case stderrors.Is(err, sessions.ErrMissingQuestion):
		errors.MissingText(c, "please enter a question")
	default:
		errors.InternalError(c, "failed to answer question", err)
	}
}

func toResponse(s sessions.Session) SessionResponse {
	resp := SessionResponse{
		ID:             s.ID,
		Role:           s.Role,
		RoleChangeable: s.RoleChangeable,
		Question:       s.Question,
		Answer:         s.Answer,
		Conversation:   s.Conversation,
		Debug:          s.Debug,
		Retrievers:     s.Retrievers,
		ExpiresAt:      s.ExpiresAt,
	}

	if s.Debug {
		resp.DebugInfo = s.DebugInfo
	}

	return resp
}
