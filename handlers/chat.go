package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"poppi/models"
	"poppi/services/chat"
	"poppi/utils"
)

type chatSessions interface {
	Open(ctx context.Context, req models.ChatStartRequest) (*models.ChatResponse, error)
	Send(ctx context.Context, id, text string) (*models.ChatResponse, error)
	Close(ctx context.Context, id string) error
}

type ChatHandler struct {
	sessions chatSessions
}

func NewChatHandler(sessions chatSessions) *ChatHandler {
	return &ChatHandler{sessions: sessions}
}

// StartSession handles POST /api/chat/sessions. The body is optional.
func (h *ChatHandler) StartSession(c *gin.Context) {
	var req models.ChatStartRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.sessions.Open(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start chat", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SendMessage handles POST /api/chat/sessions/:id/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Message text is required", err)
		return
	}

	resp, err := h.sessions.Send(c.Request.Context(), c.Param("id"), req.Text)
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Chat session not found or expired", err)
		return
	case errors.Is(err, chat.ErrBusy):
		utils.JSONError(c, http.StatusConflict, "Still working on your last message", err)
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EndSession handles DELETE /api/chat/sessions/:id.
func (h *ChatHandler) EndSession(c *gin.Context) {
	if err := h.sessions.Close(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to close chat", err)
		return
	}
	c.Status(http.StatusNoContent)
}
