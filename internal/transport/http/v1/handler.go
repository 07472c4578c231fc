// Package v1 provides the versioned HTTP handlers for the travel agent.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/voyago/tripagent/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Chat API
	e.POST("/v1/chat", h.Chat)

	// Conversation read API
	e.GET("/v1/conversations", h.ListConversations)
	e.GET("/v1/conversations/:conversation_id/messages", h.GetConversationMessages)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
