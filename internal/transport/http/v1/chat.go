package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the chat reply envelope.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
	ToolOutput     any    `json:"tool_output,omitempty"`
}

// Chat handles one conversational turn.
// POST /v1/chat?conversation_id=
func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	conversationID := c.QueryParam("conversation_id")

	ctx := c.Request().Context()
	resp, convID, err := h.service.Chat(ctx, conversationID, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Response:       resp.Reply,
		ConversationID: convID,
		ToolOutput:     resp.ToolOutput,
	})
}
