package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/voyago/tripagent/internal/adapter/llm"
	"github.com/voyago/tripagent/internal/config"
	"github.com/voyago/tripagent/internal/policy"
	"github.com/voyago/tripagent/internal/service"
	"github.com/voyago/tripagent/internal/tools"
	"github.com/voyago/tripagent/tests/helpers"
)

func newTestHandler(t *testing.T, mock *llm.MockClient) *Handler {
	t.Helper()
	s := helpers.NewTestSQLiteStore(t)

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}

	registry := tools.NewRegistry()
	belt := tools.NewBelt(s, noFlights{}, "KZT")
	belt.RegisterAll(registry)

	cfg := &config.Config{LLMModel: "test-model", HistoryLimit: 10}
	return NewHandler(service.New(s, mock, registry, engine, cfg))
}

func TestChatMintsConversation(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockClient(llm.TextResponse("test-model", "Where to?")))

	body, _ := json.Marshal(ChatRequest{Message: "I want to plan a trip"})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Chat(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Where to?", resp.Response)
	assert.NotEmpty(t, resp.ConversationID)
	assert.Nil(t, resp.ToolOutput)
}

func TestChatReusesConversationID(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockClient(
		llm.TextResponse("test-model", "Where to?"),
		llm.TextResponse("test-model", "When?"),
	))

	send := func(convID string) ChatResponse {
		body, _ := json.Marshal(ChatRequest{Message: "hello"})
		target := "/v1/chat"
		if convID != "" {
			target += "?conversation_id=" + convID
		}
		req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, h.Chat(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ChatResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	first := send("")
	second := send(first.ConversationID)
	assert.Equal(t, first.ConversationID, second.ConversationID)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockClient())

	body, _ := json.Marshal(ChatRequest{Message: "   "})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Chat(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockClient())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
