package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockClient is a scriptable mock implementation of LLMClient for testing.
// Queued responses are returned in order; once the script is exhausted it
// falls back to a canned text reply so loops always terminate.
type MockClient struct {
	mu       sync.Mutex
	script   []*ChatCompletionResponse
	Requests []*ChatCompletionRequest
}

// NewMockClient creates a new mock LLM client.
func NewMockClient(script ...*ChatCompletionResponse) *MockClient {
	return &MockClient{script: script}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// Enqueue appends a response to the script.
func (m *MockClient) Enqueue(resp *ChatCompletionResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// CreateChatCompletion records the request and pops the next scripted response.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)

	if len(m.script) > 0 {
		resp := m.script[0]
		m.script = m.script[1:]
		return resp, nil
	}

	content := m.generateMockResponse(req)
	return TextResponse(req.Model, content), nil
}

// TextResponse builds a plain assistant reply response.
func TextResponse(model, content string) *ChatCompletionResponse {
	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
	}
}

// ToolCallResponse builds a response in which the assistant requests the
// given tool calls.
func ToolCallResponse(model string, calls ...ToolCall) *ChatCompletionResponse {
	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:      "assistant",
					ToolCalls: calls,
				},
				FinishReason: "tool_calls",
			},
		},
	}
}

// generateMockResponse generates a fallback response based on the request.
func (m *MockClient) generateMockResponse(req *ChatCompletionRequest) string {
	var lastUserMessage string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			lastUserMessage = req.Messages[i].Content
			break
		}
	}

	if lastUserMessage == "" {
		return "[MOCK] This is a mock response from the LLM client."
	}

	return fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(lastUserMessage, 100))
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
