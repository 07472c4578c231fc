package llm

import "context"

// LLMClient defines the interface for chat completion operations. Streaming
// is deliberately absent: the agent runs single synchronous turns.
type LLMClient interface {
	// CreateChatCompletion sends a single chat completion request. One
	// attempt per call; retries are the caller's choice.
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Ensure Client implements LLMClient interface.
var _ LLMClient = (*Client)(nil)
