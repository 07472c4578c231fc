package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/samber/lo"
	"github.com/voyago/tripagent/internal/adapter/llm"
	"github.com/voyago/tripagent/internal/domain"
	"github.com/voyago/tripagent/internal/policy"
)

// maxToolRounds bounds the model/tool loop for one turn. Each round is one
// chat completion; a round with tool calls feeds observations back for the
// next one. The bound guarantees termination even against a model that keeps
// requesting tools.
const maxToolRounds = 4

// Converse runs one turn of the agent loop over an already-assembled context
// window. It returns the final natural-language reply plus the raw output of
// the tool that ran this turn, if any.
func (s *Service) Converse(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	msgs := make([]llm.ChatMessage, 0, len(req.Messages)+1)
	msgs = append(msgs, llm.ChatMessage{Role: "system", Content: systemPrompt})
	for _, m := range req.Messages {
		role := "assistant"
		if m.Role == domain.RoleUser {
			role = "user"
		}
		msgs = append(msgs, llm.ChatMessage{Role: role, Content: m.Content})
	}

	temperature := 0.7
	var (
		finalReply  string
		toolOutput  any
		itineraries []domain.Itinerary
		executed    int
	)

	for round := 0; round < maxToolRounds; round++ {
		resp, err := s.llmClient.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
			Model:       s.config.LLMModel,
			Messages:    msgs,
			Temperature: &temperature,
			Tools:       s.tools.Definitions(),
		})
		if err != nil {
			return nil, fmt.Errorf("chat completion failed: %w", err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
			break
		}

		choice := resp.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			finalReply = choice.Content
			break
		}

		msgs = append(msgs, llm.ChatMessage{
			Role:      "assistant",
			Content:   choice.Content,
			ToolCalls: choice.ToolCalls,
		})

		for _, call := range choice.ToolCalls {
			name := call.Function.Name
			decision, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
				"tool_name":       name,
				"calls_this_turn": executed,
			})
			if err != nil {
				return nil, fmt.Errorf("policy evaluation failed: %w", err)
			}

			var result domain.ToolResult
			if decision == policy.DecisionAllow {
				log.Printf("[AGENT] invoking tool %s (roadmap=%d)", name, req.RoadmapID)
				result = s.tools.Invoke(ctx, name, req.RoadmapID, json.RawMessage(call.Function.Arguments))
				executed++

				if result.Kind == domain.ToolResultItineraries {
					itineraries = result.Itineraries
					toolOutput = result.Itineraries
				} else if s.tools.Has(name) {
					toolOutput = result.Text()
				}
			} else {
				log.Printf("WARN: policy blocked tool %s (calls_this_turn=%d)", name, executed)
				result = domain.ErrorResult(fmt.Sprintf("Tool %s is not allowed right now. Only one tool call is permitted per message.", name))
			}

			msgs = append(msgs, llm.ChatMessage{
				Role:       "tool",
				Name:       name,
				Content:    result.Text(),
				ToolCallID: call.ID,
			})
		}
	}

	if finalReply == "" {
		finalReply = defaultReply
	}
	if hasBothDirections(itineraries) {
		finalReply = directionsPrefix + finalReply
	}

	return &domain.ChatResponse{Reply: finalReply, ToolOutput: toolOutput}, nil
}

// hasBothDirections reports whether the itinerary set covers both the
// outbound and the return leg. The reply prefix only makes sense when the
// user is getting a full round-trip picture.
func hasBothDirections(itineraries []domain.Itinerary) bool {
	hasDir := func(d domain.Direction) bool {
		return lo.SomeBy(itineraries, func(it domain.Itinerary) bool {
			return lo.SomeBy(it.Segments, func(seg domain.Segment) bool {
				return seg.Direction == d
			})
		})
	}
	return hasDir(domain.DirectionOutbound) && hasDir(domain.DirectionReturn)
}

// Chat handles one inbound user message end to end: resolve the conversation,
// persist the input, assemble the bounded context, run the agent loop, and
// persist the reply. Returns the response and the conversation ID in effect
// (freshly minted when the caller sent none).
func (s *Service) Chat(ctx context.Context, conversationID, userInput string) (*domain.ChatResponse, string, error) {
	conv, err := s.EnsureConversation(ctx, conversationID)
	if err != nil {
		return nil, "", err
	}

	if _, err := s.AppendMessage(ctx, conv.ConversationID, domain.RoleUser, userInput); err != nil {
		return nil, "", err
	}

	history, err := s.Context(ctx, conv.ConversationID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load context: %w", err)
	}

	roadmap, err := s.EnsureRoadmap(ctx)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.Converse(ctx, domain.ChatRequest{Messages: history, RoadmapID: roadmap.ID})
	if err != nil {
		return nil, "", err
	}

	if _, err := s.AppendMessage(ctx, conv.ConversationID, domain.RoleAssistant, resp.Reply); err != nil {
		return nil, "", err
	}

	return resp, conv.ConversationID, nil
}
