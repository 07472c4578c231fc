// Package tools exposes the travel-planning capabilities the agent can
// invoke: ticket search, hotel search, and activity search.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/voyago/tripagent/internal/adapter/llm"
	"github.com/voyago/tripagent/internal/domain"
)

// Tool names as presented to the reasoning model.
const (
	TicketSearch   = "ticket_search"
	HotelSearch    = "hotel_search"
	ActivitySearch = "activity_search"
)

// AdapterFunc executes one tool invocation. Adapters never return an error:
// failures become ErrorResult values so a broken tool degrades to text the
// model can relay instead of aborting the turn. roadmapID scopes any writes
// and is threaded explicitly per invocation.
type AdapterFunc func(ctx context.Context, roadmapID int64, args json.RawMessage) domain.ToolResult

// Registry stores tool adapters keyed by tool name, together with the
// function schemas advertised to the reasoning model.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]AdapterFunc
	defs     []llm.Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]AdapterFunc),
	}
}

// Register adds a new adapter and its model-facing definition.
func (r *Registry) Register(def llm.Tool, fn AdapterFunc) error {
	name := def.Function.Name
	if name == "" {
		return fmt.Errorf("tool name is required")
	}
	if fn == nil {
		return fmt.Errorf("adapter is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("adapter already registered for %s", name)
	}
	r.adapters[name] = fn
	r.defs = append(r.defs, def)
	return nil
}

// MustRegister adds an adapter or panics.
func (r *Registry) MustRegister(def llm.Tool, fn AdapterFunc) {
	if err := r.Register(def, fn); err != nil {
		panic(err)
	}
}

// Has reports whether a tool of that name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.adapters[name]
	return ok
}

// Definitions returns the tool schemas for the chat completion request.
func (r *Registry) Definitions() []llm.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]llm.Tool, len(r.defs))
	copy(defs, r.defs)
	return defs
}

// Invoke runs the adapter for the tool name. An unknown tool yields an
// ErrorResult, keeping the failure inside the turn.
func (r *Registry) Invoke(ctx context.Context, name string, roadmapID int64, args json.RawMessage) domain.ToolResult {
	r.mu.RLock()
	fn := r.adapters[name]
	r.mu.RUnlock()
	if fn == nil {
		return domain.ErrorResult(fmt.Sprintf("no tool registered for %s", name))
	}
	return fn(ctx, roadmapID, args)
}
