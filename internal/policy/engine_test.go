package policy

import (
	"context"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}
	return engine
}

func TestDefaultPolicyAllowsTravelTools(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	for _, tool := range []string{"ticket_search", "hotel_search", "activity_search"} {
		decision, err := engine.Evaluate(ctx, map[string]interface{}{
			"tool_name":       tool,
			"calls_this_turn": 0,
		})
		if err != nil {
			t.Fatalf("Evaluate(%s) failed: %v", tool, err)
		}
		if decision != DecisionAllow {
			t.Errorf("Evaluate(%s) = %s, want allow", tool, decision)
		}
	}
}

func TestDefaultPolicyBlocksUnknownTool(t *testing.T) {
	engine := newTestEngine(t)

	decision, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"tool_name":       "payments.transfer",
		"calls_this_turn": 0,
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionBlock {
		t.Errorf("decision = %s, want block", decision)
	}
}

func TestDefaultPolicyBlocksSecondCall(t *testing.T) {
	engine := newTestEngine(t)

	decision, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"tool_name":       "hotel_search",
		"calls_this_turn": 1,
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionBlock {
		t.Errorf("decision = %s, want block", decision)
	}
}

func TestDefaultPolicyBlocksMissingInput(t *testing.T) {
	engine := newTestEngine(t)

	decision, err := engine.Evaluate(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionBlock {
		t.Errorf("decision = %s, want block", decision)
	}
}
