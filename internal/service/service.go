// Package service implements the conversational core of the travel agent.
package service

import (
	"github.com/voyago/tripagent/internal/adapter/llm"
	"github.com/voyago/tripagent/internal/config"
	"github.com/voyago/tripagent/internal/policy"
	store "github.com/voyago/tripagent/internal/repository"
	"github.com/voyago/tripagent/internal/tools"
)

// DefaultUserID stands in for an authenticated user; auth is handled outside
// this service.
const DefaultUserID = "default_user"

type Service struct {
	store        store.Store
	llmClient    llm.LLMClient
	tools        *tools.Registry
	policyEngine *policy.Engine
	config       *config.Config
}

func New(st store.Store, llmClient llm.LLMClient, registry *tools.Registry, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        st,
		llmClient:    llmClient,
		tools:        registry,
		policyEngine: policyEngine,
		config:       cfg,
	}
}
