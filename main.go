package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voyago/tripagent/internal/adapter/llm"
	"github.com/voyago/tripagent/internal/adapter/serpapi"
	"github.com/voyago/tripagent/internal/config"
	"github.com/voyago/tripagent/internal/policy"
	store "github.com/voyago/tripagent/internal/repository"
	"github.com/voyago/tripagent/internal/service"
	"github.com/voyago/tripagent/internal/tools"
	transport "github.com/voyago/tripagent/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting travel agent...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("LLM URL: %s (model %s)", cfg.LLMBaseURL, cfg.LLMModel)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize LLM client
	llmClient := llm.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)

	// Initialize flight search client
	flightClient := serpapi.NewClient(cfg.SerpBaseURL, cfg.SerpAPIKey, cfg.SerpTimeout, cfg.FlightCacheTTL)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Register tools
	registry := tools.NewRegistry()
	belt := tools.NewBelt(db, flightClient, cfg.Currency)
	belt.RegisterAll(registry)

	// Initialize service
	svc := service.New(db, llmClient, registry, policyEngine, cfg)

	// Create HTTP server
	server := transport.NewServer(svc)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Chat API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down travel agent...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Travel agent stopped")
}
