// Package config provides configuration for the travel agent service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Reasoning model (OpenAI-compatible chat completions)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Flight search provider
	SerpBaseURL    string
	SerpAPIKey     string
	SerpTimeout    time.Duration
	FlightCacheTTL time.Duration
	Currency       string

	// Conversation context
	HistoryLimit int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:    getEnv("DATABASE_URL", "file:tripagent.db?cache=shared&mode=rwc"),
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://api.groq.com/openai"),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		SerpBaseURL:    getEnv("SERPAPI_BASE_URL", "https://serpapi.com"),
		SerpAPIKey:     getEnv("SERPAPI_API_KEY", ""),
		SerpTimeout:    time.Duration(getEnvInt("SERPAPI_TIMEOUT_MS", 30000)) * time.Millisecond,
		FlightCacheTTL: time.Duration(getEnvInt("FLIGHT_CACHE_TTL_MS", 300000)) * time.Millisecond,
		Currency:       getEnv("CURRENCY", "KZT"),
		HistoryLimit:   getEnvInt("HISTORY_LIMIT", 10),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
