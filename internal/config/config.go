// ABOUTME: Centralized configuration for the meeting RAG core
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the meeting assistant core
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	EmbedTimeout   time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Matching settings
	MatchThreshold  float64
	VectorDimension int

	// Retrieval settings
	AgendaTopK   int
	SummaryTopK  int
	ExcerptLimit int

	// Generation settings
	AgendaMaxTokens   int
	SummaryMaxTokens  int
	Temperature       float64
	GenerationTimeout time.Duration

	// Index settings
	DataDir    string
	Collection string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		ChatModel:         getEnv("QUORUM_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnv("QUORUM_EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbedTimeout:      getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:        getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:        getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		MatchThreshold:    getEnvFloat("QUORUM_MATCH_THRESHOLD", 0.5),
		VectorDimension:   getEnvInt("QUORUM_VECTOR_DIMENSION", 1536),
		AgendaTopK:        getEnvInt("QUORUM_AGENDA_TOP_K", 5),
		SummaryTopK:       getEnvInt("QUORUM_SUMMARY_TOP_K", 25),
		ExcerptLimit:      getEnvInt("QUORUM_EXCERPT_LIMIT", 500),
		AgendaMaxTokens:   getEnvInt("QUORUM_AGENDA_MAX_TOKENS", 800),
		SummaryMaxTokens:  getEnvInt("QUORUM_SUMMARY_MAX_TOKENS", 1500),
		Temperature:       getEnvFloat("QUORUM_TEMPERATURE", 0.5),
		GenerationTimeout: getEnvDuration("QUORUM_GENERATION_TIMEOUT", 600*time.Second),
		DataDir:           getEnv("QUORUM_DATA_DIR", ""),
		Collection:        getEnv("QUORUM_COLLECTION", "meeting_embeddings"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MatchThreshold < -1 || c.MatchThreshold > 1 {
		return fmt.Errorf("QUORUM_MATCH_THRESHOLD must be in [-1, 1], got %f", c.MatchThreshold)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("QUORUM_VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.AgendaTopK <= 0 || c.SummaryTopK <= 0 {
		return fmt.Errorf("top-k values must be positive, got agenda=%d summary=%d", c.AgendaTopK, c.SummaryTopK)
	}
	if c.ExcerptLimit <= 0 {
		return fmt.Errorf("QUORUM_EXCERPT_LIMIT must be positive, got %d", c.ExcerptLimit)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("QUORUM_TEMPERATURE must be in [0, 2], got %f", c.Temperature)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
