// ABOUTME: Main entry point for the meeting assistant MCP server with stdio transport
// ABOUTME: Constructs the index, LLM client, and pipeline, then serves tools
package main

import (
	"log"
	"path/filepath"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"

	"github.com/quorumlabs/quorum/internal/config"
	"github.com/quorumlabs/quorum/internal/core"
	"github.com/quorumlabs/quorum/internal/llm"
	"github.com/quorumlabs/quorum/internal/mcp"
	"github.com/quorumlabs/quorum/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY not set - embeddings and generation require it")
	}

	// Open the persistent vector index
	dbPath := sqlite.DefaultDBPath()
	if cfg.DataDir != "" {
		dbPath = filepath.Join(cfg.DataDir, "quorum.db")
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open index database: %v", err)
	}
	defer func() { _ = db.Close() }()

	index, err := sqlite.NewIndex(db, cfg.Collection, cfg.VectorDimension)
	if err != nil {
		log.Fatalf("Failed to open collection: %v", err)
	}

	// Shared OpenAI client serves both embedding and generation
	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Dimension:      cfg.VectorDimension,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
		EmbedTimeout:   cfg.EmbedTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	matcher := core.NewMatcher(client, cfg.MatchThreshold)
	assembler := core.NewAssembler(client, index, cfg.ExcerptLimit)
	pipeline := core.NewPipeline(client, client, index, matcher, assembler, core.PipelineConfig{
		AgendaTopK:        cfg.AgendaTopK,
		SummaryTopK:       cfg.SummaryTopK,
		AgendaMaxTokens:   cfg.AgendaMaxTokens,
		SummaryMaxTokens:  cfg.SummaryMaxTokens,
		Temperature:       cfg.Temperature,
		GenerationTimeout: cfg.GenerationTimeout,
	})

	server := mcpserver.NewMCPServer(
		"Quorum Meeting Assistant",
		"0.1.0",
	)

	mcp.RegisterTools(server, pipeline, index)

	log.Println("Quorum MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
