// ABOUTME: Shared bootstrap helpers for CLI commands
// ABOUTME: Index-only setup for inspection, full pipeline setup for RAG commands
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/quorumlabs/quorum/internal/config"
	"github.com/quorumlabs/quorum/internal/core"
	"github.com/quorumlabs/quorum/internal/llm"
	"github.com/quorumlabs/quorum/internal/storage/sqlite"
)

// indexDBPath resolves the database file location, preferring the
// configured data directory over the XDG default.
func indexDBPath(cfg *config.Config) string {
	if cfg.DataDir != "" {
		return filepath.Join(cfg.DataDir, "quorum.db")
	}
	return sqlite.DefaultDBPath()
}

// openIndex opens the persistent vector index without requiring an API
// key. Commands that only read or inspect records use this path.
// The caller closes the returned DB.
func openIndex() (*sqlite.DB, *sqlite.Index, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	db, err := sqlite.Open(indexDBPath(cfg))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening index database: %w", err)
	}

	index, err := sqlite.NewIndex(db, cfg.Collection, cfg.VectorDimension)
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("opening collection %q: %w", cfg.Collection, err)
	}

	return db, index, cfg, nil
}

// session bundles everything a RAG command needs once the API key and
// index are available. Close releases the database handle.
type session struct {
	pipeline *core.Pipeline
	client   *llm.Client
	index    *sqlite.Index
	cfg      *config.Config
	db       *sqlite.DB
}

func (s *session) Close() {
	_ = s.db.Close()
}

// loadPipeline builds the full RAG session. Requires OPENAI_API_KEY.
func loadPipeline() (*session, error) {
	db, index, cfg, err := openIndex()
	if err != nil {
		return nil, err
	}

	if cfg.OpenAIKey == "" {
		_ = db.Close()
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

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
		_ = db.Close()
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
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

	return &session{
		pipeline: pipeline,
		client:   client,
		index:    index,
		cfg:      cfg,
		db:       db,
	}, nil
}

// requireMeeting enforces the --meeting flag for commands scoped to one
// meeting.
func requireMeeting() (string, error) {
	if meetingID == "" {
		return "", fmt.Errorf("--meeting is required")
	}
	return meetingID, nil
}
