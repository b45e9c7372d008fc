// ABOUTME: OpenAI client for batch embeddings and text generation
// ABOUTME: Uses text-embedding-3-small for embeddings, gpt-4o-mini for completions (configurable)
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quorumlabs/quorum/internal/util"
)

const (
	// DefaultChatModel is the default model for completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultTranscriptionModel is the default model for media transcription
	DefaultTranscriptionModel = openai.Whisper1
	// DefaultDimension is the output dimension of text-embedding-3-small
	DefaultDimension = 1536
)

// Classification sentinels so callers can distinguish provider failures
// with errors.Is instead of string matching.
var (
	ErrEmbedding     = errors.New("embedding provider failure")
	ErrGeneration    = errors.New("generation failure")
	ErrTranscription = errors.New("transcription failure")
)

// Media container formats the transcription endpoint accepts.
var supportedMediaExt = map[string]bool{
	".flac": true,
	".m4a":  true,
	".mp3":  true,
	".mp4":  true,
	".mpeg": true,
	".mpga": true,
	".oga":  true,
	".ogg":  true,
	".wav":  true,
	".webm": true,
}

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Dimension      int
	MaxRetries     int
	RetryDelay     time.Duration
	MaxBackoff     time.Duration
	EmbedTimeout   time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	chatModel := os.Getenv("QUORUM_OPENAI_MODEL")
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      chatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Dimension:      DefaultDimension,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
		MaxBackoff:     util.DefaultMaxBackoff,
		EmbedTimeout:   time.Second * 30,
	}
}

// Client wraps the OpenAI API client with retry logic. It serves both
// core roles: embedding provider and generation client.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	dimension      int
	maxRetries     int
	retryDelay     time.Duration
	maxBackoff     time.Duration
	embedTimeout   time.Duration
}

// NewClient creates a new OpenAI client with default configuration
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a new OpenAI client with custom configuration
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.Dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", config.Dimension)
	}

	client := openai.NewClient(config.APIKey)

	return &Client{
		client:         client,
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		dimension:      config.Dimension,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
		maxBackoff:     config.MaxBackoff,
		embedTimeout:   config.EmbedTimeout,
	}, nil
}

// Dimension returns the fixed output dimension of the embedding model
func (c *Client) Dimension() int {
	return c.dimension
}

// EmbedBatch embeds all texts in a single API invocation, returning one
// vector per input in input order. Blank texts (empty or whitespace
// only) map to zero vectors locally instead of going to the provider,
// so repeated embedding of identical input is reproducible and degenerate
// input never turns into an opaque API error.
func (c *Client) EmbedBatch(texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, len(texts))

	// Collect the non-blank texts for the provider call
	var input []string
	var inputPos []int
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			vectors[i] = make([]float64, c.dimension)
			continue
		}
		input = append(input, text)
		inputPos = append(inputPos, i)
	}

	if len(input) == 0 {
		return vectors, nil
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt, c.maxBackoff))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.embedTimeout)

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: input,
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Data) != len(input) {
			lastErr = fmt.Errorf("attempt %d: got %d embeddings for %d inputs", attempt+1, len(resp.Data), len(input))
			continue
		}

		// The API reports position via Index; restore request order
		data := resp.Data
		sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

		for i, d := range data {
			if len(d.Embedding) != c.dimension {
				return nil, fmt.Errorf("%w: vector dimension %d, expected %d", ErrEmbedding, len(d.Embedding), c.dimension)
			}
			vec := make([]float64, len(d.Embedding))
			for j, v := range d.Embedding {
				vec[j] = float64(v)
			}
			vectors[inputPos[i]] = vec
		}

		return vectors, nil
	}

	return nil, fmt.Errorf("%w: after %d attempts: %v", ErrEmbedding, c.maxRetries+1, lastErr)
}

// Generate sends a prompt to the chat model and returns the completion
// text with surrounding whitespace stripped. The timeout bounds the
// whole call; on expiry the error classifies as ErrGeneration.
func (c *Client) Generate(prompt string, maxTokens int, temperature float64, timeout time.Duration) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt, c.maxBackoff))
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   maxTokens,
			Temperature: float32(temperature),
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			// A timeout will keep firing; surface it instead of retrying
			if errors.Is(err, context.DeadlineExceeded) {
				return "", fmt.Errorf("%w: %v", ErrGeneration, lastErr)
			}
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}

	return "", fmt.Errorf("%w: after %d attempts: %v", ErrGeneration, c.maxRetries+1, lastErr)
}

// Transcribe converts a local audio or video recording into transcript
// text with surrounding whitespace stripped. The file is validated
// locally before anything goes to the provider, so a bad path or an
// unsupported container fails fast. The timeout bounds each upload
// attempt.
func (c *Client) Transcribe(filePath string, timeout time.Duration) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrTranscription, filePath)
	}
	if ext := strings.ToLower(filepath.Ext(filePath)); !supportedMediaExt[ext] {
		return "", fmt.Errorf("%w: unsupported media format %q", ErrTranscription, ext)
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt, c.maxBackoff))
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)

		resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    DefaultTranscriptionModel,
			FilePath: filePath,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			if errors.Is(err, context.DeadlineExceeded) {
				return "", fmt.Errorf("%w: %v", ErrTranscription, lastErr)
			}
			continue
		}

		return strings.TrimSpace(resp.Text), nil
	}

	return "", fmt.Errorf("%w: after %d attempts: %v", ErrTranscription, c.maxRetries+1, lastErr)
}
