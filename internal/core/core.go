// ABOUTME: Shared contracts for the semantic matching and RAG core
// ABOUTME: Embedder and Generator are satisfied by the llm client and by test stubs
package core

import "time"

// Embedder turns text into fixed-dimension vectors, one vector per
// input in input order. Implementations must be deterministic for
// identical input and must define a value (not an error) for blank
// text.
type Embedder interface {
	EmbedBatch(texts []string) ([][]float64, error)
	Dimension() int
}

// Generator sends a composed prompt to a text-generation service and
// returns the completion text. The timeout bounds the whole call.
type Generator interface {
	Generate(prompt string, maxTokens int, temperature float64, timeout time.Duration) (string, error)
}
