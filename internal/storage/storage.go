// ABOUTME: VectorIndex contract, write-rejection errors, and similarity math
// ABOUTME: Shared by the in-memory and SQLite index implementations
package storage

import (
	"errors"
	"math"

	"github.com/quorumlabs/quorum/internal/models"
)

// Write rejections. Both leave the index unchanged; the caller must
// pick a new id or fix the vector.
var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrDuplicateID       = errors.New("duplicate record id")
)

// VectorIndex is an append-only store of records with similarity
// search. Add is atomic with respect to duplicate-id detection; Query
// returns results in descending score order with insertion order
// breaking ties (earlier record wins). Returning fewer than k results
// is normal, never an error.
type VectorIndex interface {
	Add(records []models.Record) error
	Query(vector []float64, k int, filter map[string]any) ([]models.SearchResult, error)
	Count() (int, error)
	Dimension() int
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// MatchesFilter reports whether metadata satisfies every key in the
// filter by exact equality. A nil or empty filter matches everything.
// Integer values compare across int widths so a filter built in Go
// matches metadata that round-tripped through JSON.
func MatchesFilter(metadata, filter map[string]any) bool {
	for key, want := range filter {
		got, ok := metadata[key]
		if !ok {
			return false
		}
		if normalizeScalar(got) != normalizeScalar(want) {
			return false
		}
	}
	return true
}

// normalizeScalar collapses the allowed metadata value types (string,
// int, bool) into comparable forms. JSON decoding yields float64 for
// numbers; integral floats normalize back to int64.
func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		if n == math.Trunc(n) {
			return int64(n)
		}
		return n
	case float32:
		return normalizeScalar(float64(n))
	default:
		return v
	}
}
