// ABOUTME: In-memory vector index with brute-force cosine similarity search
// ABOUTME: Mutex-guarded so concurrent Add calls cannot race duplicate detection
package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/quorumlabs/quorum/internal/models"
)

// MemoryIndex is an append-only in-memory vector index. Suitable for
// tests and embedded single-process use; the SQLite index provides the
// persistent equivalent.
type MemoryIndex struct {
	mu        sync.RWMutex
	dimension int
	records   []models.Record
	ids       map[string]struct{}
}

// NewMemoryIndex creates an empty index for vectors of the given dimension
func NewMemoryIndex(dimension int) (*MemoryIndex, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dimension)
	}
	return &MemoryIndex{
		dimension: dimension,
		ids:       make(map[string]struct{}),
	}, nil
}

// Dimension returns the fixed vector dimension of the index
func (idx *MemoryIndex) Dimension() int {
	return idx.dimension
}

// Count returns the number of stored records
func (idx *MemoryIndex) Count() (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.records), nil
}

// Add appends records to the index. The whole batch is validated
// before anything is written, so a rejected batch leaves the index
// unchanged.
func (idx *MemoryIndex) Add(records []models.Record) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if len(rec.Vector) != idx.dimension {
			return fmt.Errorf("%w: record %q has dimension %d, index expects %d",
				ErrDimensionMismatch, rec.ID, len(rec.Vector), idx.dimension)
		}
		if _, ok := idx.ids[rec.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateID, rec.ID)
		}
		if _, ok := seen[rec.ID]; ok {
			return fmt.Errorf("%w: %q appears twice in batch", ErrDuplicateID, rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}

	now := time.Now()
	for _, rec := range records {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		idx.records = append(idx.records, rec)
		idx.ids[rec.ID] = struct{}{}
	}
	return nil
}

// Query returns up to k records matching the filter, ordered by
// descending cosine similarity. The stable sort keeps insertion order
// for equal scores.
func (idx *MemoryIndex) Query(vector []float64, k int, filter map[string]any) ([]models.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(vector) != idx.dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, index expects %d",
			ErrDimensionMismatch, len(vector), idx.dimension)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var results []models.SearchResult
	for _, rec := range idx.records {
		if !MatchesFilter(rec.Metadata, filter) {
			continue
		}
		results = append(results, models.SearchResult{
			Record: rec,
			Score:  CosineSimilarity(vector, rec.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}
