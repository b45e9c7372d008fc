// ABOUTME: Tests for the in-memory vector index
// ABOUTME: Covers add/query contracts, duplicate ids, filters, and tie-breaking
package storage

import (
	"errors"
	"math"
	"testing"

	"github.com/quorumlabs/quorum/internal/models"
)

func newTestIndex(t *testing.T) *MemoryIndex {
	t.Helper()
	idx, err := NewMemoryIndex(3)
	if err != nil {
		t.Fatalf("NewMemoryIndex() error = %v", err)
	}
	return idx
}

func TestNewMemoryIndex_RejectsBadDimension(t *testing.T) {
	if _, err := NewMemoryIndex(0); err == nil {
		t.Error("NewMemoryIndex(0) should fail")
	}
}

func TestMemoryIndex_AddAndQuerySelf(t *testing.T) {
	idx := newTestIndex(t)

	rec := models.Record{
		ID:     "r1",
		Text:   "quarterly budget review",
		Vector: []float64{0.2, 0.5, 0.8},
	}
	if err := idx.Add([]models.Record{rec}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	results, err := idx.Query(rec.Vector, 1, nil)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Record.ID != "r1" {
		t.Errorf("top result = %q, want r1", results[0].Record.ID)
	}
	// Self-similarity is maximal for cosine
	if math.Abs(results[0].Score-1.0) > 1e-9 {
		t.Errorf("self-similarity = %v, want 1.0", results[0].Score)
	}
}

func TestMemoryIndex_DimensionMismatch(t *testing.T) {
	idx := newTestIndex(t)

	err := idx.Add([]models.Record{{ID: "bad", Vector: []float64{1, 2}}})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Add() error = %v, want ErrDimensionMismatch", err)
	}

	count, _ := idx.Count()
	if count != 0 {
		t.Errorf("index should be empty after rejected write, got %d records", count)
	}
}

func TestMemoryIndex_DuplicateID(t *testing.T) {
	idx := newTestIndex(t)

	rec := models.Record{ID: "dup", Vector: []float64{1, 0, 0}}
	if err := idx.Add([]models.Record{rec}); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}

	err := idx.Add([]models.Record{{ID: "dup", Vector: []float64{0, 1, 0}}})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("second Add() error = %v, want ErrDuplicateID", err)
	}

	// Index still contains exactly one record for the id
	count, _ := idx.Count()
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestMemoryIndex_BatchRejectionIsAtomic(t *testing.T) {
	idx := newTestIndex(t)

	err := idx.Add([]models.Record{
		{ID: "a", Vector: []float64{1, 0, 0}},
		{ID: "a", Vector: []float64{0, 1, 0}},
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Add() error = %v, want ErrDuplicateID", err)
	}

	count, _ := idx.Count()
	if count != 0 {
		t.Errorf("nothing from a rejected batch should land, got %d records", count)
	}
}

func TestMemoryIndex_QueryOrdering(t *testing.T) {
	idx := newTestIndex(t)

	records := []models.Record{
		{ID: "far", Vector: []float64{0, 1, 0}},
		{ID: "near", Vector: []float64{0.9, 0.1, 0}},
		{ID: "exact", Vector: []float64{1, 0, 0}},
	}
	if err := idx.Add(records); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	results, err := idx.Query([]float64{1, 0, 0}, 3, nil)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	want := []string{"exact", "near", "far"}
	for i, id := range want {
		if results[i].Record.ID != id {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Record.ID, id)
		}
	}
}

func TestMemoryIndex_TieBreakByInsertionOrder(t *testing.T) {
	idx := newTestIndex(t)

	// Identical vectors score identically; earlier insertion wins
	records := []models.Record{
		{ID: "first", Vector: []float64{1, 1, 0}},
		{ID: "second", Vector: []float64{1, 1, 0}},
		{ID: "third", Vector: []float64{1, 1, 0}},
	}
	if err := idx.Add(records); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	results, err := idx.Query([]float64{1, 1, 0}, 3, nil)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, id := range want {
		if results[i].Record.ID != id {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Record.ID, id)
		}
	}
}

func TestMemoryIndex_QueryWithFilter(t *testing.T) {
	idx := newTestIndex(t)

	records := []models.Record{
		{ID: "d1", Vector: []float64{1, 0, 0}, Metadata: map[string]any{"meeting_id": "m1", "type": "document"}},
		{ID: "t1", Vector: []float64{1, 0, 0}, Metadata: map[string]any{"meeting_id": "m1", "type": "transcript"}},
		{ID: "d2", Vector: []float64{1, 0, 0}, Metadata: map[string]any{"meeting_id": "m2", "type": "document"}},
	}
	if err := idx.Add(records); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	results, err := idx.Query([]float64{1, 0, 0}, 10, map[string]any{
		"meeting_id": "m1",
		"type":       "document",
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if len(results) != 1 || results[0].Record.ID != "d1" {
		t.Errorf("filter should select only d1, got %v", results)
	}
}

func TestMemoryIndex_FilterMatchingNothing(t *testing.T) {
	idx := newTestIndex(t)

	err := idx.Add([]models.Record{
		{ID: "r1", Vector: []float64{1, 0, 0}, Metadata: map[string]any{"type": "document"}},
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	results, err := idx.Query([]float64{1, 0, 0}, 5, map[string]any{"type": "spreadsheet"})
	if err != nil {
		t.Fatalf("Query() with unmatched filter should not error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestMemoryIndex_UnderFill(t *testing.T) {
	idx := newTestIndex(t)

	err := idx.Add([]models.Record{{ID: "only", Vector: []float64{1, 0, 0}}})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	results, err := idx.Query([]float64{1, 0, 0}, 25, nil)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1 (fewer than k is not an error)", len(results))
	}
}

func TestMemoryIndex_QueryValidation(t *testing.T) {
	idx := newTestIndex(t)

	if _, err := idx.Query([]float64{1, 0, 0}, 0, nil); err == nil {
		t.Error("Query() with k=0 should fail")
	}
	if _, err := idx.Query([]float64{1, 0}, 5, nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Error("Query() with wrong-dimension vector should fail with ErrDimensionMismatch")
	}
}
