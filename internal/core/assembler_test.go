// ABOUTME: Tests for the context assembler
// ABOUTME: Verifies excerpt bounds, provenance labels, and empty-index behavior
package core

import (
	"strings"
	"testing"

	"github.com/quorumlabs/quorum/internal/models"
	"github.com/quorumlabs/quorum/internal/storage"
)

func newAssemblerFixture(t *testing.T, excerptLimit int) (*stubEmbedder, *storage.MemoryIndex, *Assembler) {
	t.Helper()
	embedder := &stubEmbedder{dim: 3, vectors: map[string][]float64{
		"query": {1, 0, 0},
	}}
	index, err := storage.NewMemoryIndex(3)
	if err != nil {
		t.Fatalf("NewMemoryIndex() error = %v", err)
	}
	return embedder, index, NewAssembler(embedder, index, excerptLimit)
}

func TestAssembler_ExcerptNeverExceedsLimit(t *testing.T) {
	_, index, assembler := newAssemblerFixture(t, 500)

	longText := strings.Repeat("x", 10000)
	err := index.Add([]models.Record{
		{ID: "doc_long", Text: longText, Vector: []float64{1, 0, 0},
			Metadata: map[string]any{"meeting_id": "m1", "type": "document"}},
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	bundle, err := assembler.Assemble("query", 5, nil, "m1")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(bundle) != 1 {
		t.Fatalf("got %d entries, want 1", len(bundle))
	}
	if got := len([]rune(bundle[0].Text)); got > 500 {
		t.Errorf("excerpt length = %d, want <= 500", got)
	}
}

func TestAssembler_SourceLabels(t *testing.T) {
	_, index, assembler := newAssemblerFixture(t, 500)

	err := index.Add([]models.Record{
		{ID: "d1", Text: "current doc", Vector: []float64{1, 0, 0},
			Metadata: map[string]any{"meeting_id": "m1", "type": "document"}},
		{ID: "t1", Text: "old discussion", Vector: []float64{0.9, 0.1, 0},
			Metadata: map[string]any{"meeting_id": "m2", "type": "transcript"}},
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	bundle, err := assembler.Assemble("query", 5, nil, "m1")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(bundle) != 2 {
		t.Fatalf("got %d entries, want 2", len(bundle))
	}

	if bundle[0].Source != "Document (Current Meeting)" {
		t.Errorf("Source = %q, want Document (Current Meeting)", bundle[0].Source)
	}
	if bundle[1].Source != "Transcript (Other Meeting)" {
		t.Errorf("Source = %q, want Transcript (Other Meeting)", bundle[1].Source)
	}
}

func TestAssembler_EmptyIndexYieldsEmptyBundle(t *testing.T) {
	_, _, assembler := newAssemblerFixture(t, 500)

	bundle, err := assembler.Assemble("query", 25, nil, "m1")
	if err != nil {
		t.Fatalf("Assemble() on empty index should not error, got %v", err)
	}
	if len(bundle) != 0 {
		t.Errorf("got %d entries, want 0", len(bundle))
	}
}

func TestAssembler_HonorsFilterAndK(t *testing.T) {
	_, index, assembler := newAssemblerFixture(t, 500)

	records := []models.Record{
		{ID: "d1", Text: "doc one", Vector: []float64{1, 0, 0},
			Metadata: map[string]any{"meeting_id": "m1", "type": "document"}},
		{ID: "d2", Text: "doc two", Vector: []float64{0.9, 0.1, 0},
			Metadata: map[string]any{"meeting_id": "m1", "type": "document"}},
		{ID: "t1", Text: "transcript line", Vector: []float64{1, 0, 0},
			Metadata: map[string]any{"meeting_id": "m1", "type": "transcript"}},
	}
	if err := index.Add(records); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	filter := map[string]any{"meeting_id": "m1", "type": "document"}
	bundle, err := assembler.Assemble("query", 1, filter, "m1")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(bundle) != 1 {
		t.Fatalf("got %d entries, want 1 (k=1)", len(bundle))
	}
	if bundle[0].Text != "doc one" {
		t.Errorf("top entry = %q, want the most similar document", bundle[0].Text)
	}
}

func TestRenderContext(t *testing.T) {
	bundle := models.ContextBundle{
		{Text: "budget detail", Source: "Document (Current Meeting)", Score: 0.9},
		{Text: "prior note", Source: "Transcript (Other Meeting)", Score: 0.4},
	}

	rendered := RenderContext(bundle)
	want := "Document (Current Meeting): budget detail\nTranscript (Other Meeting): prior note\n"
	if rendered != want {
		t.Errorf("RenderContext() = %q, want %q", rendered, want)
	}
}

func TestRenderContext_EmptyBundle(t *testing.T) {
	if got := RenderContext(nil); got != NoContextMarker {
		t.Errorf("RenderContext(nil) = %q, want marker", got)
	}
}
