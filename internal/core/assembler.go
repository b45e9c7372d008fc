// ABOUTME: Context assembler building bounded prompt context from the vector index
// ABOUTME: Retrieves top-K records, truncates excerpts, and labels provenance
package core

import (
	"fmt"
	"strings"

	"github.com/quorumlabs/quorum/internal/models"
	"github.com/quorumlabs/quorum/internal/storage"
)

// DefaultExcerptLimit caps each context entry at this many characters
// so prompt size stays bounded no matter how long source documents are.
const DefaultExcerptLimit = 500

// NoContextMarker is rendered in place of retrieved context when the
// index returns nothing relevant. Generation proceeds; an empty index
// is not an error.
const NoContextMarker = "No additional context available."

// Assembler builds ContextBundles by semantic search over the index.
type Assembler struct {
	embedder     Embedder
	index        storage.VectorIndex
	excerptLimit int
}

// NewAssembler creates an Assembler. excerptLimit <= 0 falls back to
// DefaultExcerptLimit.
func NewAssembler(embedder Embedder, index storage.VectorIndex, excerptLimit int) *Assembler {
	if excerptLimit <= 0 {
		excerptLimit = DefaultExcerptLimit
	}
	return &Assembler{
		embedder:     embedder,
		index:        index,
		excerptLimit: excerptLimit,
	}
}

// Assemble embeds the query once, retrieves the top k records matching
// the filter, and renders them into bundle entries. Each entry's text
// is truncated to the excerpt limit, and its Source label carries the
// record type plus whether it came from the caller's active meeting.
func (a *Assembler) Assemble(queryText string, k int, filter map[string]any, activeMeetingID string) (models.ContextBundle, error) {
	vecs, err := a.embedder.EmbedBatch([]string{queryText})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vecs))
	}

	results, err := a.index.Query(vecs[0], k, filter)
	if err != nil {
		return nil, fmt.Errorf("index query failed: %w", err)
	}

	bundle := make(models.ContextBundle, 0, len(results))
	for _, res := range results {
		bundle = append(bundle, models.ContextEntry{
			Text:   truncateRunes(res.Record.Text, a.excerptLimit),
			Source: sourceLabel(res.Record.Metadata, activeMeetingID),
			Score:  res.Score,
		})
	}
	return bundle, nil
}

// RenderContext turns a bundle into prompt text, one "Source: excerpt"
// line per entry. An empty bundle renders the explicit no-context
// marker so the generator never sees a silently missing section.
func RenderContext(bundle models.ContextBundle) string {
	if len(bundle) == 0 {
		return NoContextMarker
	}

	var sb strings.Builder
	for _, entry := range bundle {
		sb.WriteString(entry.Source)
		sb.WriteString(": ")
		sb.WriteString(entry.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// sourceLabel derives the provenance discriminator, e.g.
// "Document (Current Meeting)" or "Transcript (Other Meeting)".
func sourceLabel(metadata map[string]any, activeMeetingID string) string {
	recType := metaString(metadata, models.MetaType)
	if recType == "" {
		recType = "record"
	}

	indicator := "Other Meeting"
	if metaString(metadata, models.MetaMeetingID) == activeMeetingID {
		indicator = "Current Meeting"
	}

	return fmt.Sprintf("%s (%s)", capitalize(recType), indicator)
}

// metaString reads a metadata value as a string; missing keys yield ""
func metaString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	v, ok := metadata[key]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// truncateRunes cuts s to at most limit characters without splitting a
// multibyte rune.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
