// ABOUTME: Record and search result types for the vector index
// ABOUTME: Metadata values are limited to strings, integers, and booleans
package models

import "time"

// Record type values stored under the "type" metadata key.
const (
	TypeDocument        = "document"
	TypeDiscussionPoint = "discussion_point"
	TypeTranscript      = "transcript"
)

// Metadata keys written by the ingestion paths.
const (
	MetaMeetingID     = "meeting_id"
	MetaType          = "type"
	MetaSentenceIndex = "sentence_index"
	MetaParticipant   = "participant"
	MetaFilename      = "filename"
)

// Record is a single entry in the vector index. Records are immutable
// once written; the index is append-only.
type Record struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Vector    []float64      `json:"vector"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// SearchResult pairs a stored record with its cosine similarity score.
type SearchResult struct {
	Record Record  `json:"record"`
	Score  float64 `json:"score"`
}
