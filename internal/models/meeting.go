// ABOUTME: Meeting-facing types: discussion points, match results, context bundles
// ABOUTME: The host application owns persistence; these are the core's wire shapes
package models

// DiscussionPoint is a planned topic a participant wants addressed in a
// meeting. Addressed flips to true only as a result of similarity
// matching against a processed transcript.
type DiscussionPoint struct {
	ID          string `json:"id"`
	MeetingID   string `json:"meeting_id"`
	Participant string `json:"participant,omitempty"`
	Content     string `json:"content"`
	Addressed   bool   `json:"addressed"`
}

// SimilarityResult reports how one discussion point fared against a
// transcript. BestScore is cosine similarity in [-1, 1]; BestMatchText
// is the transcript segment that produced it, empty when nothing
// matched at all.
type SimilarityResult struct {
	StatementID   string  `json:"statement_id"`
	Matched       bool    `json:"matched"`
	BestScore     float64 `json:"best_score"`
	BestMatchText string  `json:"best_match_text,omitempty"`
}

// ContextEntry is one retrieved excerpt destined for a prompt. Source
// is a human-readable provenance label such as
// "Document (Current Meeting)".
type ContextEntry struct {
	Text   string  `json:"text"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// ContextBundle is an ordered set of retrieved excerpts, at most K
// entries, used only to build a prompt.
type ContextBundle []ContextEntry
