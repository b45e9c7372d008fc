// ABOUTME: Tests for the similarity matcher
// ABOUTME: Uses a stub embedder with fixed vectors for exact strings
package core

import (
	"testing"
	"time"

	"github.com/quorumlabs/quorum/internal/models"
)

// stubEmbedder returns canned vectors for known strings and zero
// vectors for everything else.
type stubEmbedder struct {
	dim     int
	vectors map[string][]float64
	calls   int
}

func (s *stubEmbedder) EmbedBatch(texts []string) ([][]float64, error) {
	s.calls++
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if vec, ok := s.vectors[text]; ok {
			out[i] = vec
		} else {
			out[i] = make([]float64, s.dim)
		}
	}
	return out, nil
}

func (s *stubEmbedder) Dimension() int { return s.dim }

// stubGenerator records the last prompt and returns a canned artifact.
type stubGenerator struct {
	lastPrompt    string
	lastMaxTokens int
	lastTemp      float64
	lastTimeout   time.Duration
	response      string
	err           error
}

func (s *stubGenerator) Generate(prompt string, maxTokens int, temperature float64, timeout time.Duration) (string, error) {
	s.lastPrompt = prompt
	s.lastMaxTokens = maxTokens
	s.lastTemp = temperature
	s.lastTimeout = timeout
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestSplitTranscript(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       []string
	}{
		{"two sentences", "We reviewed the budget. No other topics came up.",
			[]string{"We reviewed the budget", "No other topics came up"}},
		{"no trailing period", "One topic only", []string{"One topic only"}},
		{"empty", "", nil},
		{"only periods", "...", nil},
		{"whitespace between periods", "First. \n . Second.", []string{"First", "Second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTranscript(tt.transcript)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitTranscript() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMatcher_BudgetScenario(t *testing.T) {
	embedder := &stubEmbedder{
		dim: 3,
		vectors: map[string][]float64{
			"Discuss Q3 budget":                   {1, 0, 0},
			"Plan product launch":                 {0, 1, 0},
			"We reviewed the Q3 budget in detail": {0.9, 0.1, 0},
			"No other topics came up":             {0, 0, 1},
		},
	}
	matcher := NewMatcher(embedder, 0.5)

	matched, unmatched, err := matcher.Match(
		[]string{"Discuss Q3 budget", "Plan product launch"},
		"We reviewed the Q3 budget in detail. No other topics came up.",
	)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	if len(matched) != 1 || matched[0] != "Discuss Q3 budget" {
		t.Errorf("matched = %v, want [Discuss Q3 budget]", matched)
	}
	if len(unmatched) != 1 || unmatched[0] != "Plan product launch" {
		t.Errorf("unmatched = %v, want [Plan product launch]", unmatched)
	}
}

func TestMatcher_BatchEmbedsOnlyTwice(t *testing.T) {
	embedder := &stubEmbedder{
		dim: 3,
		vectors: map[string][]float64{
			"a": {1, 0, 0}, "b": {0, 1, 0}, "c": {0, 0, 1},
		},
	}
	matcher := NewMatcher(embedder, 0.5)

	// Many statements, many segments: still two embedding invocations
	_, _, err := matcher.Match(
		[]string{"a", "b", "c", "a", "b"},
		"one. two. three. four. five. six. seven.",
	)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if embedder.calls != 2 {
		t.Errorf("embedder called %d times, want 2", embedder.calls)
	}
}

func TestMatcher_ThresholdBoundaryIsInclusive(t *testing.T) {
	// cos([1,0], [0.5, sqrt(3)/2]) is exactly 0.5
	embedder := &stubEmbedder{
		dim: 2,
		vectors: map[string][]float64{
			"statement": {1, 0},
			"segment":   {0.5, 0.8660254037844386},
		},
	}

	// Exactly at threshold: matched (>=, not >)
	matcher := NewMatcher(embedder, 0.5)
	matched, unmatched, err := matcher.Match([]string{"statement"}, "segment.")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(matched) != 1 {
		t.Errorf("score exactly at threshold should match, got matched=%v unmatched=%v", matched, unmatched)
	}

	// Just above the score: unmatched
	strict := NewMatcher(embedder, 0.5001)
	matched, unmatched, err = strict.Match([]string{"statement"}, "segment.")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(unmatched) != 1 {
		t.Errorf("score below threshold should not match, got matched=%v", matched)
	}
}

func TestMatcher_PartitionProperty(t *testing.T) {
	embedder := &stubEmbedder{
		dim: 2,
		vectors: map[string][]float64{
			"hit":     {1, 0},
			"miss":    {0, 1},
			"segment": {1, 0},
		},
	}
	matcher := NewMatcher(embedder, 0.5)

	input := []string{"hit", "miss", "hit", "miss", "miss"}
	matched, unmatched, err := matcher.Match(input, "segment.")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	// Every statement in exactly one output, multiset preserved
	if len(matched)+len(unmatched) != len(input) {
		t.Fatalf("partition sizes %d+%d != input %d", len(matched), len(unmatched), len(input))
	}
	counts := map[string]int{}
	for _, s := range input {
		counts[s]++
	}
	for _, s := range append(append([]string{}, matched...), unmatched...) {
		counts[s]--
	}
	for s, n := range counts {
		if n != 0 {
			t.Errorf("statement %q count off by %d", s, n)
		}
	}
}

func TestMatcher_EmptyStatements(t *testing.T) {
	embedder := &stubEmbedder{dim: 2}
	matcher := NewMatcher(embedder, 0.5)

	matched, unmatched, err := matcher.Match(nil, "any text at all.")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(matched) != 0 || len(unmatched) != 0 {
		t.Errorf("Match([], ...) = (%v, %v), want ([], [])", matched, unmatched)
	}
	if embedder.calls != 0 {
		t.Errorf("no statements should mean no embedding calls, got %d", embedder.calls)
	}
}

func TestMatcher_BlankAndDegenerateStatementsUnmatched(t *testing.T) {
	embedder := &stubEmbedder{
		dim: 2,
		vectors: map[string][]float64{
			"segment":   {1, 0},
			"no vector": {0, 0}, // degenerate embedding
		},
	}
	matcher := NewMatcher(embedder, 0.0)

	matched, unmatched, err := matcher.Match([]string{"", "   ", "no vector"}, "segment.")
	if err != nil {
		t.Fatalf("Match() should never raise for degenerate statements, got %v", err)
	}
	if len(matched) != 0 {
		t.Errorf("degenerate statements must be unmatched, got matched=%v", matched)
	}
	if len(unmatched) != 3 {
		t.Errorf("unmatched = %v, want all three inputs", unmatched)
	}
}

func TestMatcher_EmptyTranscript(t *testing.T) {
	embedder := &stubEmbedder{
		dim:     2,
		vectors: map[string][]float64{"point": {1, 0}},
	}
	matcher := NewMatcher(embedder, 0.5)

	matched, unmatched, err := matcher.Match([]string{"point"}, "")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(matched) != 0 || len(unmatched) != 1 {
		t.Errorf("empty transcript should leave everything unmatched, got (%v, %v)", matched, unmatched)
	}
	// Only the statements batch gets embedded
	if embedder.calls != 1 {
		t.Errorf("embedder called %d times, want 1", embedder.calls)
	}
}

func TestMatcher_OutputPreservesInputOrder(t *testing.T) {
	embedder := &stubEmbedder{
		dim: 2,
		vectors: map[string][]float64{
			"first hit":   {1, 0},
			"second miss": {0, 1},
			"third hit":   {0.9, 0.1},
			"segment":     {1, 0},
		},
	}
	matcher := NewMatcher(embedder, 0.5)

	matched, unmatched, err := matcher.Match(
		[]string{"third hit", "second miss", "first hit"}, "segment.")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	if len(matched) != 2 || matched[0] != "third hit" || matched[1] != "first hit" {
		t.Errorf("matched order = %v, want input order", matched)
	}
	if len(unmatched) != 1 || unmatched[0] != "second miss" {
		t.Errorf("unmatched = %v", unmatched)
	}
}

func TestMatcher_MatchPointsCarriesIDs(t *testing.T) {
	embedder := &stubEmbedder{
		dim: 2,
		vectors: map[string][]float64{
			"covered topic": {1, 0},
			"segment":       {1, 0},
		},
	}
	matcher := NewMatcher(embedder, 0.5)

	points := []models.DiscussionPoint{
		{ID: "dp_1", Content: "covered topic"},
		{ID: "dp_2", Content: "skipped topic"},
	}
	results, err := matcher.MatchPoints(points, "segment.")
	if err != nil {
		t.Fatalf("MatchPoints() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].StatementID != "dp_1" || !results[0].Matched {
		t.Errorf("results[0] = %+v, want matched dp_1", results[0])
	}
	if results[0].BestMatchText != "segment" {
		t.Errorf("BestMatchText = %q, want the matching segment", results[0].BestMatchText)
	}
	if results[1].StatementID != "dp_2" || results[1].Matched {
		t.Errorf("results[1] = %+v, want unmatched dp_2", results[1])
	}
}
