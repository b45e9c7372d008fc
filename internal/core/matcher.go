// ABOUTME: Similarity matcher deciding which discussion points a transcript addressed
// ABOUTME: Batch-embeds points and transcript segments, then compares pairwise cosine
package core

import (
	"fmt"
	"strings"

	"github.com/quorumlabs/quorum/internal/models"
	"github.com/quorumlabs/quorum/internal/storage"
)

// DefaultMatchThreshold is the minimum best-segment similarity for a
// point to count as addressed.
const DefaultMatchThreshold = 0.5

// Matcher classifies reference statements as matched or unmatched
// against a transcript using nearest-neighbor embedding similarity.
type Matcher struct {
	embedder  Embedder
	threshold float64
}

// NewMatcher creates a Matcher with the given similarity threshold.
// The threshold is a tunable precision/recall knob, not part of the
// algorithm.
func NewMatcher(embedder Embedder, threshold float64) *Matcher {
	return &Matcher{
		embedder:  embedder,
		threshold: threshold,
	}
}

// SplitTranscript splits a transcript into sentence-level segments on
// periods. This is deliberately simple and lossy: abbreviations and
// decimals mis-split. Swapping in a real sentence tokenizer would not
// change the matcher contract.
func SplitTranscript(transcript string) []string {
	parts := strings.Split(transcript, ".")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Match partitions the statements into matched and unmatched slices.
// Both outputs preserve input order, and every statement lands in
// exactly one of them. No statements means no embedding calls at all.
func (m *Matcher) Match(statements []string, transcript string) (matched, unmatched []string, err error) {
	results, err := m.scoreStatements(statements, transcript)
	if err != nil {
		return nil, nil, err
	}

	matched = []string{}
	unmatched = []string{}
	for i, res := range results {
		if res.Matched {
			matched = append(matched, statements[i])
		} else {
			unmatched = append(unmatched, statements[i])
		}
	}
	return matched, unmatched, nil
}

// MatchPoints scores each discussion point against the transcript and
// returns one SimilarityResult per point, in input order.
func (m *Matcher) MatchPoints(points []models.DiscussionPoint, transcript string) ([]models.SimilarityResult, error) {
	statements := make([]string, len(points))
	for i, p := range points {
		statements[i] = p.Content
	}

	results, err := m.scoreStatements(statements, transcript)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].StatementID = points[i].ID
	}
	return results, nil
}

// scoreStatements embeds all statements in one call and all transcript
// segments in another, regardless of how many pairs get compared, then
// takes the per-statement maximum similarity. Blank statements and
// degenerate zero-vector embeddings are always unmatched; "nothing
// similar found" is the normal unmatched outcome, never an error.
func (m *Matcher) scoreStatements(statements []string, transcript string) ([]models.SimilarityResult, error) {
	if len(statements) == 0 {
		return []models.SimilarityResult{}, nil
	}

	statementVecs, err := m.embedder.EmbedBatch(statements)
	if err != nil {
		return nil, fmt.Errorf("failed to embed statements: %w", err)
	}
	if len(statementVecs) != len(statements) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d statements", len(statementVecs), len(statements))
	}

	segments := SplitTranscript(transcript)
	var segmentVecs [][]float64
	if len(segments) > 0 {
		segmentVecs, err = m.embedder.EmbedBatch(segments)
		if err != nil {
			return nil, fmt.Errorf("failed to embed transcript segments: %w", err)
		}
		if len(segmentVecs) != len(segments) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d segments", len(segmentVecs), len(segments))
		}
	}

	results := make([]models.SimilarityResult, len(statements))
	for i, vec := range statementVecs {
		res := models.SimilarityResult{}

		if strings.TrimSpace(statements[i]) == "" || isZeroVector(vec) {
			results[i] = res
			continue
		}

		for j, segVec := range segmentVecs {
			score := storage.CosineSimilarity(vec, segVec)
			if score > res.BestScore || res.BestMatchText == "" {
				res.BestScore = score
				res.BestMatchText = segments[j]
			}
		}
		res.Matched = res.BestMatchText != "" && res.BestScore >= m.threshold
		results[i] = res
	}
	return results, nil
}

func isZeroVector(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
