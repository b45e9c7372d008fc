// ABOUTME: Pipeline orchestrator composing ingestion, matching, retrieval, and generation
// ABOUTME: Produces agenda and summary artifacts; stateless per invocation
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quorumlabs/quorum/internal/models"
	"github.com/quorumlabs/quorum/internal/storage"
)

const agendaPromptTemplate = `
Using the following discussion points and relevant document content, generate a detailed meeting agenda with clear headings and subheadings.

Discussion Points:
%s

%s

Provide the agenda in a structured format suitable for a professional meeting.
`

const summaryPromptTemplate = `
Using the following context, meeting transcript, and reference documents, generate a detailed summary including topics discussed, key decisions made, assigned action items with responsible participants, and highlight any unresolved issues.

Context:
%s

Transcript:
%s

Addressed Discussion Points:
%s

Unaddressed Discussion Points:
%s

Provide the summary in a clear and structured format.
`

// PipelineConfig bounds retrieval and generation for both pipelines.
type PipelineConfig struct {
	AgendaTopK        int
	SummaryTopK       int
	AgendaMaxTokens   int
	SummaryMaxTokens  int
	Temperature       float64
	GenerationTimeout time.Duration
}

// DefaultPipelineConfig returns the stock pipeline tuning
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		AgendaTopK:        5,
		SummaryTopK:       25,
		AgendaMaxTokens:   800,
		SummaryMaxTokens:  1500,
		Temperature:       0.5,
		GenerationTimeout: 600 * time.Second,
	}
}

// Pipeline wires the embedder, generator, index, matcher, and
// assembler into the two meeting pipelines. All dependencies are
// injected once at construction; the pipeline itself holds no request
// state.
type Pipeline struct {
	embedder  Embedder
	generator Generator
	index     storage.VectorIndex
	matcher   *Matcher
	assembler *Assembler
	cfg       PipelineConfig
}

// NewPipeline constructs a Pipeline around shared dependencies
func NewPipeline(embedder Embedder, generator Generator, index storage.VectorIndex, matcher *Matcher, assembler *Assembler, cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		embedder:  embedder,
		generator: generator,
		index:     index,
		matcher:   matcher,
		assembler: assembler,
		cfg:       cfg,
	}
}

// Matcher returns the similarity matcher the pipeline was built with,
// for callers that need matching without transcript indexing.
func (p *Pipeline) Matcher() *Matcher {
	return p.matcher
}

// AddDiscussionPoint embeds a proposed point and appends it to the
// index with discussion_point metadata. Returns the stored point.
func (p *Pipeline) AddDiscussionPoint(meetingID, participant, content string) (models.DiscussionPoint, error) {
	point := models.DiscussionPoint{
		ID:          fmt.Sprintf("dp_%s", shortID()),
		MeetingID:   meetingID,
		Participant: participant,
		Content:     content,
	}

	vecs, err := p.embedder.EmbedBatch([]string{content})
	if err != nil {
		return models.DiscussionPoint{}, fmt.Errorf("failed to embed discussion point: %w", err)
	}

	rec := models.Record{
		ID:     point.ID,
		Text:   content,
		Vector: vecs[0],
		Metadata: map[string]any{
			models.MetaMeetingID:   meetingID,
			models.MetaType:        models.TypeDiscussionPoint,
			models.MetaParticipant: participant,
		},
	}
	if err := p.index.Add([]models.Record{rec}); err != nil {
		return models.DiscussionPoint{}, fmt.Errorf("failed to index discussion point: %w", err)
	}
	return point, nil
}

// IngestDocument embeds a supporting document and appends it to the
// index with document metadata. Returns the record id.
func (p *Pipeline) IngestDocument(meetingID, filename, content string) (string, error) {
	vecs, err := p.embedder.EmbedBatch([]string{content})
	if err != nil {
		return "", fmt.Errorf("failed to embed document: %w", err)
	}

	rec := models.Record{
		ID:     fmt.Sprintf("doc_%s", shortID()),
		Text:   content,
		Vector: vecs[0],
		Metadata: map[string]any{
			models.MetaMeetingID: meetingID,
			models.MetaType:      models.TypeDocument,
			models.MetaFilename:  filename,
		},
	}
	if err := p.index.Add([]models.Record{rec}); err != nil {
		return "", fmt.Errorf("failed to index document: %w", err)
	}
	return rec.ID, nil
}

// ProcessTranscript matches discussion points against the transcript,
// flips Addressed on the returned copies, and indexes every transcript
// sentence for later cross-meeting retrieval. An empty transcript is
// fine: every point stays unaddressed and nothing new is indexed.
func (p *Pipeline) ProcessTranscript(meetingID, transcript string, points []models.DiscussionPoint) ([]models.DiscussionPoint, []models.SimilarityResult, error) {
	results, err := p.matcher.MatchPoints(points, transcript)
	if err != nil {
		return nil, nil, fmt.Errorf("matching failed: %w", err)
	}

	updated := make([]models.DiscussionPoint, len(points))
	copy(updated, points)
	for i, res := range results {
		if res.Matched {
			updated[i].Addressed = true
		}
	}

	sentences := SplitTranscript(transcript)
	if len(sentences) > 0 {
		vecs, err := p.embedder.EmbedBatch(sentences)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to embed transcript sentences: %w", err)
		}

		records := make([]models.Record, len(sentences))
		for i, sentence := range sentences {
			records[i] = models.Record{
				ID:     fmt.Sprintf("transcript_%s_%d", meetingID, i),
				Text:   sentence,
				Vector: vecs[i],
				Metadata: map[string]any{
					models.MetaMeetingID:     meetingID,
					models.MetaType:          models.TypeTranscript,
					models.MetaSentenceIndex: i,
				},
			}
		}
		if err := p.index.Add(records); err != nil {
			return nil, nil, fmt.Errorf("failed to index transcript sentences: %w", err)
		}
	}

	return updated, results, nil
}

// GenerateAgenda produces an agenda artifact for a meeting from its
// discussion points plus document context retrieved from the current
// meeting only. Returns the completion text verbatim.
func (p *Pipeline) GenerateAgenda(meetingID string, points []string) (string, error) {
	filter := map[string]any{
		models.MetaMeetingID: meetingID,
		models.MetaType:      models.TypeDocument,
	}

	bundle, err := p.assembler.Assemble(strings.Join(points, " "), p.cfg.AgendaTopK, filter, meetingID)
	if err != nil {
		return "", fmt.Errorf("context assembly failed: %w", err)
	}

	var docsText string
	if len(bundle) > 0 {
		var sb strings.Builder
		sb.WriteString("Relevant Document Content:\n")
		for _, entry := range bundle {
			sb.WriteString(entry.Text)
			sb.WriteString("\n\n")
		}
		docsText = sb.String()
	} else {
		docsText = NoContextMarker
	}

	prompt := fmt.Sprintf(agendaPromptTemplate, numberedList(points), docsText)

	artifact, err := p.generator.Generate(prompt, p.cfg.AgendaMaxTokens, p.cfg.Temperature, p.cfg.GenerationTimeout)
	if err != nil {
		return "", fmt.Errorf("agenda generation failed: %w", err)
	}
	return artifact, nil
}

// GenerateSummary produces a summary artifact from the transcript and
// both point lists, grounded by context retrieved across all meetings
// (no meeting filter, deliberately) using the whole transcript as the
// query. Returns the completion text verbatim.
func (p *Pipeline) GenerateSummary(meetingID, transcript string, addressed, unaddressed []string) (string, error) {
	bundle, err := p.assembler.Assemble(transcript, p.cfg.SummaryTopK, nil, meetingID)
	if err != nil {
		return "", fmt.Errorf("context assembly failed: %w", err)
	}

	prompt := fmt.Sprintf(summaryPromptTemplate,
		RenderContext(bundle),
		transcript,
		bulletList(addressed),
		bulletList(unaddressed),
	)

	artifact, err := p.generator.Generate(prompt, p.cfg.SummaryMaxTokens, p.cfg.Temperature, p.cfg.GenerationTimeout)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return artifact, nil
}

// numberedList renders points as "1. ..." lines; "(none)" when empty
func numberedList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
	}
	return sb.String()
}

// bulletList renders items as "- ..." lines; "(none)" when empty
func bulletList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}

func shortID() string {
	return uuid.New().String()[:8]
}
