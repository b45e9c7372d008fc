// ABOUTME: CLI command to process a meeting transcript
// ABOUTME: Matches indexed discussion points and indexes transcript sentences
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quorumlabs/quorum/internal/models"
	"github.com/quorumlabs/quorum/internal/storage/sqlite"
)

// NewTranscriptCmd creates the transcript command
func NewTranscriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript <file>",
		Short: "Process a transcript against a meeting's discussion points",
		Long: `Process a transcript against a meeting's discussion points.

Splits the transcript into sentences, marks discussion points whose
best sentence similarity clears the match threshold as addressed, and
indexes the sentences for later retrieval.

Examples:
  quorum transcript -m standup recording.txt
  quorum transcript --meeting planning minutes.txt --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscript,
	}

	return cmd
}

func runTranscript(cmd *cobra.Command, args []string) error {
	meeting, err := requireMeeting()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	sess, err := loadPipeline()
	if err != nil {
		return err
	}
	defer sess.Close()

	return processAndReport(cmd, sess, meeting, string(content))
}

// processAndReport runs transcript processing against the meeting's
// indexed points and renders the outcome. Shared with the transcribe
// command, which produces the transcript text first.
func processAndReport(cmd *cobra.Command, sess *session, meeting, transcript string) error {
	points, err := meetingPoints(sess.index, meeting)
	if err != nil {
		return fmt.Errorf("loading discussion points: %w", err)
	}

	updated, results, err := sess.pipeline.ProcessTranscript(meeting, transcript, points)
	if err != nil {
		return fmt.Errorf("processing transcript: %w", err)
	}

	if outputFormat == "json" {
		out := struct {
			Points  []models.DiscussionPoint  `json:"points"`
			Results []models.SimilarityResult `json:"results"`
		}{updated, results}
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "POINT\tPARTICIPANT\tADDRESSED\tSCORE\tBEST MATCH\n")
	for i, p := range updated {
		fmt.Fprintf(w, "%s\t%s\t%v\t%.3f\t%s\n",
			truncate(p.Content, 40),
			p.Participant,
			p.Addressed,
			results[i].BestScore,
			truncate(results[i].BestMatchText, 40))
	}
	w.Flush()

	if !quiet {
		addressed := 0
		for _, p := range updated {
			if p.Addressed {
				addressed++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nAddressed %d of %d point(s)\n", addressed, len(updated))
	}
	return nil
}

// meetingPoints rebuilds the meeting's discussion points from indexed
// records. Addressed state is recomputed by matching, so it starts
// false here.
func meetingPoints(index *sqlite.Index, meeting string) ([]models.DiscussionPoint, error) {
	records, err := index.All()
	if err != nil {
		return nil, err
	}

	var points []models.DiscussionPoint
	for _, rec := range records {
		if rec.Metadata[models.MetaType] != models.TypeDiscussionPoint {
			continue
		}
		if rec.Metadata[models.MetaMeetingID] != meeting {
			continue
		}
		participant, _ := rec.Metadata[models.MetaParticipant].(string)
		points = append(points, models.DiscussionPoint{
			ID:          rec.ID,
			MeetingID:   meeting,
			Participant: participant,
			Content:     rec.Text,
		})
	}
	return points, nil
}
