// ABOUTME: CLI command to generate a meeting summary from a transcript
// ABOUTME: Separates addressed from unaddressed points and grounds the prompt in retrieved context
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	summaryAddressed   []string
	summaryUnaddressed []string
)

// NewSummaryCmd creates the summary command
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <transcript-file>",
		Short: "Generate a summary of a meeting",
		Long: `Generate a summary of a meeting from its transcript.

Without flags the addressed and unaddressed lists come from matching
the meeting's indexed discussion points against the transcript.
The --addressed and --unaddressed flags override them.

Examples:
  quorum summary -m standup recording.txt
  quorum summary -m planning minutes.txt --addressed "Launch date decided"`,
		Args: cobra.ExactArgs(1),
		RunE: runSummary,
	}

	cmd.Flags().StringArrayVar(&summaryAddressed, "addressed", nil, "Addressed point (repeatable)")
	cmd.Flags().StringArrayVar(&summaryUnaddressed, "unaddressed", nil, "Unaddressed point (repeatable)")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	meeting, err := requireMeeting()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	transcript := string(content)

	addressed, unaddressed := summaryAddressed, summaryUnaddressed

	sess, err := loadPipeline()
	if err != nil {
		return err
	}
	defer sess.Close()

	// No explicit lists: derive them by matching the stored points
	if addressed == nil && unaddressed == nil {
		points, err := meetingPoints(sess.index, meeting)
		if err != nil {
			return fmt.Errorf("loading discussion points: %w", err)
		}
		results, err := sess.pipeline.Matcher().MatchPoints(points, transcript)
		if err != nil {
			return fmt.Errorf("matching points: %w", err)
		}
		for i, p := range points {
			if results[i].Matched {
				addressed = append(addressed, p.Content)
			} else {
				unaddressed = append(unaddressed, p.Content)
			}
		}
	}

	summary, err := sess.pipeline.GenerateSummary(meeting, transcript, addressed, unaddressed)
	if err != nil {
		return fmt.Errorf("generating summary: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary)
	return nil
}
