// ABOUTME: CLI command to generate a meeting agenda
// ABOUTME: Retrieves relevant document excerpts and prompts the chat model
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAgendaCmd creates the agenda command
func NewAgendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda [point]...",
		Short: "Generate an agenda for a meeting",
		Long: `Generate an agenda for a meeting.

Discussion points come from the index for the meeting, plus any extra
points given as arguments. The prompt is grounded in document excerpts
retrieved from the same meeting.

Examples:
  quorum agenda -m standup
  quorum agenda -m planning "Finalize release checklist"`,
		RunE: runAgenda,
	}

	return cmd
}

func runAgenda(cmd *cobra.Command, args []string) error {
	meeting, err := requireMeeting()
	if err != nil {
		return err
	}

	sess, err := loadPipeline()
	if err != nil {
		return err
	}
	defer sess.Close()

	stored, err := meetingPoints(sess.index, meeting)
	if err != nil {
		return fmt.Errorf("loading discussion points: %w", err)
	}

	var points []string
	for _, p := range stored {
		points = append(points, p.Content)
	}
	points = append(points, args...)

	agenda, err := sess.pipeline.GenerateAgenda(meeting, points)
	if err != nil {
		return fmt.Errorf("generating agenda: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), agenda)
	return nil
}
