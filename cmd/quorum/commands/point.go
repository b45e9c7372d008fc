// ABOUTME: CLI command to register a discussion point for a meeting
// ABOUTME: Embeds and indexes the point so later transcripts can match it
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewPointCmd creates the point command
func NewPointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "point <participant> <content>",
		Short: "Add a discussion point to a meeting",
		Long: `Add a discussion point to a meeting.

The point is embedded and stored in the vector index. Later transcript
processing marks it addressed when a transcript sentence is
semantically similar enough.

Examples:
  quorum point -m standup alice "Review the Q3 budget numbers"
  quorum point --meeting planning bob "Decide on the launch date"`,
		Args: cobra.ExactArgs(2),
		RunE: runPoint,
	}

	return cmd
}

func runPoint(cmd *cobra.Command, args []string) error {
	meeting, err := requireMeeting()
	if err != nil {
		return err
	}

	participant, content := args[0], args[1]

	sess, err := loadPipeline()
	if err != nil {
		return err
	}
	defer sess.Close()

	point, err := sess.pipeline.AddDiscussionPoint(meeting, participant, content)
	if err != nil {
		return fmt.Errorf("adding discussion point: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(point, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added point %s for %s in meeting %s\n", point.ID, participant, meeting)
	}
	return nil
}
