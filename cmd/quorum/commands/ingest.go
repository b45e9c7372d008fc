// ABOUTME: CLI command to ingest a document into a meeting's context
// ABOUTME: Reads a file, embeds it, and indexes it for retrieval
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a document for a meeting",
		Long: `Ingest a document for a meeting.

The file's contents are embedded and stored in the vector index so
agenda and summary generation can retrieve relevant excerpts.

Examples:
  quorum ingest -m standup notes.md
  quorum ingest --meeting planning docs/roadmap.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	meeting, err := requireMeeting()
	if err != nil {
		return err
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	sess, err := loadPipeline()
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := sess.pipeline.IngestDocument(meeting, filepath.Base(path), string(content))
	if err != nil {
		return fmt.Errorf("ingesting document: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s as %s into meeting %s\n", filepath.Base(path), id, meeting)
	}
	return nil
}
