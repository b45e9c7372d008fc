// ABOUTME: CLI command to inspect indexed records
// ABOUTME: Lists records with metadata, no API key required
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quorumlabs/quorum/internal/models"
)

var (
	inspectType  string
	inspectLimit int
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List records in the vector index",
		Long: `List records in the vector index.

Shows every indexed record with its type and meeting. Use --meeting
and --type to narrow the listing. Works without an API key.

Examples:
  quorum inspect
  quorum inspect -m standup --type document
  quorum inspect --format json`,
		RunE: runInspect,
	}

	cmd.Flags().StringVar(&inspectType, "type", "", "Filter by record type (document, discussion_point, transcript)")
	cmd.Flags().IntVar(&inspectLimit, "limit", 50, "Maximum number of records to show")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(inspectLimit, "--limit"); err != nil {
		return err
	}

	db, index, _, err := openIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	records, err := index.All()
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	filtered := records[:0]
	for _, rec := range records {
		if meetingID != "" && rec.Metadata[models.MetaMeetingID] != meetingID {
			continue
		}
		if inspectType != "" && rec.Metadata[models.MetaType] != inspectType {
			continue
		}
		filtered = append(filtered, rec)
	}
	if len(filtered) > inspectLimit {
		filtered = filtered[:inspectLimit]
	}

	if len(filtered) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No records found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(filtered, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTYPE\tMEETING\tTEXT\n")
	fmt.Fprintf(w, "--\t----\t-------\t----\n")
	for _, rec := range filtered {
		recType, _ := rec.Metadata[models.MetaType].(string)
		meeting, _ := rec.Metadata[models.MetaMeetingID].(string)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(rec.ID, 25),
			recType,
			meeting,
			truncate(rec.Text, 50))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d record(s)\n", len(filtered))
	}
	return nil
}
