// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Initializes logging behavior from verbose/quiet flags
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	meetingID    string
)

const banner = `
 ██████╗ ██╗   ██╗ ██████╗ ██████╗ ██╗   ██╗███╗   ███╗
██╔═══██╗██║   ██║██╔═══██╗██╔══██╗██║   ██║████╗ ████║
██║   ██║██║   ██║██║   ██║██████╔╝██║   ██║██╔████╔██║
██║▄▄ ██║██║   ██║██║   ██║██╔══██╗██║   ██║██║╚██╔╝██║
╚██████╔╝╚██████╔╝╚██████╔╝██║  ██║╚██████╔╝██║ ╚═╝ ██║
 ╚══▀▀═╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quorum",
		Short: "Meeting assistant with semantic agenda tracking",
		Long: banner + `
Quorum tracks discussion points across meetings, matches them against
transcripts with embedding similarity, and generates agendas and
summaries grounded in retrieved meeting context.

All records live in a local SQLite-backed vector index. Embedding and
generation use OpenAI (set OPENAI_API_KEY).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")
	cmd.PersistentFlags().StringVarP(&meetingID, "meeting", "m", "", "Meeting identifier")

	cmd.AddCommand(NewPointCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewTranscriptCmd())
	cmd.AddCommand(NewTranscribeCmd())
	cmd.AddCommand(NewAgendaCmd())
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
