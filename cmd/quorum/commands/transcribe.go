// ABOUTME: CLI command to transcribe a meeting recording and process it
// ABOUTME: Sends audio or video to the transcription model, then matches and indexes
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var transcribeSave bool

// NewTranscribeCmd creates the transcribe command
func NewTranscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <media-file>",
		Short: "Transcribe a recording and process it for a meeting",
		Long: `Transcribe a recording and process it for a meeting.

The audio or video file is transcribed via the speech-to-text model,
then handled exactly like a text transcript: discussion points are
matched and the sentences are indexed. With --save the transcript text
is written next to the recording.

Examples:
  quorum transcribe -m standup recording.mp3
  quorum transcribe --meeting planning allhands.mp4 --save`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscribe,
	}

	cmd.Flags().BoolVar(&transcribeSave, "save", false, "Write the transcript to <media-file>.transcript.txt")

	return cmd
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	meeting, err := requireMeeting()
	if err != nil {
		return err
	}

	sess, err := loadPipeline()
	if err != nil {
		return err
	}
	defer sess.Close()

	mediaPath := args[0]
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Transcribing %s...\n", filepath.Base(mediaPath))
	}

	transcript, err := sess.client.Transcribe(mediaPath, sess.cfg.GenerationTimeout)
	if err != nil {
		return fmt.Errorf("transcribing %s: %w", mediaPath, err)
	}

	if transcribeSave {
		outPath := transcriptPath(mediaPath)
		if err := os.WriteFile(outPath, []byte(transcript), 0644); err != nil {
			return fmt.Errorf("saving transcript: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Transcript saved to %s\n", outPath)
		}
	}

	return processAndReport(cmd, sess, meeting, transcript)
}

// transcriptPath derives the sidecar transcript filename for a
// recording, e.g. standup.mp3 -> standup.transcript.txt
func transcriptPath(mediaPath string) string {
	base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
	return base + ".transcript.txt"
}
