package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/BelalFares97/MultiTool/pkg/batch"
	"github.com/BelalFares97/MultiTool/pkg/report"
)

// NewMeetingCmd creates the meeting command.
func NewMeetingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Render a meeting minutes report",
		Long: `Render the three-page meeting minutes report from an analysis result.

The input is JSON or YAML (by extension) with diarization, notes and
actionItems. The recording flags fill the meeting details table.

Examples:
  reportgen meeting -i analysis.json --name standup.mp3 --duration 754
  reportgen meeting -i analysis.yaml -o reports/`,
		Args: cobra.NoArgs,
		RunE: runMeetingCmd,
	}

	cmd.Flags().StringP("input", "i", "", "Analysis result file (JSON or YAML)")
	cmd.Flags().String("name", "", "Recording file name")
	cmd.Flags().String("size", "", "Recording size, e.g. \"12.4 MB\"")
	cmd.Flags().String("type", "", "Recording media type")
	cmd.Flags().String("duration", "", "Recording length in seconds or as MM:SS")
	cmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runMeetingCmd(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	var meta report.Metadata
	meta.Name, _ = cmd.Flags().GetString("name")
	meta.Size, _ = cmd.Flags().GetString("size")
	meta.Type, _ = cmd.Flags().GetString("type")
	duration, _ := cmd.Flags().GetString("duration")
	meta.Length = recordingLength(duration)

	art, err := batch.Render(e.renderer, batch.Job{Kind: batch.KindMeeting, Input: input, Recording: meta})
	if err != nil {
		return err
	}
	return save(cmd, e, art)
}

// recordingLength formats a plain number of seconds as MM:SS or HH:MM:SS and
// passes anything else through.
func recordingLength(s string) string {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return report.FormatDuration(time.Duration(secs * float64(time.Second)))
}

func save(cmd *cobra.Command, e *env, art *report.Artifact) error {
	path, err := art.Save(e.outputDir(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages, sha256 %s)\n", path, art.PageCount(), art.ShortChecksum())
	return nil
}
