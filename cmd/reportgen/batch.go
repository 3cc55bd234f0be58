package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BelalFares97/MultiTool/pkg/batch"
	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
	"github.com/BelalFares97/MultiTool/pkg/progress"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <jobs.yaml>",
		Short: "Render many reports concurrently",
		Long: `Render every job of a YAML batch file. Each job names its kind
(meeting or risk) and input file; paths are relative to the batch file.

  output: reports
  concurrency: 4
  jobs:
    - kind: meeting
      input: standup.json
      recording: {name: standup.mp3, length: "12:34"}
    - kind: risk
      input: applicant.yaml
      narrative: findings.md

A failed job does not stop the others. The command fails if any job failed.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	cmd.Flags().StringP("output", "o", "", "Output directory (overrides the batch file)")
	cmd.Flags().IntP("jobs", "j", 0, "Concurrent renders (overrides the batch file)")
	return cmd
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	f, err := batch.LoadFile(args[0])
	if err != nil {
		return err
	}

	dir := e.cfg.Output.Dir
	if f.Output != "" {
		dir = f.Output
	}
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		dir = o
	}
	workers := e.cfg.Output.Concurrency
	if f.Concurrency > 0 {
		workers = f.Concurrency
	}
	if j, _ := cmd.Flags().GetInt("jobs"); j > 0 {
		workers = j
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bar := progress.New(progress.Config{
		Total:   len(f.Jobs),
		Message: "Rendering",
		Writer:  cmd.ErrOrStderr(),
	})
	bar.Start()
	results, err := batch.Run(ctx, e.renderer, f.Jobs, batch.Options{
		Dir:         dir,
		Concurrency: workers,
		Logger:      e.log,
		OnDone: func(r batch.Result) {
			bar.Done(filepath.Base(r.Job.Input), r.Err)
		},
	})
	bar.Finish()
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", r.Path)
		}
	}
	if n := batch.Failed(results); n > 0 {
		return rerrors.New(rerrors.ErrRenderFailed, rerrors.CategoryRender,
			fmt.Sprintf("%d of %d jobs failed", n, len(results)))
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
