package main

import (
	"github.com/spf13/cobra"

	"github.com/BelalFares97/MultiTool/pkg/batch"
)

// NewRiskCmd creates the risk command.
func NewRiskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Render a credit risk assessment report",
		Long: `Render the credit risk assessment from a form, a prediction and an
optional narrative.

The input is JSON or YAML (by extension) with form, prediction, narrative and
org keys. --narrative attaches a markdown file as a successful narrative;
--client and --logo override the org block. The logo is a data:image URI or
a local PNG, JPEG or WebP file.

Examples:
  reportgen risk -i applicant.json
  reportgen risk -i applicant.yaml --narrative findings.md --logo logo.png`,
		Args: cobra.NoArgs,
		RunE: runRiskCmd,
	}

	cmd.Flags().StringP("input", "i", "", "Risk input file (JSON or YAML)")
	cmd.Flags().String("narrative", "", "Markdown narrative file")
	cmd.Flags().String("client", "", "Client institution name")
	cmd.Flags().String("logo", "", "Logo data URI or file path")
	cmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runRiskCmd(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	job := batch.Job{Kind: batch.KindRisk}
	job.Input, _ = cmd.Flags().GetString("input")
	job.Narrative, _ = cmd.Flags().GetString("narrative")
	job.Client, _ = cmd.Flags().GetString("client")
	job.Logo, _ = cmd.Flags().GetString("logo")

	art, err := batch.Render(e.renderer, job)
	if err != nil {
		return err
	}
	return save(cmd, e, art)
}
