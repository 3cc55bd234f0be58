package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewColorsCmd creates the colors command.
func NewColorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors <label>...",
		Short: "Show the palette color assigned to speaker labels",
		Long: `Colors prints the palette slot and color each speaker label gets in the
meeting report. Assignment depends only on the label and the configured
palette, so it is the same in every report. An empty label ("") takes the
fallback label's color.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runColorsCmd,
	}
}

func runColorsCmd(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	a := e.cfg.Assigner()

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Label", "Slot", "Color")
	for _, label := range args {
		shown := label
		if shown == "" {
			shown = "(empty -> " + a.Fallback + ")"
		}
		if err := table.Append([]string{shown, strconv.Itoa(a.Index(label)), a.ColorFor(label).Hex()}); err != nil {
			return err
		}
	}
	return table.Render()
}
