package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/BelalFares97/MultiTool/pkg/blocks"
	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <narrative.md>",
		Short: "Show how a narrative is split into blocks",
		Long: `Inspect interprets a markdown narrative the way the risk report does
and prints one row per block: headings, paragraphs, bullets, tables and blank
lines. Useful for checking that a table was recognized before rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspectCmd,
	}
}

func runInspectCmd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return rerrors.InputWrap(err, rerrors.ErrInputReadFailed, "failed to read narrative").
			WithContext("path", args[0])
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("#", "Kind", "Level", "Bold", "Text")
	for i, b := range blocks.Parse(string(data)) {
		level := ""
		if b.Kind == blocks.KindHeading {
			level = strconv.Itoa(b.Level)
		}
		if err := table.Append([]string{
			strconv.Itoa(i + 1),
			b.Kind.String(),
			level,
			strconv.FormatBool(b.Bold),
			summarize(b),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// summarize is the Text column: the block text, or the shape of a table.
func summarize(b blocks.Block) string {
	if b.Kind == blocks.KindTable && b.Table != nil {
		return fmt.Sprintf("%s (%d rows)", strings.Join(b.Table.Header, " | "), len(b.Table.Body))
	}
	const limit = 60
	if len(b.Text) > limit {
		return b.Text[:limit-3] + "..."
	}
	return b.Text
}
