// Package lines implements the lines command: list the annotatable lines of
// a report with their identifiers.
package lines

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"rootedweb/lbs-invoice/cmd/common"
	"rootedweb/lbs-invoice/cmd/root"
	"rootedweb/lbs-invoice/internal/aggregator"
	"rootedweb/lbs-invoice/internal/annotations"
	"rootedweb/lbs-invoice/internal/container"
)

var asCSV bool

// Cmd represents the lines command
var Cmd = &cobra.Command{
	Use:   "lines",
	Short: "List reviewable lines and their IDs",
	Long: `Print every line that accepts a review comment together with its line ID.
With --csv the list is written as a CSV whose comment column can be filled in
and passed to "generate --annotations".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if root.SharedFlags.Output != "" {
			f, err := os.Create(root.SharedFlags.Output)
			if err != nil {
				return fmt.Errorf("error creating output file: %w", err)
			}
			defer func() {
				_ = f.Close()
			}()
			out = f
		}
		return Run(root.AppContainer, root.SharedFlags.Input, asCSV, out)
	},
}

func init() {
	Cmd.Flags().BoolVar(&asCSV, "csv", false, "Write a review CSV instead of a table")
}

// Run lists the lines of the report built from input.
func Run(c *container.Container, input string, csv bool, out io.Writer) error {
	report, err := common.LoadReport(c, input)
	if err != nil {
		return err
	}

	lines := aggregator.Lines(report)
	if csv {
		return annotations.WriteCSV(out, lines)
	}
	return WriteTable(out, lines)
}

const maxLabelWidth = 60

// WriteTable prints lines as an aligned table.
func WriteTable(out io.Writer, lines []aggregator.ReviewLine) error {
	header := []string{"LINE ID", "SEGMENT", "PROJECT", "LINE"}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		label := l.Line.Label()
		if l.Detail != "" {
			label += " " + l.Detail
		}
		rows = append(rows, []string{
			string(l.Line.ID),
			l.Segment,
			l.Project,
			runewidth.Truncate(label, maxLabelWidth, "…"),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cells []string) error {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				padded[i] = cell
				continue
			}
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		_, err := fmt.Fprintln(out, strings.TrimRight(strings.Join(padded, "  "), " "))
		return err
	}

	if err := writeRow(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return nil
}
