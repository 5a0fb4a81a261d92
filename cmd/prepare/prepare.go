// Package prepare implements the prepare command: parse and aggregate a
// workbook, then save the report for offline review.
package prepare

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rootedweb/lbs-invoice/cmd/common"
	"rootedweb/lbs-invoice/cmd/root"
	"rootedweb/lbs-invoice/internal/container"
	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/session"
)

// Cmd represents the prepare command
var Cmd = &cobra.Command{
	Use:   "prepare",
	Short: "Aggregate a workbook and save the report state",
	Long: `Parse the input workbook, aggregate it into sections and projects, and save
the result as a JSON state file. The state file can be listed with "lines"
and rendered later with "generate".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(root.AppContainer, root.SharedFlags.Input, root.SharedFlags.Output, cmd.OutOrStdout())
	},
}

// Run writes the state file for input to output, defaulting to
// <input>.state.json.
func Run(c *container.Container, input, output string, out io.Writer) error {
	report, err := common.LoadReport(c, input)
	if err != nil {
		return err
	}

	if output == "" {
		output = common.DefaultStatePath(input)
	}
	if err := session.WriteStateFile(output, report); err != nil {
		return fmt.Errorf("error saving state file: %w", err)
	}

	c.GetLogger().WithFields(
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldPeriod, report.Period),
	).Info("Report state saved")

	_, err = fmt.Fprintf(out, "%s: %d sections, %d lines -> %s\n",
		report.Period, len(report.Sections), report.LineCount(), output)
	return err
}
