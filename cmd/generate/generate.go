// Package generate implements the generate command: render the PDF report
// from a workbook or a saved state file.
package generate

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rootedweb/lbs-invoice/cmd/common"
	"rootedweb/lbs-invoice/cmd/root"
	"rootedweb/lbs-invoice/internal/annotations"
	"rootedweb/lbs-invoice/internal/container"
)

var annotationsFile string

// Cmd represents the generate command
var Cmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the PDF invoice report",
	Long: `Render the invoice report for a workbook or a state file written by
"prepare". Review comments are read from --annotations (.csv, .yaml or .json)
and keyed by the line IDs shown by "lines".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.AppContainer, Options{
			Input:       root.SharedFlags.Input,
			OutputDir:   root.SharedFlags.Output,
			Annotations: annotationsFile,
		}, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&annotationsFile, "annotations", "a", "", "Review comments file (.csv, .yaml, .json)")
}

// Options configures a generate run.
type Options struct {
	Input       string
	OutputDir   string
	Annotations string
}

// Run renders the report and prints the path of the written PDF.
func Run(ctx context.Context, c *container.Container, opts Options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := common.LoadReport(c, opts.Input)
	if err != nil {
		return err
	}

	notes, err := annotations.Load(opts.Annotations)
	if err != nil {
		return fmt.Errorf("error loading annotations: %w", err)
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = c.GetConfig().Report.OutputDir
	}

	path, err := c.GetGenerator().Generate(ctx, report, notes, dir)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, path)
	return err
}
