// Package serve implements the serve command: run the upload, review and
// download web flow.
package serve

import (
	"github.com/spf13/cobra"

	"rootedweb/lbs-invoice/cmd/root"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Serve the browser flow: upload a workbook, add optional comments per line,
generate the PDF and download it once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.AppContainer
		if addr != "" {
			c.GetConfig().Server.Addr = addr
		}
		return c.NewWebAPI().Start()
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides LBS_SERVER_ADDR)")
}
