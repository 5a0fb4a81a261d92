// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"rootedweb/lbs-invoice/internal/config"
	"rootedweb/lbs-invoice/internal/container"
	"rootedweb/lbs-invoice/internal/logging"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input     string
	Output    string
	LogLevel  string
	LogFormat string
	LogoPath  string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer is wired in PersistentPreRunE
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "lbs-invoice",
		Short: "Turn a billing spreadsheet into an annotated PDF invoice report.",
		Long: `lbs-invoice reads a billing workbook (.xlsx, .xlsm or .csv), groups its rows by
campaign segment and project, and renders the LBS invoice report as a PDF.

Review comments can be collected in the browser (serve) or offline
(prepare, lines, then generate with an annotations file).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			Log.Info("Welcome to lbs-invoice!")
			Log.Info("Use --help to see available commands")
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			ApplyFlags(cfg)

			Log = config.NewLogger(cfg)
			c, err := container.NewContainerWithLogger(cfg, Log)
			if err != nil {
				return fmt.Errorf("error initializing application: %w", err)
			}
			AppContainer = c
			return nil
		},
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input workbook (.xlsx, .xlsm, .csv) or state file (.json)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (overrides LBS_LOG_LEVEL)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format: text or json")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogoPath, "logo", "", "Logo image used for the header and accent colour")
}

// ApplyFlags overlays command-line flags on the loaded configuration.
func ApplyFlags(cfg *config.Config) {
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if SharedFlags.LogoPath != "" {
		cfg.Report.LogoPath = SharedFlags.LogoPath
	}
}
