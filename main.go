package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"rootedweb/lbs-invoice/cmd/generate"
	"rootedweb/lbs-invoice/cmd/lines"
	"rootedweb/lbs-invoice/cmd/prepare"
	"rootedweb/lbs-invoice/cmd/root"
	"rootedweb/lbs-invoice/cmd/serve"
)

func init() {
	// Environment first so LBS_* overrides are visible to viper.
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(prepare.Cmd)
	root.Cmd.AddCommand(lines.Cmd)
	root.Cmd.AddCommand(generate.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
