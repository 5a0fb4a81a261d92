package root_test

import (
	"testing"

	"rootedweb/lbs-invoice/cmd/root"
	"rootedweb/lbs-invoice/internal/config"

	"github.com/stretchr/testify/assert"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "lbs-invoice", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "PDF invoice report")
	assert.Contains(t, root.Cmd.Long, "campaign segment and project")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	inputFlag := root.Cmd.PersistentFlags().Lookup("input")
	if assert.NotNil(t, inputFlag) {
		assert.Equal(t, "i", inputFlag.Shorthand)
	}

	outputFlag := root.Cmd.PersistentFlags().Lookup("output")
	if assert.NotNil(t, outputFlag) {
		assert.Equal(t, "o", outputFlag.Shorthand)
	}

	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("log-format"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("logo"))
}

func TestApplyFlags(t *testing.T) {
	saved := root.SharedFlags
	t.Cleanup(func() { root.SharedFlags = saved })

	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Report.LogoPath = "default.png"

	root.SharedFlags = root.CommonFlags{LogLevel: "debug", LogoPath: "brand.png"}
	root.ApplyFlags(cfg)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "brand.png", cfg.Report.LogoPath)
}
