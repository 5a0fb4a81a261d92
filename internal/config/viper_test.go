package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no stray config.yaml is
// picked up, and restores the working directory afterwards.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(original))
	})
	t.Setenv("HOME", dir)
	return dir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "storage/logos/_RL_Primary_Red.png", config.Report.LogoPath)
	assert.Equal(t, "storage/generated", config.Report.OutputDir)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, 2*time.Hour, config.Server.SessionTTL)
	assert.Equal(t, int64(10), config.Server.MaxUploadMB)
	assert.Equal(t, 5, config.Server.RateLimitBurst)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	chdirTemp(t)

	t.Setenv("LBS_LOG_LEVEL", "DEBUG")
	t.Setenv("LBS_LOG_FORMAT", "json")
	t.Setenv("LBS_REPORT_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("LBS_SERVER_ADDR", ":9090")
	t.Setenv("LBS_SERVER_MAX_UPLOAD_MB", "25")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "/tmp/reports", config.Report.OutputDir)
	assert.Equal(t, ":9090", config.Server.Addr)
	assert.Equal(t, int64(25), config.Server.MaxUploadMB)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	content := `
log:
  level: warn
report:
  logo_path: assets/logo.png
server:
  session_ttl: 30m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "assets/logo.png", config.Report.LogoPath)
	assert.Equal(t, 30*time.Minute, config.Server.SessionTTL)
}

func TestInitializeConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		errMsg string
	}{
		{"bad log format", "LBS_LOG_FORMAT", "xml", "Format"},
		{"bad log level", "LBS_LOG_LEVEL", "loud", "Level"},
		{"upload limit too large", "LBS_SERVER_MAX_UPLOAD_MB", "500", "MaxUploadMB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.value)

			_, err := InitializeConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("LBS_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("LBS_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("LBS_TEST_MISSING", "fallback"))
}
