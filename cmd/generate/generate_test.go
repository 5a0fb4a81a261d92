package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootedweb/lbs-invoice/cmd/common"
	"rootedweb/lbs-invoice/internal/config"
	"rootedweb/lbs-invoice/internal/container"
	"rootedweb/lbs-invoice/internal/fileutils"
	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/models"
	"rootedweb/lbs-invoice/internal/session"
)

func testContainer(t *testing.T) *container.Container {
	cfg := &config.Config{}
	cfg.Report.OutputDir = filepath.Join(t.TempDir(), "generated")
	cfg.Report.LogoPath = filepath.Join(t.TempDir(), "missing.png")
	cfg.Server.SessionTTL = time.Hour
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func writeCSV(t *testing.T) string {
	content := "Export\nheader\n" +
		"2024-04-02,Web,Site,Dev,Hours,,2,95,190\n" +
		"2024-04-03,Web,Site,Fonts,Expense,Font licence,1,40,40\n"
	path := filepath.Join(t.TempDir(), "april.csv")
	require.NoError(t, fileutils.WriteFileAtomic(path, []byte(content), 0o600))
	return path
}

func TestRun_FromWorkbook(t *testing.T) {
	c := testContainer(t)
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), c, Options{Input: writeCSV(t)}, &out))

	path := strings.TrimSpace(out.String())
	assert.Equal(t, filepath.Join(c.GetConfig().Report.OutputDir, "LBS_Invoice_Report_April 2024.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRun_FromStateWithAnnotations(t *testing.T) {
	c := testContainer(t)
	dir := t.TempDir()

	input := writeCSV(t)
	report, err := common.LoadReport(c, input)
	require.NoError(t, err)
	statePath := filepath.Join(dir, "april.state.json")
	require.NoError(t, session.WriteStateFile(statePath, report))

	notesPath := filepath.Join(dir, "notes.yaml")
	notes := string(models.NewLineID("Web", "Site", 0)) + ": Includes launch support\n"
	require.NoError(t, os.WriteFile(notesPath, []byte(notes), 0o600))

	var out bytes.Buffer
	outDir := filepath.Join(dir, "out")
	require.NoError(t, Run(context.Background(), c, Options{Input: statePath, OutputDir: outDir, Annotations: notesPath}, &out))
	assert.FileExists(t, filepath.Join(outDir, "LBS_Invoice_Report_April 2024.pdf"))
}

func TestRun_BadAnnotations(t *testing.T) {
	c := testContainer(t)
	err := Run(context.Background(), c, Options{Input: writeCSV(t), Annotations: "notes.txt"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading annotations")

	entries, _ := os.ReadDir(c.GetConfig().Report.OutputDir)
	assert.Empty(t, entries)
}
