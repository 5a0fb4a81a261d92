package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"rootedweb/lbs-invoice/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	// Directories are not files
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	// Existing directory is fine
	assert.NoError(t, fileutils.EnsureDirectoryExists(newDir))
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "state.json")
	require.NoError(t, os.WriteFile(testFile, []byte(`{"report_date":"March 2024"}`), 0600))

	data, err := fileutils.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, `{"report_date":"March 2024"}`, string(data))

	_, err = fileutils.ReadFile(filepath.Join(tmpDir, "missing.json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestWriteFileAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "generated", "LBS_Invoice_Report_March 2024.pdf")

	require.NoError(t, fileutils.WriteFileAtomic(target, []byte("%PDF-1.3"), 0o644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	// Overwrite in place
	require.NoError(t, fileutils.WriteFileAtomic(target, []byte("%PDF-1.4"), 0o644))
	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteFileAtomic_FailureLeavesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	// The target is an existing directory, so the final rename fails.
	target := filepath.Join(tmpDir, "report.pdf")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o750))

	err := fileutils.WriteFileAtomic(target, []byte("data"), 0o644)
	assert.Error(t, err)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.pdf", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestRemoveIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "download.pdf")
	require.NoError(t, os.WriteFile(testFile, []byte("pdf"), 0600))

	require.NoError(t, fileutils.RemoveIfExists(testFile))
	assert.False(t, fileutils.FileExists(testFile))

	assert.NoError(t, fileutils.RemoveIfExists(testFile))
}
