package core_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"fmm/internal/core"
	"fmm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip builds a zip archive at path with the given name->content entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestExtractor_ZipWithPayloads(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "mod.zip")
	writeZip(t, archive, map[string]string{
		"facepack.bundle":        "faces",
		"nested/kits.bundle":     "kits",
		"readme.txt":             "instructions",
		"screenshots/shot01.png": "png",
	})

	ex := core.NewExtractor()
	payloads, err := ex.Extract(archive, filepath.Join(dir, "temp"))
	require.NoError(t, err)
	require.Len(t, payloads, 2)

	names := make([]string, len(payloads))
	for i, p := range payloads {
		names[i] = filepath.Base(p)
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
	assert.ElementsMatch(t, []string{"facepack.bundle", "kits.bundle"}, names)
}

func TestExtractor_ZipWithoutPayloads(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "mod.zip")
	writeZip(t, archive, map[string]string{"readme.txt": "nothing useful"})

	ex := core.NewExtractor()
	_, err := ex.Extract(archive, filepath.Join(dir, "temp"))
	assert.ErrorIs(t, err, domain.ErrNoPayload)
}

func TestExtractor_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "mod.tar.gz")
	require.NoError(t, os.WriteFile(archive, []byte("tarball"), 0644))

	ex := core.NewExtractor()
	_, err := ex.Extract(archive, filepath.Join(dir, "temp"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedArchive)
}

func TestExtractor_CorruptZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "mod.zip")
	require.NoError(t, os.WriteFile(archive, []byte("not a zip"), 0644))

	ex := core.NewExtractor()
	_, err := ex.Extract(archive, filepath.Join(dir, "temp"))
	require.Error(t, err)

	var xerr *core.ExtractError
	require.ErrorAs(t, err, &xerr)
	assert.NotEmpty(t, xerr.Detail)
}

func TestExtractor_TempDirRecreated(t *testing.T) {
	dir := t.TempDir()
	tempDir := filepath.Join(dir, "temp")
	require.NoError(t, os.MkdirAll(tempDir, 0755))
	stale := filepath.Join(tempDir, "stale.bundle")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	archive := filepath.Join(dir, "mod.zip")
	writeZip(t, archive, map[string]string{"fresh.bundle": "new"})

	ex := core.NewExtractor()
	payloads, err := ex.Extract(archive, tempDir)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, "fresh.bundle", filepath.Base(payloads[0]))
	assert.NoFileExists(t, stale)
}

func TestExtractor_RejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, map[string]string{"../escape.bundle": "evil"})

	ex := core.NewExtractor()
	_, err := ex.Extract(archive, filepath.Join(dir, "temp"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "escape.bundle"))
}
