package ingestion

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildZip returns a ZIP archive with the given entries. Names ending in "/"
// become directories.
func buildZip(t *testing.T, entries map[string]string, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if content, ok := entries[name]; ok {
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExpandArchive(t *testing.T) {
	data := buildZip(t,
		map[string]string{
			"batch/alice.txt":        "Alice Smith",
			"batch/bob.pdf":          "%PDF-fake",
			"batch/photo.png":        "png",
			"__MACOSX/batch/._a.txt": "junk",
		},
		[]string{"batch/", "batch/alice.txt", "batch/photo.png", "batch/bob.pdf", "__MACOSX/batch/._a.txt"},
	)

	reg := NewRegistry()
	sources, err := ExpandArchive("upload.zip", data, reg.Supports)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "batch/alice.txt", sources[0].Name)
	assert.Equal(t, "Alice Smith", string(sources[0].Data))
	assert.Equal(t, "upload.zip!batch/alice.txt", sources[0].Path)
	assert.Equal(t, "batch/bob.pdf", sources[1].Name)
}

func TestExpandArchive_NotAZip(t *testing.T) {
	_, err := ExpandArchive("bad.zip", []byte("nope"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.zip")
}

func TestIsArchive(t *testing.T) {
	assert.True(t, IsArchive("a.zip"))
	assert.True(t, IsArchive("A.ZIP"))
	assert.False(t, IsArchive("a.pdf"))
}

func TestCollector_CollectPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("B"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("A"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.png"), []byte("C"), 0o644))
	zipData := buildZip(t, map[string]string{"z1.txt": "Z1", "z2.doc": "Z2"}, []string{"z1.txt", "z2.doc"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "d.zip"), zipData, 0o644))

	c := NewCollector(NewRegistry(), nil)
	sources, skipped, err := c.CollectPaths([]string{dir})
	require.NoError(t, err)

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"a.pdf", "b.txt", "z1.txt"}, names)
	assert.Len(t, skipped, 2)
}

func TestCollector_CollectPaths_MissingPath(t *testing.T) {
	c := NewCollector(NewRegistry(), nil)
	_, _, err := c.CollectPaths([]string{"/nonexistent/dir"})
	assert.Error(t, err)
}

func TestCollector_CollectUpload(t *testing.T) {
	c := NewCollector(NewRegistry(), nil)

	sources, skipped, err := c.CollectUpload("cv.txt", []byte("hello"))
	require.NoError(t, err)
	assert.Len(t, sources, 1)
	assert.Empty(t, skipped)

	sources, skipped, err = c.CollectUpload("cv.exe", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, sources)
	assert.Equal(t, []string{"cv.exe"}, skipped)

	zipData := buildZip(t, map[string]string{"one.pdf": "1", "two.pdf": "2"}, []string{"one.pdf", "two.pdf"})
	sources, _, err = c.CollectUpload("batch.zip", zipData)
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}
