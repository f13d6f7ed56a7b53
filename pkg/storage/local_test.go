package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/static/resumes/", 1024)
	assert.NoError(t, err)

	t.Run("stores under a fresh name keeping the extension", func(t *testing.T) {
		filename, url, err := store.Save("resume.PDF", strings.NewReader("%PDF-1.4 hello"))
		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".pdf"))
		assert.NotEqual(t, "resume.pdf", filename)
		assert.Equal(t, "/static/resumes/"+filename, url)

		data, err := os.ReadFile(filepath.Join(dir, filename))
		assert.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 hello", string(data))
	})

	t.Run("oversized upload leaves nothing behind", func(t *testing.T) {
		_, _, err := store.Save("big.pdf", strings.NewReader(strings.Repeat("x", 2048)))
		assert.Error(t, err)

		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), ".upload-"), "partial temp file left: %s", e.Name())
		}
	})
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocalStore(dir, "/static/resumes", 1024)

	filename, _, err := store.Save("cv.txt", strings.NewReader("hi"))
	assert.NoError(t, err)

	assert.NoError(t, store.Remove(filename))
	_, err = os.Stat(filepath.Join(dir, filename))
	assert.True(t, os.IsNotExist(err))

	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, store.Remove("gone.pdf"))
	})

	t.Run("path traversal is refused", func(t *testing.T) {
		assert.Error(t, store.Remove("../etc/passwd"))
		assert.Error(t, store.Remove(""))
	})
}
