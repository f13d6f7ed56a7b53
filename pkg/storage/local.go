package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes resume files to a directory served as a static path.
// Writes go to a temp file first and are renamed into place so a failed
// upload never leaves a partial file behind.
type LocalStore struct {
	dir     string
	baseURL string
	maxSize int64
}

func NewLocalStore(dir, baseURL string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Save stores the upload under a unique name derived from the original
// extension and returns the stored filename and retrieval URL.
func (s *LocalStore) Save(originalName string, r io.Reader) (filename, url string, err error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	filename = uuid.NewString() + ext

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", "", fmt.Errorf("storage: temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	limited := io.LimitReader(r, s.maxSize+1)
	n, err := io.Copy(tmp, limited)
	if err != nil {
		cleanup()
		return "", "", fmt.Errorf("storage: write: %w", err)
	}
	if n > s.maxSize {
		cleanup()
		return "", "", fmt.Errorf("storage: file exceeds %d bytes", s.maxSize)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", "", fmt.Errorf("storage: close: %w", err)
	}

	dest := filepath.Join(s.dir, filename)
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", "", fmt.Errorf("storage: rename: %w", err)
	}

	return filename, s.baseURL + "/" + filename, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *LocalStore) Remove(filename string) error {
	// Reject path traversal in stored names.
	if filename == "" || filename != filepath.Base(filename) {
		return fmt.Errorf("storage: invalid filename %q", filename)
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory backing the store, for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}
