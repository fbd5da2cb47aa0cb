package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrTooLarge is returned when an upload exceeds the store's size limit
var ErrTooLarge = fmt.Errorf("upload exceeds size limit")

// LocalStore is a filesystem-backed BlobStore. Objects are written under the
// root directory with generated names; the original filename only contributes
// its extension.
type LocalStore struct {
	root     string
	maxBytes int64
}

// NewLocalStore creates a filesystem blob store rooted at dir. maxBytes <= 0
// disables the size limit.
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{root: dir, maxBytes: maxBytes}, nil
}

// Store writes the reader's content to a new file and returns its path token
func (s *LocalStore) Store(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext

	f, err := os.CreateTemp(s.root, "upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := f.Name()

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}

	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		os.Remove(tmpName)
		return "", ErrTooLarge
	}

	dst := filepath.Join(s.root, name)
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("finalize blob: %w", err)
	}

	return name, nil
}

// Open returns a reader over the stored object
func (s *LocalStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Delete removes the stored object. Deleting a missing object is not an error.
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve rejects path tokens that would escape the root directory
func (s *LocalStore) resolve(path string) (string, error) {
	if path == "" || strings.Contains(path, "..") || strings.ContainsRune(path, os.PathSeparator) {
		return "", fmt.Errorf("invalid blob path %q", path)
	}
	return filepath.Join(s.root, path), nil
}
