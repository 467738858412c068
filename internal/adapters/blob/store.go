// Package blob implements a file-backed blob cache for persisted snapshots.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/define/internal/core/domain"
	"go.trai.ch/define/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.BlobCache with one file per key under a cache
// directory. Logical keys may contain separators; file names are derived by
// hashing.
type Store struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]string
}

var _ ports.BlobCache = (*Store)(nil)

// NewStore creates a blob store rooted at dir. The directory is created
// lazily on the first write.
func NewStore(dir string) *Store {
	return &Store{
		dir:   filepath.Clean(dir),
		cache: make(map[string]string),
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%016x.blob", xxhash.Sum64String(key)))
}

// Get retrieves the blob stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	if value, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return value, nil
	}
	s.mu.RUnlock()

	//nolint:gosec // Path is derived from a hashed key under a trusted dir
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrBlobNotFound
		}
		return "", zerr.With(zerr.Wrap(err, "failed to read blob"), "key", key)
	}

	value := string(data)
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return value, nil
}

// Store writes the blob under key, replacing any previous value.
func (s *Store) Store(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create blob store directory")
	}

	//nolint:gosec // Path is derived from a hashed key under a trusted dir
	if err := os.WriteFile(s.path(key), []byte(value), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write blob"), "key", key)
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return nil
}

// Delete removes the blob under key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to delete blob"), "key", key)
	}
	return nil
}
