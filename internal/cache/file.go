package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"wikifreq/internal/validation"
)

// FileStore keeps one JSON record per category under a cache directory.
// Writes go through a temporary file and an atomic rename, so readers never
// observe a half-written record. Concurrent writers for the same category
// race with last-rename-wins semantics.
type FileStore struct {
	dir string
}

// NewFileStore creates the cache directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(category string) string {
	return filepath.Join(s.dir, "category_"+validation.CacheKey(category)+".json")
}

// Load reads the record for a category. Missing, unreadable, or malformed
// files all report ErrNotFound.
func (s *FileStore) Load(_ context.Context, category string) (*Record, error) {
	data, err := os.ReadFile(s.path(category))
	if err != nil {
		return nil, ErrNotFound
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, ErrNotFound
	}
	if rec.Counts == nil {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Save serializes the record next to its final location and renames it into
// place.
func (s *FileStore) Save(_ context.Context, category string, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding cache record: %w", err)
	}

	target := s.path(category)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(target)+".tmp")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing cache record: %w", err)
	}
	return nil
}

// Ping verifies the cache directory still exists.
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("cache dir unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cache path %s is not a directory", s.dir)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
