// Package cache persists computed frequency mappings keyed by category.
// Backends sit behind the Store interface so the file-backed default can be
// swapped for sqlite or redis without touching the aggregation pipeline.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wikifreq/internal/textstats"
	"wikifreq/internal/validation"
)

// ErrNotFound reports a cache miss. Malformed records are misses too, never
// faults.
var ErrNotFound = errors.New("cache record not found")

// Record is the persisted form of a frequency mapping.
type Record struct {
	Category   string         `json:"category"`
	CreatedAt  int64          `json:"created_at"`
	TotalWords int            `json:"total_words"`
	Counts     map[string]int `json:"counts"`
}

// NewRecord builds a record for a freshly computed mapping, stamping the
// normalized category name and creation time.
func NewRecord(category string, counts map[string]int) *Record {
	return &Record{
		Category:   validation.NormalizeCategory(category),
		CreatedAt:  time.Now().Unix(),
		TotalWords: textstats.TotalWords(counts),
		Counts:     counts,
	}
}

// Store is a key-value cache of frequency records. Load returns ErrNotFound
// on a miss; Save overwrites any existing record for the category wholesale.
// Ping reports whether the backing storage is reachable.
type Store interface {
	Load(ctx context.Context, category string) (*Record, error)
	Save(ctx context.Context, category string, rec *Record) error
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options select and configure a store backend.
type Options struct {
	Backend    string
	Dir        string // file backend
	SQLitePath string // sqlite backend
	RedisURL   string // redis backend
}

// Open constructs the configured store backend.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := NewSQLiteStore(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendRedis:
		s, err := NewRedisStore(opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
}
