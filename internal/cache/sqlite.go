package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"wikifreq/internal/validation"
)

// SQLiteStore persists frequency records in a single-file sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS frequency_records (
			key         TEXT PRIMARY KEY,
			category    TEXT NOT NULL,
			created_at  INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			counts      TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing cache schema: %w", err)
	}
	return nil
}

// Load reads the record for a category. Absent rows and rows whose counts
// column no longer parses both report ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context, category string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT category, created_at, total_words, counts
		FROM frequency_records WHERE key = ?
	`, validation.CacheKey(category))

	var rec Record
	var countsJSON string
	if err := row.Scan(&rec.Category, &rec.CreatedAt, &rec.TotalWords, &countsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading cache record: %w", err)
	}

	if err := json.Unmarshal([]byte(countsJSON), &rec.Counts); err != nil {
		return nil, ErrNotFound
	}
	if rec.Counts == nil {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Save upserts the record for a category in one statement.
func (s *SQLiteStore) Save(ctx context.Context, category string, rec *Record) error {
	countsJSON, err := json.Marshal(rec.Counts)
	if err != nil {
		return fmt.Errorf("encoding cache record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO frequency_records (key, category, created_at, total_words, counts)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			category = excluded.category,
			created_at = excluded.created_at,
			total_words = excluded.total_words,
			counts = excluded.counts
	`, validation.CacheKey(category), rec.Category, rec.CreatedAt, rec.TotalWords, string(countsJSON))
	if err != nil {
		return fmt.Errorf("writing cache record: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
