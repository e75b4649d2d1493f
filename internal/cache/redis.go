package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/storage/redis/v3"

	"wikifreq/internal/validation"
)

// RedisStore keeps frequency records in redis, one JSON value per category
// key. Records never expire; staleness stays caller-controlled via refresh.
type RedisStore struct {
	storage *redis.Storage
}

// NewRedisStore connects using a redis URL (redis://host:port/db).
func NewRedisStore(redisURL string) (*RedisStore, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis backend requires a redis URL")
	}
	return &RedisStore{
		storage: redis.New(redis.Config{URL: redisURL}),
	}, nil
}

func redisKey(category string) string {
	return "wikifreq:category:" + validation.CacheKey(category)
}

// Load reads the record for a category. Missing keys and values that no
// longer parse both report ErrNotFound.
func (s *RedisStore) Load(_ context.Context, category string) (*Record, error) {
	data, err := s.storage.Get(redisKey(category))
	if err != nil {
		return nil, fmt.Errorf("reading cache record: %w", err)
	}
	if len(data) == 0 {
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

// Save overwrites the record for a category.
func (s *RedisStore) Save(_ context.Context, category string, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding cache record: %w", err)
	}
	if err := s.storage.Set(redisKey(category), data, 0); err != nil {
		return fmt.Errorf("writing cache record: %w", err)
	}
	return nil
}

// Ping issues a throwaway read to verify the connection. A missing key is
// fine; only transport errors count.
func (s *RedisStore) Ping(_ context.Context) error {
	if _, err := s.storage.Get("wikifreq:health"); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.storage.Close()
}
