package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Config holds all application configuration loaded from environment
// variables, optionally overlaid by a YAML file.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr  string
	CORSOrigins string // Comma-separated allowed origins

	// Remote wiki API
	APIEndpoint string
	UserAgent   string

	// Cache
	CacheBackend string // "file", "sqlite", or "redis"
	CacheDir     string
	SQLitePath   string
	RedisURL     string

	// Aggregation defaults
	DefaultTopN     int           // default top-N for the query surface
	PolitenessDelay time.Duration // default pause between outer fetch batches
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	cacheDir := getEnv("WIKIFREQ_CACHE_DIR", filepath.Join(xdg.CacheHome, "wikifreq"))

	return &Config{
		Env:             getEnv("ENV", "development"),
		ServerAddr:      getEnv("WIKIFREQ_SERVER_ADDR", ":8080"),
		CORSOrigins:     getEnv("WIKIFREQ_CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"),
		APIEndpoint:     getEnv("WIKIFREQ_API_ENDPOINT", ""),
		UserAgent:       getEnv("WIKIFREQ_USER_AGENT", ""),
		CacheBackend:    getEnv("WIKIFREQ_CACHE_BACKEND", "file"),
		CacheDir:        cacheDir,
		SQLitePath:      getEnv("WIKIFREQ_SQLITE_PATH", filepath.Join(cacheDir, "wikifreq.db")),
		RedisURL:        getEnv("WIKIFREQ_REDIS_URL", ""),
		DefaultTopN:     getEnvInt("WIKIFREQ_DEFAULT_TOP", 200),
		PolitenessDelay: getEnvDuration("WIKIFREQ_POLITENESS_DELAY", 0),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
