package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"wikifreq/internal/cache"
	"wikifreq/internal/config"
)

type stubStore struct {
	pingErr error
}

func (s *stubStore) Load(context.Context, string) (*cache.Record, error) {
	return nil, cache.ErrNotFound
}
func (s *stubStore) Save(context.Context, string, *cache.Record) error { return nil }
func (s *stubStore) Ping(context.Context) error                        { return s.pingErr }
func (s *stubStore) Close() error                                      { return nil }

func healthApp(store cache.Store) *fiber.App {
	cfg := &config.Config{CacheBackend: "file"}
	app := fiber.New()
	app.Get("/health", NewHealthHandler(cfg, store).Get)
	return app
}

func TestHealthOK(t *testing.T) {
	app := healthApp(&stubStore{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Status       string `json:"status"`
			CacheBackend string `json:"cache_backend"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Data.Status != "ok" || body.Data.CacheBackend != "file" {
		t.Errorf("body = %+v", body)
	}
}

func TestHealthStoreUnreachable(t *testing.T) {
	app := healthApp(&stubStore{pingErr: errors.New("connection refused")})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "error" || body.Error == "" {
		t.Errorf("body = %+v, want error envelope", body)
	}
}
