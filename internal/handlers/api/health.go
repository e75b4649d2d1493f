package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"wikifreq/internal/cache"
	"wikifreq/internal/config"
	"wikifreq/internal/models"
)

// HealthHandler reports service liveness and cache-store reachability.
type HealthHandler struct {
	cfg   *config.Config
	store cache.Store
}

// NewHealthHandler creates the handler.
func NewHealthHandler(cfg *config.Config, store cache.Store) *HealthHandler {
	return &HealthHandler{cfg: cfg, store: store}
}

// Get handles GET /health. The cache store is pinged on every call; an
// unreachable store turns the response into a 503.
func (h *HealthHandler) Get(c fiber.Ctx) error {
	if err := h.store.Ping(c.Context()); err != nil {
		slog.Warn("health check: cache store unreachable", "backend", h.cfg.CacheBackend, "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "cache store unreachable")
	}
	return jsonSuccess(c, models.HealthResponse{
		Status:       "ok",
		CacheBackend: h.cfg.CacheBackend,
	})
}
