package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wikifreq/internal/cache"
	"wikifreq/internal/handlers/api"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(provider api.FrequencyProvider, store cache.Store) {
	wordFreqHandler := api.NewWordFreqHandler(provider, s.Cfg)
	healthHandler := api.NewHealthHandler(s.Cfg, store)

	s.App.Get("/api/wordfreq", wordFreqHandler.Get)
	s.App.Get("/health", healthHandler.Get)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
