package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wikifreq/internal/aggregate"
	"wikifreq/internal/cache"
	"wikifreq/internal/config"
	"wikifreq/internal/metrics"
	"wikifreq/internal/server"
	"wikifreq/internal/wiki"
)

func main() {
	cfg := config.Load()
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	yamlCfg.Apply(cfg)

	if cfg.IsDev() {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	store, err := cache.Open(cache.Options{
		Backend:    cfg.CacheBackend,
		Dir:        cfg.CacheDir,
		SQLitePath: cfg.SQLitePath,
		RedisURL:   cfg.RedisURL,
	})
	if err != nil {
		log.Fatalf("Failed to open cache store: %v", err)
	}
	defer store.Close()

	metrics.Init()

	client := wiki.NewClient(cfg.APIEndpoint, cfg.UserAgent)
	agg := aggregate.New(client, store)

	srv := server.New(cfg)
	srv.RegisterRoutes(agg, store)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s (cache backend: %s)", cfg.ServerAddr, cfg.CacheBackend)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
