// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package main is the entry point for the Shelfmark server.
//
// Shelfmark is a self-hosted personal book review platform. The server
// exposes a small JSON API: book metadata lookup backed by the Google Books
// API (cached, quota-guarded, behind a circuit breaker) and full-text search
// over the owner's reviews with relevance ranking, highlighting, and
// snippets.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, config.yaml, and
//     environment variables (Koanf v2)
//  2. Review store: in-memory store, optionally seeded from a JSON file
//  3. Provider client: Google Books client with TTL caches, a fixed-window
//     quota limiter, and a gobreaker circuit breaker
//  4. Supervisor tree: suture v4 tree owning the HTTP server and the cache
//     janitor
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (BOOKS_API_KEY, HTTP_PORT, LOG_LEVEL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// The provider API key is optional. Without one, metadata lookups answer
// with a configuration error and the client falls back to manual entry;
// review search is unaffected.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests to complete
// (10s timeout), and stops the background janitor.
//
// # Example Usage
//
// Development, no provider key:
//
//	./shelfmark
//
// With Google Books metadata lookup:
//
//	export BOOKS_API_KEY=your-google-books-key
//	export REVIEWS_DATA_FILE=/var/lib/shelfmark/reviews.json
//	./shelfmark
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/shelfmark/internal/api"
	"github.com/tomtom215/shelfmark/internal/books"
	"github.com/tomtom215/shelfmark/internal/cache"
	"github.com/tomtom215/shelfmark/internal/config"
	"github.com/tomtom215/shelfmark/internal/logging"
	"github.com/tomtom215/shelfmark/internal/models"
	"github.com/tomtom215/shelfmark/internal/ratelimit"
	"github.com/tomtom215/shelfmark/internal/reviews"
	"github.com/tomtom215/shelfmark/internal/supervisor"
	"github.com/tomtom215/shelfmark/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Shelfmark with supervisor tree")

	if cfg.Books.APIKey != "" {
		logging.Info().
			Int("quota_requests", cfg.Books.RateLimitRequests).
			Dur("quota_window", cfg.Books.RateLimitWindow).
			Msg("Book metadata provider configured")
	} else {
		logging.Warn().Msg("No provider API key configured - metadata lookups will fall back to manual entry")
	}

	// Review store, optionally seeded from disk
	store, err := reviews.NewFromFile(cfg.Reviews.DataFile)
	if err != nil {
		logging.Fatal().Err(err).Str("file", cfg.Reviews.DataFile).Msg("Failed to load review data")
	}
	logging.Info().Int("reviews", store.Len()).Msg("Review store initialized")

	// Provider client: TTL caches and the outbound quota limiter are shared
	// with the janitor below, which sweeps their expired entries.
	searchCache := cache.New[*books.VolumeList](cfg.Books.SearchCacheTTL)
	volumeCache := cache.New[*books.Volume](cfg.Books.VolumeCacheTTL)
	limiter := ratelimit.New(cfg.Books.RateLimitRequests, cfg.Books.RateLimitWindow)

	client := books.NewClient(books.Config{
		BaseURL: cfg.Books.BaseURL,
		APIKey:  cfg.Books.APIKey,
		Timeout: cfg.Books.Timeout,
	}, searchCache, volumeCache, limiter)
	breakerClient := books.NewCircuitBreakerClient(client)

	// Review search result cache
	reviewSearchCache := cache.New[*models.SearchPage](cfg.Search.CacheTTL)

	handler := api.NewHandler(breakerClient, store, reviewSearchCache, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	// Bridge zerolog to slog for sutureslog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddMaintenanceService(services.NewJanitorService([]services.SweepTarget{
		{Name: "book_search", Store: searchCache},
		{Name: "book_volume", Store: volumeCache},
		{Name: "review_search", Store: reviewSearchCache},
		{Name: "provider_quota", Store: limiter},
	}, cfg.Books.CleanupInterval, logging.Logger()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	// Persist review mutations made while running
	if cfg.Reviews.DataFile != "" {
		if err := store.Save(cfg.Reviews.DataFile); err != nil {
			logging.Error().Err(err).Msg("Failed to save review data")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
