// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package api provides the HTTP layer: Chi routing, request validation,
// error-to-status mapping, and the response envelope.
package api

import (
	"context"
	"time"

	"github.com/tomtom215/shelfmark/internal/books"
	"github.com/tomtom215/shelfmark/internal/cache"
	"github.com/tomtom215/shelfmark/internal/config"
	"github.com/tomtom215/shelfmark/internal/models"
)

// ReviewSource supplies candidate reviews for search. The persistence layer
// implements it; tests use in-memory fakes.
type ReviewSource interface {
	// ListReviews returns reviews matching the status and tag filters.
	// Empty filters match everything. Relevance ranking over the result
	// is the caller's job.
	ListReviews(ctx context.Context, status string, tags []string) ([]models.Review, error)
}

// Handler holds the dependencies of all HTTP handlers. Instances are
// injected at construction so tests can build a Handler with fakes and
// fresh caches.
type Handler struct {
	books       books.ClientInterface
	reviews     ReviewSource
	searchCache *cache.TTLCache[*models.SearchPage]
	cfg         *config.Config
	startedAt   time.Time
}

// NewHandler creates the API handler set.
func NewHandler(client books.ClientInterface, reviews ReviewSource, searchCache *cache.TTLCache[*models.SearchPage], cfg *config.Config) *Handler {
	return &Handler{
		books:       client,
		reviews:     reviews,
		searchCache: searchCache,
		cfg:         cfg,
		startedAt:   time.Now(),
	}
}
