// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/shelfmark/internal/metrics"
	"github.com/tomtom215/shelfmark/internal/models"
	"github.com/tomtom215/shelfmark/internal/relevance"
)

// searchRequest carries the parsed review-search parameters.
type searchRequest struct {
	Query  string
	Tags   []string
	Status string `validate:"omitempty,oneof=reading read to-read abandoned"`
	Page   int    `validate:"min=1"`
	Limit  int    `validate:"min=1"`
	Sort   string `validate:"omitempty,oneof=relevance newest"`
}

// ReviewsSearch handles GET /api/v1/search. Result pages are cached under a
// canonical key, so parameter order, query case, and elided defaults never
// produce duplicate cache entries.
func (h *Handler) ReviewsSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := h.parseSearchRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if req.Limit > h.cfg.Search.MaxPageSize {
		req.Limit = h.cfg.Search.MaxPageSize
	}

	key := relevance.BuildCacheKey(relevance.SearchKeyParams{
		Query:  req.Query,
		Tags:   req.Tags,
		Status: req.Status,
		Page:   req.Page,
		Limit:  req.Limit,
		Sort:   req.Sort,
	})

	if page, ok := h.searchCache.Get(key); ok {
		metrics.RecordCacheAccess("review_search", true)
		respondSuccess(w, http.StatusOK, page, true, start)
		return
	}
	metrics.RecordCacheAccess("review_search", false)

	candidates, err := h.reviews.ListReviews(r.Context(), req.Status, req.Tags)
	if err != nil {
		respondError(w, http.StatusInternalServerError, &models.APIError{
			Code:    "INTERNAL_ERROR",
			Message: "failed to load reviews",
		}, err)
		return
	}

	page := h.buildSearchPage(candidates, req)
	h.searchCache.SetWithTTL(key, page, h.cfg.Search.CacheTTL)

	respondSuccess(w, http.StatusOK, page, false, start)
}

func (h *Handler) parseSearchRequest(r *http.Request) searchRequest {
	q := r.URL.Query()

	var tags []string
	for _, raw := range q["tags"] {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	return searchRequest{
		Query:  q.Get("q"),
		Tags:   tags,
		Status: q.Get("status"),
		Page:   getIntParam(r, "page", relevance.DefaultPage),
		Limit:  getIntParam(r, "limit", h.cfg.Search.DefaultPageSize),
		Sort:   q.Get("sort"),
	}
}

// buildSearchPage scores, orders, and paginates the candidate reviews.
func (h *Handler) buildSearchPage(candidates []models.Review, req searchRequest) *models.SearchPage {
	scoreStart := time.Now()
	metrics.SearchQueries.Inc()
	defer func() { metrics.SearchDuration.Observe(time.Since(scoreStart).Seconds()) }()

	hasQuery := strings.TrimSpace(req.Query) != ""

	hits := make([]models.SearchHit, 0, len(candidates))
	for _, review := range candidates {
		hit := models.SearchHit{Review: review}

		if hasQuery {
			hit.Score = relevance.Score(map[string]string{
				relevance.FieldTitle:   review.Title,
				relevance.FieldAuthor:  review.Author,
				relevance.FieldExcerpt: review.Excerpt,
				relevance.FieldContent: review.Content,
			}, req.Query)
			if hit.Score == 0 {
				continue
			}
			hit.Title = relevance.Highlight(review.Title, req.Query)
			hit.Snippets = relevance.ExtractSnippets(review.Content, req.Query, h.cfg.Search.SnippetLength)
		}

		hits = append(hits, hit)
	}

	switch {
	case req.Sort == "relevance" && hasQuery:
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	default:
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].Review.CreatedAt.After(hits[j].Review.CreatedAt)
		})
	}

	total := len(hits)
	startIdx := (req.Page - 1) * req.Limit
	endIdx := startIdx + req.Limit
	if startIdx > total {
		startIdx = total
	}
	if endIdx > total {
		endIdx = total
	}

	return &models.SearchPage{
		Hits:       hits[startIdx:endIdx],
		Pagination: models.NewPaginationMeta(total, startIdx, req.Limit),
	}
}
