// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shelfmark/internal/books"
	"github.com/tomtom215/shelfmark/internal/models"
)

// fallbackManualEntry hints the client that book details can be entered by
// hand when the metadata provider cannot serve them.
const fallbackManualEntry = "manual entry available"

// BooksSearch handles GET /api/v1/books/search. Query parameters mirror the
// provider's: q, max_results, start_index, order_by, print_type, filter.
func (h *Handler) BooksSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	params := books.SearchParams{
		Query:      r.URL.Query().Get("q"),
		MaxResults: getIntParam(r, "max_results", 10),
		StartIndex: getIntParam(r, "start_index", 0),
		OrderBy:    r.URL.Query().Get("order_by"),
		PrintType:  r.URL.Query().Get("print_type"),
		Filter:     r.URL.Query().Get("filter"),
	}

	if apiErr := validateRequest(&params); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	result, err := h.books.SearchBooks(r.Context(), params)
	if err != nil {
		h.respondBooksError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"books":      result.Books,
		"pagination": models.NewPaginationMeta(result.TotalItems, params.StartIndex, params.MaxResults),
	}, false, start)
}

// BooksGetByID handles GET /api/v1/books/{id}. A provider 404 maps to the
// API's NOT_FOUND, not an upstream failure.
func (h *Handler) BooksGetByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "book id is required",
		}, nil)
		return
	}

	vol, err := h.books.GetVolume(r.Context(), id)
	if err != nil {
		h.respondBooksError(w, err)
		return
	}
	if vol == nil {
		respondError(w, http.StatusNotFound, &models.APIError{
			Code:    "NOT_FOUND",
			Message: "book not found",
		}, nil)
		return
	}

	respondSuccess(w, http.StatusOK, books.Normalize(vol), false, start)
}

// respondBooksError maps the provider error taxonomy onto HTTP statuses.
// Everything the client could route around carries the manual-entry
// fallback hint.
func (h *Handler) respondBooksError(w http.ResponseWriter, err error) {
	var rle *books.RateLimitError
	if errors.As(err, &rle) {
		retryAfter := int(rle.RetryAfter.Seconds() + 0.5)
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		respondError(w, http.StatusTooManyRequests, &models.APIError{
			Code:     "RATE_LIMIT_EXCEEDED",
			Message:  "metadata provider quota exhausted",
			Details:  map[string]interface{}{"retry_after_seconds": retryAfter},
			Fallback: fallbackManualEntry,
		}, err)
		return
	}

	if errors.Is(err, books.ErrNotConfigured) {
		respondError(w, http.StatusServiceUnavailable, &models.APIError{
			Code:     "NOT_CONFIGURED",
			Message:  "metadata provider is not configured",
			Fallback: fallbackManualEntry,
		}, err)
		return
	}

	if books.IsTransient(err) {
		respondError(w, http.StatusServiceUnavailable, &models.APIError{
			Code:     "PROVIDER_UNAVAILABLE",
			Message:  "metadata provider is temporarily unavailable",
			Fallback: fallbackManualEntry,
		}, err)
		return
	}

	var pe *books.ProviderError
	if errors.As(err, &pe) {
		respondError(w, http.StatusInternalServerError, &models.APIError{
			Code:    "PROVIDER_ERROR",
			Message: "metadata provider rejected the request",
			Details: map[string]interface{}{"provider_status": pe.StatusCode},
		}, err)
		return
	}

	respondError(w, http.StatusInternalServerError, &models.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "unexpected error",
	}, err)
}
