// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package models holds the wire types shared between the API layer and its
// callers: the response envelope, pagination metadata, and the review
// documents served by search.
package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints.
//
// Status is "success" or "error". Data carries the payload on success;
// Error carries structured details on failure.
//
//	{
//	  "status": "success",
//	  "data": {"books": [...]},
//	  "metadata": {"timestamp": "2026-08-30T12:00:00Z", "cached": true}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a structured error payload.
//
// Common codes: VALIDATION_ERROR, NOT_FOUND, RATE_LIMIT_EXCEEDED,
// PROVIDER_ERROR, PROVIDER_UNAVAILABLE, NOT_CONFIGURED, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`

	// Fallback hints the client at a degraded path, e.g. "manual entry
	// available" when the metadata provider is unreachable.
	Fallback string `json:"fallback,omitempty"`
}

// PaginationMeta describes a result page.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	PageSize    int  `json:"page_size"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// NewPaginationMeta computes page arithmetic from total item count and the
// zero-based start index the provider-style APIs use.
func NewPaginationMeta(totalItems, startIndex, pageSize int) PaginationMeta {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (totalItems + pageSize - 1) / pageSize
	currentPage := startIndex/pageSize + 1

	return PaginationMeta{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PageSize:    pageSize,
		HasNextPage: currentPage < totalPages,
		HasPrevPage: currentPage > 1 && totalItems > 0,
	}
}
