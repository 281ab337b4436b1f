// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// errors.go - Provider error taxonomy
//
// The client classifies failures; it never retries. Each error carries enough
// detail for the API layer to pick an HTTP status and offer the manual-entry
// fallback. 5xx and network failures are transient and safe for the caller to
// retry later; 4xx (other than 404, which maps to a nil volume) are not.
package books

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotConfigured indicates the provider API key is missing. Surfaced at
// call time so a misconfigured deployment fails requests, not startup.
var ErrNotConfigured = errors.New("books: provider API key is not configured")

// RateLimitError indicates the outbound quota window is exhausted.
type RateLimitError struct {
	// RetryAfter is the time until the quota window resets.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("books: provider quota exhausted, retry after %s", e.RetryAfter)
}

// ProviderError indicates a non-2xx response from the provider.
type ProviderError struct {
	StatusCode int
	Status     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("books: provider returned %s", e.Status)
}

// Transient reports whether the failure is a provider-side fault that is
// safe to retry later.
func (e *ProviderError) Transient() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// NetworkError indicates the HTTP request itself failed before a status code
// was received. Always transient.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("books: provider request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err is a quota denial.
func IsRateLimited(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}

// IsTransient reports whether err is safe for the caller to retry later:
// a network failure or a 5xx provider response.
func IsTransient(err error) bool {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Transient()
}
