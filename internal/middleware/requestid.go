// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package middleware provides http.HandlerFunc middleware shared across
// routes: request IDs and Prometheus instrumentation. Router-level concerns
// (CORS, inbound rate limiting) live in the api package as chi middleware.
package middleware

import (
	"net/http"

	"github.com/tomtom215/shelfmark/internal/logging"
)

// RequestID generates a unique ID for each request, honoring an existing
// X-Request-ID from an upstream proxy. The ID is echoed in the response
// header and attached to the request context for log correlation.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next(w, r.WithContext(ctx))
	}
}
