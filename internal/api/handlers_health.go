// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"net/http"
	"time"
)

// Health handles GET /health. It reports liveness plus cache occupancy; the
// process has no external hard dependencies to probe, since the metadata
// provider is allowed to be down or unconfigured.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status":               "ok",
		"uptime_seconds":       int64(time.Since(h.startedAt).Seconds()),
		"search_cache_entries": h.searchCache.Len(),
		"provider_configured":  h.cfg.Books.APIKey != "",
	}, false, start)
}
