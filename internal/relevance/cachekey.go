// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package relevance

import (
	"sort"
	"strconv"
	"strings"
)

// Defaults substituted for elided optional search parameters. Substitution
// happens inside BuildCacheKey so an elided field and its explicit default
// always collide on the same key.
const (
	DefaultStatus = "all"
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSort   = "newest"
)

// SearchKeyParams are the review-search parameters that shape a result page.
type SearchKeyParams struct {
	Query  string
	Tags   []string
	Status string
	Page   int
	Limit  int
	Sort   string
}

// BuildCacheKey canonicalizes search parameters into a cache key. The
// contract: two semantically identical queries always produce the same key.
// The query is trimmed and lowercased, tags are sorted before joining, and
// missing optional fields take their defaults.
func BuildCacheKey(p SearchKeyParams) string {
	query := simpleLower(strings.TrimSpace(p.Query))

	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	sort.Strings(tags)

	status := p.Status
	if status == "" {
		status = DefaultStatus
	}
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	sortBy := p.Sort
	if sortBy == "" {
		sortBy = DefaultSort
	}

	return strings.Join([]string{
		"search",
		"q=" + query,
		"tags=" + strings.Join(tags, ","),
		"status=" + status,
		"page=" + strconv.Itoa(page),
		"limit=" + strconv.Itoa(limit),
		"sort=" + sortBy,
	}, "|")
}
