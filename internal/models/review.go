// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package models

import "time"

// Review statuses.
const (
	StatusReading  = "reading"
	StatusRead     = "read"
	StatusToRead   = "to-read"
	StatusAbandoned = "abandoned"
)

// Review is a book review as stored by the persistence layer and scored by
// the search engine.
type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Status    string    `json:"status,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchHit is one scored review in a search result page, with highlighted
// fields and content snippets for display.
type SearchHit struct {
	Review   Review   `json:"review"`
	Score    float64  `json:"score"`
	Title    string   `json:"highlighted_title,omitempty"`
	Snippets []string `json:"snippets,omitempty"`
}

// SearchPage is a cached page of search results.
type SearchPage struct {
	Hits       []SearchHit    `json:"hits"`
	Pagination PaginationMeta `json:"pagination"`
}
