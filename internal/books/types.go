// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package books

import (
	"github.com/goccy/go-json"
)

// Volume is the provider's raw search item shape. Every field beyond the ID
// is optional in practice; normalization (not decoding) is the boundary that
// guarantees completeness.
type Volume struct {
	ID         string          `json:"id"`
	VolumeInfo VolumeInfo      `json:"volumeInfo"`
	SaleInfo   json.RawMessage `json:"saleInfo,omitempty"`
}

// VolumeInfo is the nested metadata block of a Volume.
type VolumeInfo struct {
	Title               string               `json:"title,omitempty"`
	Subtitle            string               `json:"subtitle,omitempty"`
	Authors             []string             `json:"authors,omitempty"`
	Publisher           string               `json:"publisher,omitempty"`
	PublishedDate       string               `json:"publishedDate,omitempty"`
	Description         string               `json:"description,omitempty"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers,omitempty"`
	PageCount           int                  `json:"pageCount,omitempty"`
	Categories          []string             `json:"categories,omitempty"`
	AverageRating       float64              `json:"averageRating,omitempty"`
	RatingsCount        int                  `json:"ratingsCount,omitempty"`
	ImageLinks          *ImageLinks          `json:"imageLinks,omitempty"`
	Language            string               `json:"language,omitempty"`
}

// IndustryIdentifier is one entry of a volume's identifier list.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ImageLinks holds cover image URLs by size.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
	Small          string `json:"small,omitempty"`
	Medium         string `json:"medium,omitempty"`
	Large          string `json:"large,omitempty"`
	ExtraLarge     string `json:"extraLarge,omitempty"`
}

// VolumeList is the provider's search response envelope.
type VolumeList struct {
	Kind       string   `json:"kind,omitempty"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items,omitempty"`
}

// Book is the canonical record emitted by Normalize. Every field is always
// present: string fields default to empty, slices to empty slices. A Book is
// a value with no identity beyond ID and is never mutated after construction.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"published_date,omitempty"`
	Description   string   `json:"description,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
	Categories    []string `json:"categories"`
	CoverImageURL string   `json:"cover_image_url,omitempty"`
	ISBN          string   `json:"isbn,omitempty"`
	ISBN13        string   `json:"isbn_13,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	Language      string   `json:"language,omitempty"`
	AverageRating float64  `json:"average_rating,omitempty"`
	RatingsCount  int      `json:"ratings_count,omitempty"`
}

// Search ordering and print-type values accepted by the provider.
const (
	OrderByRelevance = "relevance"
	OrderByNewest    = "newest"

	PrintTypeAll       = "all"
	PrintTypeBooks     = "books"
	PrintTypeMagazines = "magazines"
)

// SearchParams are the caller-facing search parameters.
type SearchParams struct {
	Query      string `validate:"required"`
	MaxResults int    `validate:"omitempty,min=1,max=40"`
	StartIndex int    `validate:"min=0"`
	OrderBy    string `validate:"omitempty,oneof=relevance newest"`
	PrintType  string `validate:"omitempty,oneof=all books magazines"`
	Filter     string `validate:"omitempty,oneof=partial full free-ebooks paid-ebooks ebooks"`
}

// withDefaults returns a copy with the provider defaults substituted. The
// result is also the cache-key input, so two parameter sets that differ only
// in elided defaults collide on the same key.
func (p SearchParams) withDefaults() SearchParams {
	if p.MaxResults == 0 {
		p.MaxResults = 10
	}
	if p.StartIndex < 0 {
		p.StartIndex = 0
	}
	return p
}

// SearchResult is the normalized output of SearchBooks.
type SearchResult struct {
	Books      []Book `json:"books"`
	TotalItems int    `json:"total_items"`
	HasMore    bool   `json:"has_more"`
}
