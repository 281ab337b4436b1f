// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package books

// identifier types emitted by the provider.
const (
	identifierISBN10 = "ISBN_10"
	identifierISBN13 = "ISBN_13"
)

// defaultTitle substitutes for volumes the provider ships without one.
const defaultTitle = "Unknown Title"

// Normalize converts a raw provider volume into a canonical Book. It is a
// total function: any well-formed-but-sparse input degrades to defaults and
// empty slices, never a panic. The result is complete — every canonical
// field is assigned.
func Normalize(v *Volume) Book {
	if v == nil {
		return Book{Title: defaultTitle, Authors: []string{}, Categories: []string{}}
	}

	info := v.VolumeInfo

	book := Book{
		ID:            v.ID,
		Title:         info.Title,
		Authors:       info.Authors,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		CoverImageURL: selectCoverImage(info.ImageLinks),
		Publisher:     info.Publisher,
		Language:      info.Language,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
	}

	if book.Title == "" {
		book.Title = defaultTitle
	}
	if book.Authors == nil {
		book.Authors = []string{}
	}
	if book.Categories == nil {
		book.Categories = []string{}
	}

	// Single pass over the identifiers: the first ISBN of each type wins,
	// later duplicates are ignored.
	for _, id := range info.IndustryIdentifiers {
		switch id.Type {
		case identifierISBN10:
			if book.ISBN == "" {
				book.ISBN = id.Identifier
			}
		case identifierISBN13:
			if book.ISBN13 == "" {
				book.ISBN13 = id.Identifier
			}
		}
	}

	return book
}

// selectCoverImage picks the largest available cover, preferring
// extraLarge → large → medium → small → thumbnail → smallThumbnail.
func selectCoverImage(links *ImageLinks) string {
	if links == nil {
		return ""
	}

	for _, url := range []string{
		links.ExtraLarge,
		links.Large,
		links.Medium,
		links.Small,
		links.Thumbnail,
		links.SmallThumbnail,
	} {
		if url != "" {
			return url
		}
	}
	return ""
}
