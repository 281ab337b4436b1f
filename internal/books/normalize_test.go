// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package books

import (
	"reflect"
	"testing"
)

func TestNormalizeFullVolume(t *testing.T) {
	vol := &Volume{
		ID: "abc123",
		VolumeInfo: VolumeInfo{
			Title:         "The Go Programming Language",
			Authors:       []string{"Alan A. A. Donovan", "Brian W. Kernighan"},
			Publisher:     "Addison-Wesley",
			PublishedDate: "2015-10-26",
			Description:   "The authoritative resource for any programmer.",
			IndustryIdentifiers: []IndustryIdentifier{
				{Type: "ISBN_10", Identifier: "0134190440"},
				{Type: "ISBN_13", Identifier: "9780134190440"},
			},
			PageCount:     380,
			Categories:    []string{"Computers"},
			AverageRating: 4.5,
			RatingsCount:  120,
			ImageLinks: &ImageLinks{
				Thumbnail: "http://example.com/thumb.jpg",
				Small:     "http://example.com/small.jpg",
			},
			Language: "en",
		},
	}

	book := Normalize(vol)

	if book.ID != "abc123" {
		t.Errorf("ID = %q, want %q", book.ID, "abc123")
	}
	if book.Title != "The Go Programming Language" {
		t.Errorf("Title = %q", book.Title)
	}
	if !reflect.DeepEqual(book.Authors, []string{"Alan A. A. Donovan", "Brian W. Kernighan"}) {
		t.Errorf("Authors = %v", book.Authors)
	}
	if book.ISBN != "0134190440" {
		t.Errorf("ISBN = %q, want %q", book.ISBN, "0134190440")
	}
	if book.ISBN13 != "9780134190440" {
		t.Errorf("ISBN13 = %q, want %q", book.ISBN13, "9780134190440")
	}
	if book.CoverImageURL != "http://example.com/small.jpg" {
		t.Errorf("CoverImageURL = %q, want small over thumbnail", book.CoverImageURL)
	}
	if book.AverageRating != 4.5 || book.RatingsCount != 120 {
		t.Errorf("rating = %v/%d", book.AverageRating, book.RatingsCount)
	}
}

func TestNormalizeSparseVolume(t *testing.T) {
	book := Normalize(&Volume{ID: "sparse"})

	if book.Title != "Unknown Title" {
		t.Errorf("Title = %q, want default", book.Title)
	}
	if book.Authors == nil || len(book.Authors) != 0 {
		t.Errorf("Authors = %#v, want empty non-nil slice", book.Authors)
	}
	if book.Categories == nil || len(book.Categories) != 0 {
		t.Errorf("Categories = %#v, want empty non-nil slice", book.Categories)
	}
	if book.CoverImageURL != "" {
		t.Errorf("CoverImageURL = %q, want empty", book.CoverImageURL)
	}
	if book.ISBN != "" || book.ISBN13 != "" {
		t.Errorf("ISBNs = %q/%q, want empty", book.ISBN, book.ISBN13)
	}
}

func TestNormalizeNilVolume(t *testing.T) {
	book := Normalize(nil)

	if book.Title != "Unknown Title" {
		t.Errorf("Title = %q, want default", book.Title)
	}
	if book.Authors == nil || book.Categories == nil {
		t.Error("slices must be non-nil on nil input")
	}
}

func TestNormalizeCoverPreference(t *testing.T) {
	tests := []struct {
		name  string
		links *ImageLinks
		want  string
	}{
		{"nil links", nil, ""},
		{"all empty", &ImageLinks{}, ""},
		{
			"extraLarge wins over everything",
			&ImageLinks{ExtraLarge: "xl", Large: "l", Medium: "m", Small: "s", Thumbnail: "t", SmallThumbnail: "st"},
			"xl",
		},
		{
			"medium wins over small",
			&ImageLinks{Medium: "m", Small: "s"},
			"m",
		},
		{
			"thumbnail wins over smallThumbnail",
			&ImageLinks{Thumbnail: "t", SmallThumbnail: "st"},
			"t",
		},
		{
			"smallThumbnail as last resort",
			&ImageLinks{SmallThumbnail: "st"},
			"st",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vol := &Volume{VolumeInfo: VolumeInfo{ImageLinks: tt.links}}
			if got := Normalize(vol).CoverImageURL; got != tt.want {
				t.Errorf("CoverImageURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeFirstISBNWins(t *testing.T) {
	vol := &Volume{
		VolumeInfo: VolumeInfo{
			IndustryIdentifiers: []IndustryIdentifier{
				{Type: "ISBN_13", Identifier: "9780000000001"},
				{Type: "ISBN_10", Identifier: "0000000001"},
				{Type: "ISBN_13", Identifier: "9780000000002"},
				{Type: "ISBN_10", Identifier: "0000000002"},
				{Type: "OTHER", Identifier: "ignored"},
			},
		},
	}

	book := Normalize(vol)

	if book.ISBN != "0000000001" {
		t.Errorf("ISBN = %q, want first ISBN_10", book.ISBN)
	}
	if book.ISBN13 != "9780000000001" {
		t.Errorf("ISBN13 = %q, want first ISBN_13", book.ISBN13)
	}
}
