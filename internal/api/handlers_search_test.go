// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shelfmark/internal/cache"
	"github.com/tomtom215/shelfmark/internal/models"
)

// fakeReviewSource serves a fixed review list and counts lookups.
type fakeReviewSource struct {
	reviews []models.Review
	calls   atomic.Int32
}

func (f *fakeReviewSource) ListReviews(ctx context.Context, status string, tags []string) ([]models.Review, error) {
	f.calls.Add(1)

	out := make([]models.Review, 0, len(f.reviews))
	for _, review := range f.reviews {
		if status != "" && status != "all" && review.Status != status {
			continue
		}
		out = append(out, review)
	}
	return out, nil
}

func sampleReviews() []models.Review {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Review{
		{
			ID:        "r1",
			Title:     "Dune",
			Author:    "Frank Herbert",
			Excerpt:   "Desert politics.",
			Content:   "A sweeping story of the desert planet Arrakis and the spice melange.",
			Status:    models.StatusRead,
			CreatedAt: base,
		},
		{
			ID:        "r2",
			Title:     "The Left Hand of Darkness",
			Author:    "Ursula K. Le Guin",
			Excerpt:   "Gethen in winter.",
			Content:   "An envoy navigates a planet of ice. The word dune appears once here.",
			Status:    models.StatusRead,
			CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID:        "r3",
			Title:     "Piranesi",
			Author:    "Susanna Clarke",
			Excerpt:   "Halls and tides.",
			Content:   "A labyrinthine house with statues and flooding halls.",
			Status:    models.StatusReading,
			CreatedAt: base.Add(48 * time.Hour),
		},
	}
}

func newSearchTestServer(t *testing.T, source *fakeReviewSource) *httptest.Server {
	t.Helper()

	handler := NewHandler(&fakeBooksClient{}, source, cache.New[*models.SearchPage](time.Minute), testConfig())
	server := httptest.NewServer(NewRouter(handler, testConfig()).Setup())
	t.Cleanup(server.Close)
	return server
}

func getSearchPage(t *testing.T, server *httptest.Server, path string) (*http.Response, models.SearchPage) {
	t.Helper()

	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope struct {
		Status string            `json:"status"`
		Data   models.SearchPage `json:"data"`
		Error  *models.APIError  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp, envelope.Data
}

func TestReviewsSearchRelevanceOrdering(t *testing.T) {
	server := newSearchTestServer(t, &fakeReviewSource{reviews: sampleReviews()})

	resp, page := getSearchPage(t, server, "/api/v1/search?q=dune&sort=relevance")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if len(page.Hits) != 2 {
		t.Fatalf("hits = %d, want 2 (non-matching reviews filtered)", len(page.Hits))
	}
	if page.Hits[0].Review.ID != "r1" {
		t.Errorf("top hit = %s, want r1 (title match outweighs content match)", page.Hits[0].Review.ID)
	}
	if page.Hits[1].Review.ID != "r2" {
		t.Errorf("second hit = %s, want r2", page.Hits[1].Review.ID)
	}
	if page.Hits[0].Score <= page.Hits[1].Score {
		t.Errorf("scores not descending: %v then %v", page.Hits[0].Score, page.Hits[1].Score)
	}
}

func TestReviewsSearchHighlightAndSnippets(t *testing.T) {
	server := newSearchTestServer(t, &fakeReviewSource{reviews: sampleReviews()})

	_, page := getSearchPage(t, server, "/api/v1/search?q=dune&sort=relevance")
	if len(page.Hits) == 0 {
		t.Fatal("no hits")
	}

	if !strings.Contains(page.Hits[0].Title, "<mark>Dune</mark>") {
		t.Errorf("highlighted title = %q, want <mark>Dune</mark>", page.Hits[0].Title)
	}
	if len(page.Hits[0].Snippets) == 0 {
		t.Error("expected snippets for matching review")
	}
}

func TestReviewsSearchNewestDefault(t *testing.T) {
	server := newSearchTestServer(t, &fakeReviewSource{reviews: sampleReviews()})

	_, page := getSearchPage(t, server, "/api/v1/search")

	if len(page.Hits) != 3 {
		t.Fatalf("hits = %d, want all 3 without a query", len(page.Hits))
	}
	ids := []string{page.Hits[0].Review.ID, page.Hits[1].Review.ID, page.Hits[2].Review.ID}
	want := []string{"r3", "r2", "r1"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

func TestReviewsSearchStatusFilter(t *testing.T) {
	server := newSearchTestServer(t, &fakeReviewSource{reviews: sampleReviews()})

	_, page := getSearchPage(t, server, "/api/v1/search?status=reading")

	if len(page.Hits) != 1 || page.Hits[0].Review.ID != "r3" {
		t.Fatalf("hits = %+v, want only r3", page.Hits)
	}
}

func TestReviewsSearchInvalidParams(t *testing.T) {
	server := newSearchTestServer(t, &fakeReviewSource{reviews: sampleReviews()})

	tests := []string{
		"/api/v1/search?status=burned",
		"/api/v1/search?sort=oldest",
		"/api/v1/search?page=0",
	}
	for _, path := range tests {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, resp.StatusCode)
		}
	}
}

func TestReviewsSearchCaching(t *testing.T) {
	source := &fakeReviewSource{reviews: sampleReviews()}
	server := newSearchTestServer(t, source)

	if _, page := getSearchPage(t, server, "/api/v1/search?q=dune"); len(page.Hits) != 2 {
		t.Fatalf("first call hits = %d, want 2", len(page.Hits))
	}
	if got := source.calls.Load(); got != 1 {
		t.Fatalf("source calls after first request = %d, want 1", got)
	}

	// The source changes, but the cached page is still served.
	source.reviews = nil
	if _, page := getSearchPage(t, server, "/api/v1/search?q=dune"); len(page.Hits) != 2 {
		t.Errorf("cached call hits = %d, want 2", len(page.Hits))
	}
	if got := source.calls.Load(); got != 1 {
		t.Errorf("source calls after cached request = %d, want 1", got)
	}
}

func TestReviewsSearchCacheKeyCanonicalization(t *testing.T) {
	source := &fakeReviewSource{reviews: sampleReviews()}
	server := newSearchTestServer(t, source)

	// Same logical request spelled three different ways.
	paths := []string{
		"/api/v1/search?q=Dune&tags=sf,classic",
		"/api/v1/search?q=dune&tags=classic&tags=sf",
		"/api/v1/search?q=%20dune%20&tags=classic,sf&page=1&limit=10&sort=newest",
	}
	for _, path := range paths {
		if _, err := http.Get(server.URL + path); err != nil {
			t.Fatal(err)
		}
	}

	if got := source.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1 (all spellings share one cache entry)", got)
	}
}

func TestReviewsSearchPagination(t *testing.T) {
	reviews := make([]models.Review, 0, 7)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		reviews = append(reviews, models.Review{
			ID:        string(rune('a' + i)),
			Title:     "Review",
			Status:    models.StatusRead,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	server := newSearchTestServer(t, &fakeReviewSource{reviews: reviews})

	_, page := getSearchPage(t, server, "/api/v1/search?page=2&limit=3")

	if len(page.Hits) != 3 {
		t.Errorf("page 2 hits = %d, want 3", len(page.Hits))
	}
	if page.Pagination.CurrentPage != 2 || page.Pagination.TotalPages != 3 ||
		page.Pagination.TotalItems != 7 {
		t.Errorf("pagination = %+v, want page 2 of 3 over 7 items", page.Pagination)
	}
	if !page.Pagination.HasNextPage || !page.Pagination.HasPrevPage {
		t.Errorf("pagination flags = %+v, want both true", page.Pagination)
	}

	_, last := getSearchPage(t, server, "/api/v1/search?page=3&limit=3")
	if len(last.Hits) != 1 || last.Pagination.HasNextPage {
		t.Errorf("last page = %d hits, has_next=%v; want 1 hit and no next", len(last.Hits), last.Pagination.HasNextPage)
	}
}
