// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

/*
client.go - Google Books REST API client

Read-through cached and quota-guarded access to the provider's volume search
and lookup endpoints. Cache hits are free: they bypass the rate limiter
entirely. On a miss the limiter is consulted under a single fixed client
identity before any network call is made.

Two concurrent misses for the same key may both reach the provider (a cache
stampede); the provider is idempotent and cheap relative to request volume,
so no per-key locking or in-flight de-duplication is attempted.

API Reference: https://developers.google.com/books/docs/v1/using
*/

package books

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shelfmark/internal/cache"
	"github.com/tomtom215/shelfmark/internal/logging"
	"github.com/tomtom215/shelfmark/internal/metrics"
	"github.com/tomtom215/shelfmark/internal/ratelimit"
)

const (
	// DefaultBaseURL is the provider's volumes API root.
	DefaultBaseURL = "https://www.googleapis.com/books/v1"

	// DefaultSearchTTL caches search result pages briefly; result sets
	// shift as the provider reindexes.
	DefaultSearchTTL = 5 * time.Minute

	// DefaultVolumeTTL caches individual volumes longer; single records
	// change far less often than search result sets.
	DefaultVolumeTTL = 30 * time.Minute

	// limiterKey is the single fixed identity under which all outbound
	// provider calls are counted. Adequate for a single-operator
	// deployment only; per-user partitioning is a deliberate non-feature.
	limiterKey = "google-books"

	// defaultRetryAfter is reported when the limiter has no active window
	// to compute a reset time from.
	defaultRetryAfter = 60 * time.Second
)

// ClientInterface defines the provider operations. Both Client and
// CircuitBreakerClient implement this interface.
type ClientInterface interface {
	Search(ctx context.Context, params SearchParams) (*VolumeList, error)
	GetVolume(ctx context.Context, id string) (*Volume, error)
	SearchBooks(ctx context.Context, params SearchParams) (*SearchResult, error)
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// Client provides access to the Google Books REST API. Construct with
// NewClient; the caches and limiter are injected so tests can build fresh
// instances instead of sharing process-wide state.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	searchCache *cache.TTLCache[*VolumeList]
	volumeCache *cache.TTLCache[*Volume]
	limiter     *ratelimit.FixedWindowLimiter
}

// Config holds client construction parameters.
type Config struct {
	// BaseURL overrides the provider endpoint (tests point this at a
	// local server). Empty means DefaultBaseURL.
	BaseURL string

	// APIKey is the provider credential. May be empty; requests then fail
	// with ErrNotConfigured when they reach the network path.
	APIKey string

	// Timeout bounds each HTTP request. Zero means 30s.
	Timeout time.Duration
}

// NewClient creates a Google Books API client.
func NewClient(cfg Config, searchCache *cache.TTLCache[*VolumeList], volumeCache *cache.TTLCache[*Volume], limiter *ratelimit.FixedWindowLimiter) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{Timeout: timeout},
		searchCache: searchCache,
		volumeCache: volumeCache,
		limiter:     limiter,
	}
}

// Search queries the provider's volume search endpoint. Responses are cached
// raw for DefaultSearchTTL under a key derived from the full parameter set
// with defaults substituted.
func (c *Client) Search(ctx context.Context, params SearchParams) (*VolumeList, error) {
	params = params.withDefaults()
	key := cache.GenerateKey("volumes.search", params)

	if list, ok := c.searchCache.Get(key); ok {
		metrics.RecordCacheAccess("book_search", true)
		logging.Debug().Str("query", params.Query).Msg("Book search cache hit")
		return list, nil
	}
	metrics.RecordCacheAccess("book_search", false)

	if err := c.checkQuota(); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, "/volumes", searchQuery(params))
	if err != nil {
		metrics.RecordProviderRequest("volumes.search", "network_error", time.Since(start))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordProviderRequest("volumes.search", "provider_error", time.Since(start))
		return nil, &ProviderError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	metrics.RecordProviderRequest("volumes.search", "success", time.Since(start))

	var list VolumeList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("books: failed to decode search response: %w", err)
	}

	c.searchCache.SetWithTTL(key, &list, DefaultSearchTTL)

	logging.Debug().
		Str("query", params.Query).
		Int("total_items", list.TotalItems).
		Int("returned", len(list.Items)).
		Msg("Book search completed")

	return &list, nil
}

// GetVolume retrieves a single volume by provider ID. A 404 maps to
// (nil, nil): absence is not an error. Found volumes are cached for
// DefaultVolumeTTL.
func (c *Client) GetVolume(ctx context.Context, id string) (*Volume, error) {
	key := "volumes.get:" + id

	if vol, ok := c.volumeCache.Get(key); ok {
		metrics.RecordCacheAccess("book_volume", true)
		return vol, nil
	}
	metrics.RecordCacheAccess("book_volume", false)

	if err := c.checkQuota(); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, "/volumes/"+url.PathEscape(id), nil)
	if err != nil {
		metrics.RecordProviderRequest("volumes.get", "network_error", time.Since(start))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		metrics.RecordProviderRequest("volumes.get", "not_found", time.Since(start))
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordProviderRequest("volumes.get", "provider_error", time.Since(start))
		return nil, &ProviderError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	metrics.RecordProviderRequest("volumes.get", "success", time.Since(start))

	var vol Volume
	if err := json.NewDecoder(resp.Body).Decode(&vol); err != nil {
		return nil, fmt.Errorf("books: failed to decode volume %s: %w", id, err)
	}

	c.volumeCache.SetWithTTL(key, &vol, DefaultVolumeTTL)

	return &vol, nil
}

// SearchBooks composes Search with Normalize over every returned item.
func (c *Client) SearchBooks(ctx context.Context, params SearchParams) (*SearchResult, error) {
	return searchBooks(ctx, c, params)
}

// searchBooks is shared by Client and CircuitBreakerClient so the breaker
// guards the single underlying network call, not the composition.
func searchBooks(ctx context.Context, client ClientInterface, params SearchParams) (*SearchResult, error) {
	params = params.withDefaults()

	list, err := client.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Books:      make([]Book, 0, len(list.Items)),
		TotalItems: list.TotalItems,
	}
	for i := range list.Items {
		result.Books = append(result.Books, Normalize(&list.Items[i]))
	}
	result.HasMore = params.StartIndex+len(result.Books) < list.TotalItems

	return result, nil
}

// checkQuota consults the fixed-window limiter. Cache hits never reach this
// path, so only genuine provider calls consume quota.
func (c *Client) checkQuota() error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	if c.limiter.Allow(limiterKey) {
		return nil
	}

	metrics.ProviderQuotaDenials.Inc()

	retryAfter := defaultRetryAfter
	if resetAt, ok := c.limiter.ResetAt(limiterKey); ok {
		if until := time.Until(resetAt); until > 0 {
			retryAfter = until
		}
	}

	logging.Warn().
		Dur("retry_after", retryAfter).
		Msg("Provider quota exhausted, rejecting book request")

	return &RateLimitError{RetryAfter: retryAfter}
}

// doRequest performs an HTTP GET against the provider API.
func (c *Client) doRequest(ctx context.Context, endpoint string, query url.Values) (*http.Response, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.apiKey)

	fullURL := c.baseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("books: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

// searchQuery builds the provider query string for a search request.
// Defaults have already been substituted by withDefaults.
func searchQuery(params SearchParams) url.Values {
	query := url.Values{}
	query.Set("q", params.Query)
	query.Set("maxResults", strconv.Itoa(params.MaxResults))
	query.Set("startIndex", strconv.Itoa(params.StartIndex))
	if params.OrderBy != "" {
		query.Set("orderBy", params.OrderBy)
	}
	if params.PrintType != "" {
		query.Set("printType", params.PrintType)
	}
	if params.Filter != "" {
		query.Set("filter", params.Filter)
	}
	return query
}
