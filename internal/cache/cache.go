// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package cache provides a thread-safe in-memory key/value store with
// per-entry TTL expiration.
//
// Expiry is lazy: an expired entry is removed when a read observes it, so the
// cache stays correct without any background work. Memory reclamation between
// reads is handled by Cleanup, which the host process runs on a periodic
// timer (see internal/supervisor). Entries accumulate between sweeps; that
// growth ceiling is an accepted trade-off for a single-process deployment.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Entry is a cached value with its storage time and lifetime.
type Entry[T any] struct {
	Value    T
	StoredAt time.Time
	TTL      time.Duration
}

// expiredAt reports whether the entry is logically absent at the given time.
func (e Entry[T]) expiredAt(now time.Time) bool {
	return now.Sub(e.StoredAt) > e.TTL
}

// TTLCache is a thread-safe in-memory cache with per-entry expiration.
// The zero value is not usable; construct with New.
type TTLCache[T any] struct {
	mu         sync.RWMutex
	entries    map[string]Entry[T]
	defaultTTL time.Duration
	now        func() time.Time

	stats struct {
		hits   int64
		misses int64
	}
}

// Stats is an observability snapshot of the cache. It is never used for
// correctness decisions.
type Stats struct {
	Size   int
	Keys   []string
	Oldest time.Time
	Newest time.Time
	Hits   int64
	Misses int64
}

// New creates a cache whose entries expire after defaultTTL unless a
// per-entry TTL is given via SetWithTTL.
func New[T any](defaultTTL time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		entries:    make(map[string]Entry[T]),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// SetClock replaces the cache's time source. Tests use this to control
// expiry deterministically; production code never calls it.
func (c *TTLCache[T]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Set stores value under key with the cache's default TTL, overwriting any
// existing entry. It never fails.
func (c *TTLCache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *TTLCache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[T]{
		Value:    value,
		StoredAt: c.now(),
		TTL:      ttl,
	}
}

// Get returns the value for key, or the zero value and false when the key is
// absent or expired. An expired entry is deleted on observation, so callers
// cannot distinguish "expired" from "never stored".
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	var zero T
	if !exists {
		c.recordMiss()
		return zero, false
	}

	if entry.expiredAt(now) {
		c.mu.Lock()
		// Re-check under the write lock: another goroutine may have
		// overwritten the entry between the two lock acquisitions.
		if e, ok := c.entries[key]; ok && e.expiredAt(c.now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.recordMiss()
		return zero, false
	}

	c.recordHit()
	return entry.Value, true
}

// Has reports whether key holds a live entry, with the same lazy-expiry side
// effect as Get.
func (c *TTLCache[T]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key and reports whether an entry was present.
func (c *TTLCache[T]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, existed := c.entries[key]
	delete(c.entries, key)
	return existed
}

// Clear removes all entries.
func (c *TTLCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry[T])
}

// Cleanup removes every expired entry and returns the number removed.
// Intended to run on a periodic timer owned by the host process; safe to
// invoke concurrently with Get/Set.
func (c *TTLCache[T]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if entry.expiredAt(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the current entry count, expired entries included.
func (c *TTLCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns an observability snapshot.
func (c *TTLCache[T]) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		Size:   len(c.entries),
		Keys:   make([]string, 0, len(c.entries)),
		Hits:   c.stats.hits,
		Misses: c.stats.misses,
	}

	for key, entry := range c.entries {
		stats.Keys = append(stats.Keys, key)
		if stats.Oldest.IsZero() || entry.StoredAt.Before(stats.Oldest) {
			stats.Oldest = entry.StoredAt
		}
		if entry.StoredAt.After(stats.Newest) {
			stats.Newest = entry.StoredAt
		}
	}

	return stats
}

// HitRate returns the cache hit rate as a percentage.
func (c *TTLCache[T]) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.stats.hits + c.stats.misses
	if total == 0 {
		return 0.0
	}
	return float64(c.stats.hits) / float64(total) * 100.0
}

func (c *TTLCache[T]) recordHit() {
	c.mu.Lock()
	c.stats.hits++
	c.mu.Unlock()
}

func (c *TTLCache[T]) recordMiss() {
	c.mu.Lock()
	c.stats.misses++
	c.mu.Unlock()
}

// GenerateKey creates a deterministic cache key from a method name and a
// parameter struct. Struct fields serialize in declaration order, so two
// equal parameter values always produce the same key.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to a simple string key
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
