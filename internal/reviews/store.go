// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package reviews provides the in-memory review store backing the search
// endpoint. Persistence is deliberately simple: a JSON file loaded at
// startup, mutated through the store, flushed on demand.
package reviews

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/shelfmark/internal/models"
)

// MemoryStore holds reviews in memory behind a RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	reviews map[string]models.Review
	clock   func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reviews: make(map[string]models.Review),
		clock:   time.Now,
	}
}

// NewFromFile creates a store seeded from a JSON file holding an array of
// reviews. A missing file is not an error; the store starts empty.
func NewFromFile(path string) (*MemoryStore, error) {
	store := NewMemoryStore()
	if path == "" {
		return store, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read review data file: %w", err)
	}

	var loaded []models.Review
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse review data file: %w", err)
	}

	for _, review := range loaded {
		if review.ID == "" {
			review.ID = uuid.NewString()
		}
		store.reviews[review.ID] = review
	}
	return store, nil
}

// SetClock replaces the time source. Tests only.
func (s *MemoryStore) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// ListReviews returns reviews matching the given status and tags, in no
// particular order. An empty or "all" status matches every review; a review
// matches the tag filter when it carries every requested tag
// (case-insensitive).
func (s *MemoryStore) ListReviews(ctx context.Context, status string, tags []string) ([]models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, 0, len(s.reviews))
	for _, review := range s.reviews {
		if status != "" && status != "all" && review.Status != status {
			continue
		}
		if !hasAllTags(review.Tags, tags) {
			continue
		}
		out = append(out, review)
	}
	return out, nil
}

// Get returns the review with the given ID.
func (s *MemoryStore) Get(id string) (models.Review, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	return review, ok
}

// Upsert inserts or replaces a review. A blank ID gets a generated one, and
// timestamps are maintained: CreatedAt is set once, UpdatedAt on every write.
func (s *MemoryStore) Upsert(review models.Review) models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if existing, ok := s.reviews[review.ID]; ok && !existing.CreatedAt.IsZero() {
		review.CreatedAt = existing.CreatedAt
	} else if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	s.reviews[review.ID] = review
	return review
}

// Delete removes a review. Returns false if the ID was absent.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return false
	}
	delete(s.reviews, id)
	return true
}

// Len returns the number of stored reviews.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}

// Save writes all reviews to the given path as a JSON array.
func (s *MemoryStore) Save(path string) error {
	s.mu.RLock()
	out := make([]models.Review, 0, len(s.reviews))
	for _, review := range s.reviews {
		out = append(out, review)
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reviews: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write review data file: %w", err)
	}
	return nil
}

func hasAllTags(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		found := false
		for _, h := range have {
			if strings.EqualFold(h, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
