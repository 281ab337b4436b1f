// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shelfmark/internal/metrics"
)

// Sweepable is anything holding expiring entries that accumulate until
// swept. Cleanup removes expired entries and reports how many were removed.
// Both cache.TTLCache and ratelimit.FixedWindowLimiter satisfy it.
type Sweepable interface {
	Cleanup() int
	Len() int
}

// SweepTarget pairs a sweepable store with the label its evictions are
// recorded under.
type SweepTarget struct {
	Name  string
	Store Sweepable
}

// JanitorService periodically sweeps expired entries out of the registered
// stores. TTL caches expire lazily on read, so without the janitor an entry
// that is never read again would sit in memory until process exit.
type JanitorService struct {
	targets  []SweepTarget
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewJanitorService creates a janitor sweeping the given targets every
// interval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewJanitorService(targets []SweepTarget, interval time.Duration, logger zerolog.Logger) *JanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &JanitorService{
		targets:  targets,
		interval: interval,
		logger:   logger.With().Str("service", "janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements the suture.Service interface.
func (s *JanitorService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Int("targets", len(s.targets)).
		Msg("janitor service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("janitor service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep runs one pass over all targets.
func (s *JanitorService) sweep() {
	start := time.Now()
	total := 0

	for _, target := range s.targets {
		removed := target.Store.Cleanup()
		total += removed

		metrics.CacheEvictions.WithLabelValues(target.Name).Add(float64(removed))
		metrics.CacheEntries.WithLabelValues(target.Name).Set(float64(target.Store.Len()))
	}

	if total > 0 {
		s.logger.Debug().
			Int("removed", total).
			Dur("duration", time.Since(start)).
			Msg("sweep complete")
	}
}

// String returns the service name for logging.
func (s *JanitorService) String() string {
	return s.name
}
