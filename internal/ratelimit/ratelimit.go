// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package ratelimit implements fixed-window request quota tracking for
// outbound provider calls.
//
// Fixed windows admit brief bursts at window boundaries but need no
// floating-point accounting, which keeps the limiter trivial to reason about
// and test. Inbound HTTP limiting is handled separately by go-chi/httprate;
// this limiter protects the third-party provider quota.
package ratelimit

import (
	"sync"
	"time"
)

// window tracks request count for one key until resetAt.
type window struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter tracks per-key request quotas in fixed windows. A window
// whose reset time has passed is replaced wholesale, never decremented.
//
// Shelfmark keys all outbound provider calls under one fixed client identity
// rather than per end-user. That is adequate for a single-operator
// deployment; a multi-tenant caller would need to choose its own
// partitioning keys.
type FixedWindowLimiter struct {
	mu             sync.Mutex
	windows        map[string]window
	maxRequests    int
	windowDuration time.Duration
	now            func() time.Time
}

// New creates a limiter allowing maxRequests per key in each windowDuration.
func New(maxRequests int, windowDuration time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		windows:        make(map[string]window),
		maxRequests:    maxRequests,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// SetClock replaces the limiter's time source for deterministic tests.
func (l *FixedWindowLimiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Allow records a request attempt for key and reports whether it is within
// quota. When no window exists, or the existing window has passed its reset
// time, a fresh window opens with count 1. A denied call does not increment
// the count.
func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, exists := l.windows[key]
	if !exists || !now.Before(w.resetAt) {
		l.windows[key] = window{
			count:   1,
			resetAt: now.Add(l.windowDuration),
		}
		return true
	}

	if w.count < l.maxRequests {
		w.count++
		l.windows[key] = w
		return true
	}

	return false
}

// Remaining returns how many requests key may still make in its current
// window, or the full quota when no active window exists. Never negative.
func (l *FixedWindowLimiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists || !l.now().Before(w.resetAt) {
		return l.maxRequests
	}

	remaining := l.maxRequests - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResetAt returns the reset time of key's active window. The second return
// is false when no active window exists.
func (l *FixedWindowLimiter) ResetAt(key string) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists || !l.now().Before(w.resetAt) {
		return time.Time{}, false
	}
	return w.resetAt, true
}

// Cleanup removes windows whose reset time has passed and returns the number
// removed. Safe to invoke concurrently with Allow.
func (l *FixedWindowLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked windows, stale ones included.
func (l *FixedWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
