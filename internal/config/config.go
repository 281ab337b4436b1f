// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package config provides layered application configuration via Koanf v2.
// Precedence: environment variables > YAML config file > built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Books    BooksConfig    `koanf:"books"`
	Search   SearchConfig   `koanf:"search"`
	Reviews  ReviewsConfig  `koanf:"reviews"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// BooksConfig holds book metadata provider settings.
type BooksConfig struct {
	// APIKey is the Google Books credential. Empty is allowed: metadata
	// lookups then fail with a configuration error and the UI falls back
	// to manual entry.
	APIKey string `koanf:"api_key"`

	// BaseURL overrides the provider endpoint. Empty means the default.
	BaseURL string `koanf:"base_url"`

	Timeout        time.Duration `koanf:"timeout"`
	SearchCacheTTL time.Duration `koanf:"search_cache_ttl"`
	VolumeCacheTTL time.Duration `koanf:"volume_cache_ttl"`

	// Outbound quota for provider calls, counted under one fixed identity.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// CleanupInterval paces the background sweep that evicts expired
	// cache entries and stale limiter windows.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// SearchConfig holds review search settings.
type SearchConfig struct {
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	SnippetLength   int           `koanf:"snippet_length"`
	DefaultPageSize int           `koanf:"default_page_size"`
	MaxPageSize     int           `koanf:"max_page_size"`
}

// ReviewsConfig holds review store settings.
type ReviewsConfig struct {
	// DataFile seeds the in-memory review store from a JSON file at
	// startup. Empty means start with no reviews.
	DataFile string `koanf:"data_file"`
}

// SecurityConfig holds inbound request protection settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid combinations. Called after
// loading; a missing provider API key is deliberately not an error here.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateBooks(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("server.environment must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateBooks() error {
	if c.Books.SearchCacheTTL <= 0 {
		return fmt.Errorf("books.search_cache_ttl must be positive, got %s", c.Books.SearchCacheTTL)
	}
	if c.Books.VolumeCacheTTL <= 0 {
		return fmt.Errorf("books.volume_cache_ttl must be positive, got %s", c.Books.VolumeCacheTTL)
	}
	if c.Books.RateLimitRequests < 1 {
		return fmt.Errorf("books.rate_limit_requests must be at least 1, got %d", c.Books.RateLimitRequests)
	}
	if c.Books.RateLimitWindow <= 0 {
		return fmt.Errorf("books.rate_limit_window must be positive, got %s", c.Books.RateLimitWindow)
	}
	if c.Books.CleanupInterval <= 0 {
		return fmt.Errorf("books.cleanup_interval must be positive, got %s", c.Books.CleanupInterval)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.CacheTTL <= 0 {
		return fmt.Errorf("search.cache_ttl must be positive, got %s", c.Search.CacheTTL)
	}
	if c.Search.SnippetLength < 1 {
		return fmt.Errorf("search.snippet_length must be at least 1, got %d", c.Search.SnippetLength)
	}
	if c.Search.DefaultPageSize < 1 || c.Search.MaxPageSize < c.Search.DefaultPageSize {
		return fmt.Errorf("search page sizes invalid: default %d, max %d", c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be trace/debug/info/warn/error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
