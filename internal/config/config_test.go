// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8475 {
		t.Errorf("Server.Port = %d, want 8475", cfg.Server.Port)
	}
	if cfg.Books.SearchCacheTTL != 5*time.Minute {
		t.Errorf("Books.SearchCacheTTL = %s, want 5m", cfg.Books.SearchCacheTTL)
	}
	if cfg.Books.VolumeCacheTTL != 30*time.Minute {
		t.Errorf("Books.VolumeCacheTTL = %s, want 30m", cfg.Books.VolumeCacheTTL)
	}
	if cfg.Books.RateLimitRequests != 100 {
		t.Errorf("Books.RateLimitRequests = %d, want 100", cfg.Books.RateLimitRequests)
	}
	if cfg.Search.SnippetLength != 200 {
		t.Errorf("Search.SnippetLength = %d, want 200", cfg.Search.SnippetLength)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("BOOKS_API_KEY", "secret-key")
	t.Setenv("BOOKS_SEARCH_CACHE_TTL", "10m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Books.APIKey != "secret-key" {
		t.Errorf("Books.APIKey = %q", cfg.Books.APIKey)
	}
	if cfg.Books.SearchCacheTTL != 10*time.Minute {
		t.Errorf("Books.SearchCacheTTL = %s, want 10m", cfg.Books.SearchCacheTTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 ||
		cfg.Security.CORSOrigins[0] != want[0] ||
		cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 7777\nbooks:\n  api_key: from-file\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 from file", cfg.Server.Port)
	}
	if cfg.Books.APIKey != "from-file" {
		t.Errorf("Books.APIKey = %q, want %q", cfg.Books.APIKey, "from-file")
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7777\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_PORT", "8888")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8888 {
		t.Errorf("Server.Port = %d, want env value 8888 over file", cfg.Server.Port)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }},
		{"zero search ttl", func(c *Config) { c.Books.SearchCacheTTL = 0 }},
		{"zero quota", func(c *Config) { c.Books.RateLimitRequests = 0 }},
		{"zero cleanup interval", func(c *Config) { c.Books.CleanupInterval = 0 }},
		{"zero snippet length", func(c *Config) { c.Search.SnippetLength = 0 }},
		{"max page below default", func(c *Config) { c.Search.MaxPageSize = 1 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("defaults must validate, got %v", err)
	}
}

func TestUnmappedEnvVarsIgnored(t *testing.T) {
	if got := envTransformFunc("RANDOM_HOST_VAR"); got != "" {
		t.Errorf("unmapped env var mapped to %q, want skipped", got)
	}
}
