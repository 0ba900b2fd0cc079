// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.API.DefaultPageSize != 20 || cfg.API.MaxPageSize != 100 {
		t.Errorf("Expected page sizes 20/100, got %d/%d", cfg.API.DefaultPageSize, cfg.API.MaxPageSize)
	}
	if cfg.Security.SessionTimeout != 24*time.Hour {
		t.Errorf("Expected 24h session timeout, got %v", cfg.Security.SessionTimeout)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Expected info/json logging defaults, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DUCKDB_PATH", "/tmp/test.duckdb")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("HTTP_PORT override not applied, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("DUCKDB_PATH override not applied, got %s", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("LOG_LEVEL override not applied, got %s", cfg.Logging.Level)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != "https://a.example" {
		t.Errorf("CORS_ORIGINS not split on commas, got %v", cfg.Security.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "prod" }, "ENVIRONMENT"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "DUCKDB_PATH"},
		{"zero page size", func(c *Config) { c.API.DefaultPageSize = 0 }, "API_DEFAULT_PAGE_SIZE"},
		{"max below default", func(c *Config) { c.API.MaxPageSize = 5 }, "API_MAX_PAGE_SIZE"},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{
			"production requires secret",
			func(c *Config) { c.Server.Environment = "production" },
			"JWT_SECRET",
		},
		{
			"production rejects short secret",
			func(c *Config) {
				c.Server.Environment = "production"
				c.Security.JWTSecret = "short"
			},
			"at least 32",
		},
		{
			"production rejects placeholder secret",
			func(c *Config) {
				c.Server.Environment = "production"
				c.Security.JWTSecret = "changeme-changeme-changeme-changeme"
			},
			"placeholder",
		},
		{
			"production accepts strong secret",
			func(c *Config) {
				c.Server.Environment = "production"
				c.Security.JWTSecret = "zK8fP2mQ9xV4bN7cR1tY6wE3uI5oA0sD"
			},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
