// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

// resetEnv clears every NEWSDASH_ variable for the duration of the test.
func resetEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "NEWSDASH_") {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetEnv(t)
	t.Setenv("NEWSDASH_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/newsdash.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/newsdash.db")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.AIProvider != ProviderGemini {
		t.Errorf("AIProvider = %q, want %q", cfg.AIProvider, ProviderGemini)
	}
	if cfg.DefaultLanguage != "zh" {
		t.Errorf("DefaultLanguage = %q, want zh", cfg.DefaultLanguage)
	}
	if cfg.NewsRefreshSchedule != "*/30 * * * *" {
		t.Errorf("NewsRefreshSchedule = %q", cfg.NewsRefreshSchedule)
	}
	if cfg.UploadMaxBytes != 10<<20 {
		t.Errorf("UploadMaxBytes = %d, want %d", cfg.UploadMaxBytes, 10<<20)
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true without NEWSDASH_REDIS_URL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	resetEnv(t)
	t.Setenv("NEWSDASH_SESSION_SECRET", testSecret)
	t.Setenv("NEWSDASH_SERVER_HOST", "0.0.0.0")
	t.Setenv("NEWSDASH_SERVER_PORT", "3000")
	t.Setenv("NEWSDASH_ENV", "production")
	t.Setenv("NEWSDASH_AI_PROVIDER", "OpenAI")
	t.Setenv("NEWSDASH_DEFAULT_LANGUAGE", "EN")
	t.Setenv("NEWSDASH_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := cfg.ServerAddr(); got != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want 0.0.0.0:3000", got)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production")
	}
	if cfg.AIProvider != ProviderOpenAI {
		t.Errorf("AIProvider = %q, want %q", cfg.AIProvider, ProviderOpenAI)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want en", cfg.DefaultLanguage)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false with NEWSDASH_REDIS_URL set")
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"short secret", map[string]string{"NEWSDASH_SESSION_SECRET": "short"}},
		{"weak secret", map[string]string{"NEWSDASH_SESSION_SECRET": "change-me-to-32-byte-secret-key!"}},
		{"unknown provider", map[string]string{"NEWSDASH_SESSION_SECRET": testSecret, "NEWSDASH_AI_PROVIDER": "claude"}},
		{"unknown language", map[string]string{"NEWSDASH_SESSION_SECRET": testSecret, "NEWSDASH_DEFAULT_LANGUAGE": "fr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAAAAAA", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAAAAA1", true},
		{testSecret, true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
