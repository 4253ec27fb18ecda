// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"
	"time"

	"github.com/olegiv/newsdash/internal/cache"
)

func testCache(t *testing.T) cache.Cache {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// fixedClock returns a clock that can be advanced by the test.
func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestCacheKey(t *testing.T) {
	if got := cacheKey("zh", "  AI   News "); got != "zh:ai news" {
		t.Errorf("cacheKey = %q", got)
	}
	if cacheKey("en", "Go") != cacheKey("en", "go") {
		t.Error("cacheKey should ignore case")
	}
}

func TestJoinPrompt(t *testing.T) {
	if got := joinPrompt("a cat", "", "  ", "anime style"); got != "a cat, anime style" {
		t.Errorf("joinPrompt = %q", got)
	}
}

func TestLanguageName(t *testing.T) {
	if languageName("en") != "English" || languageName("zh") != "Simplified Chinese" {
		t.Error("unexpected language names")
	}
}
