// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package shell

import "testing"

func TestScreenFor(t *testing.T) {
	tests := map[string]Screen{
		PathHome:             ScreenNews,
		PathHotNews:          ScreenNews,
		PathTrends:           ScreenTrends,
		PathTextToImage:      ScreenTextToImage,
		PathImageToImage:     ScreenImageToImage,
		PathArticleGenerator: ScreenArticles,
		PathVideoTools:       ScreenVideo,
		PathAutoPublish:      ScreenPublish,
		PathSettings:         ScreenSettings,
		PathPricing:          ScreenPricing,
		"/unknown":           ScreenNews,
		"":                   ScreenNews,
		"/settings/":         ScreenNews,
	}
	for path, want := range tests {
		if got := ScreenFor(path); got != want {
			t.Errorf("ScreenFor(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestIsCurrent(t *testing.T) {
	if !IsCurrent(PathHotNews, PathHome) {
		t.Error("home does not highlight hot news")
	}
	if IsCurrent(PathHome, PathHotNews) {
		t.Error("alias applied in reverse")
	}
	if IsCurrent(PathTrends, PathHome) {
		t.Error("home highlights trends")
	}
	if !IsCurrent(PathTrends, PathTrends) {
		t.Error("exact match not current")
	}
}

func TestNavItemsIsACopy(t *testing.T) {
	items := NavItems()
	items[0].Path = "/changed"
	if NavItems()[0].Path != PathHotNews {
		t.Error("NavItems exposes the shared table")
	}
	if len(items) != 8 {
		t.Errorf("len(NavItems()) = %d, want 8", len(items))
	}
}

func TestPathsAreRouted(t *testing.T) {
	for _, p := range Paths() {
		if _, ok := routes[p]; !ok {
			t.Errorf("path %s has no route", p)
		}
	}
	if len(Paths()) != len(routes) {
		t.Errorf("Paths() has %d entries, routes has %d", len(Paths()), len(routes))
	}
}
