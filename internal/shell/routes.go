// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package shell

// Route paths.
const (
	PathHome             = "/"
	PathHotNews          = "/hot-news"
	PathTrends           = "/trends"
	PathTextToImage      = "/text-to-image"
	PathImageToImage     = "/image-to-image"
	PathArticleGenerator = "/article-generator"
	PathVideoTools       = "/video-tools"
	PathAutoPublish      = "/auto-publish"
	PathSettings         = "/settings"
	PathPricing          = "/pricing"
)

// Screen names the feature screen rendered in the outlet.
type Screen string

// Feature screens.
const (
	ScreenNews         Screen = "news"
	ScreenTrends       Screen = "trends"
	ScreenTextToImage  Screen = "text-to-image"
	ScreenImageToImage Screen = "image-to-image"
	ScreenArticles     Screen = "article-generator"
	ScreenVideo        Screen = "video-tools"
	ScreenPublish      Screen = "auto-publish"
	ScreenSettings     Screen = "settings"
	ScreenPricing      Screen = "pricing"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Path     string
	LabelKey string
	Icon     string
}

var navItems = [...]NavItem{
	{PathHotNews, "nav.hotNews", "fire"},
	{PathTrends, "nav.trends", "chart-bar"},
	{PathTextToImage, "nav.textToImage", "photo"},
	{PathImageToImage, "nav.imageToImage", "sparkles"},
	{PathArticleGenerator, "nav.articleGenerator", "document-text"},
	{PathVideoTools, "nav.videoTools", "video-camera"},
	{PathAutoPublish, "nav.autoPublish", "arrow-up-on-square"},
	{PathSettings, "nav.settings", "cog"},
}

// NavItems returns a copy of the sidebar table in display order.
func NavItems() []NavItem {
	items := navItems
	return items[:]
}

var routes = map[string]Screen{
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
}

// Paths returns every routed path.
func Paths() []string {
	return []string{
		PathHome, PathHotNews, PathTrends, PathTextToImage, PathImageToImage,
		PathArticleGenerator, PathVideoTools, PathAutoPublish, PathSettings, PathPricing,
	}
}

// ScreenFor maps a request path to its screen. Unknown paths get the news screen.
func ScreenFor(path string) Screen {
	if s, ok := routes[path]; ok {
		return s
	}
	return ScreenNews
}

// IsCurrent reports whether the sidebar item at itemPath is highlighted for
// currentPath. The home path highlights the hot news item; the two routes
// stay distinct everywhere else.
func IsCurrent(itemPath, currentPath string) bool {
	if itemPath == currentPath {
		return true
	}
	return currentPath == PathHome && itemPath == PathHotNews
}
