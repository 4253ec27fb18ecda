// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/olegiv/newsdash/internal/middleware"
	"github.com/olegiv/newsdash/internal/model"
	"github.com/olegiv/newsdash/internal/service"
	"github.com/olegiv/newsdash/internal/shell"
)

// NewsHandler serves the hot news and trends screens.
type NewsHandler struct {
	layout *Layout
	news   *service.NewsService
	trends *service.TrendService
}

// NewNewsHandler creates a NewsHandler.
func NewNewsHandler(layout *Layout, news *service.NewsService, trends *service.TrendService) *NewsHandler {
	return &NewsHandler{layout: layout, news: news, trends: trends}
}

// NewsPage is the hot news screen data.
type NewsPage struct {
	Topic  string
	Result model.NewsResult
	Cached bool
	Error  string
}

// News handles GET / and /hot-news, and every unmatched GET path.
// Results come from the cache when fresh.
func (h *NewsHandler) News(w http.ResponseWriter, r *http.Request) {
	data := NewsPage{Topic: formValue(r, "topic")}

	result, cached, err := h.news.HotNews(r.Context(), middleware.LangFromRequest(r), data.Topic)
	if err != nil {
		data.Error = h.layout.errorMessage(r, err)
	} else {
		data.Result = result
		data.Cached = cached
	}

	h.layout.Page(w, r, shell.ScreenNews, data)
}

// RefreshNews handles POST /hot-news/refresh. It bypasses the cache.
func (h *NewsHandler) RefreshNews(w http.ResponseWriter, r *http.Request) {
	topic := formValue(r, "topic")
	target := shell.PathHotNews
	if topic != "" {
		target += "?topic=" + url.QueryEscape(topic)
	}

	if _, err := h.news.Refresh(r.Context(), middleware.LangFromRequest(r), topic); err != nil {
		flashError(w, r, h.layout.sm, target, h.layout.errorMessage(r, err))
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// TrendsPage is the trend analysis screen data.
type TrendsPage struct {
	Topic  string
	Trend  *model.Trend
	Chart  template.HTML
	Cached bool
	Error  string
}

// Trends handles GET /trends. A topic in the query runs the analysis.
func (h *NewsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	data := TrendsPage{Topic: formValue(r, "topic")}

	if data.Topic != "" {
		trend, cached, err := h.trends.Analyze(r.Context(), middleware.LangFromRequest(r), data.Topic)
		if err != nil {
			data.Error = h.layout.errorMessage(r, err)
		} else {
			data.Trend = &trend
			data.Cached = cached
			// The chart escapes every label it embeds.
			data.Chart = template.HTML(service.TrendChartSVG(trend, //nolint:gosec
				h.layout.T(r, "trends.legendActual"),
				h.layout.T(r, "trends.legendPredicted"),
			))
		}
	}

	h.layout.Page(w, r, shell.ScreenTrends, data)
}
