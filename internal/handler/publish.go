// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/olegiv/newsdash/internal/model"
	"github.com/olegiv/newsdash/internal/service"
	"github.com/olegiv/newsdash/internal/shell"
)

// scheduleLayout is the datetime-local input format.
const scheduleLayout = "2006-01-02T15:04"

const recentJobsLimit = 50

// PublishHandler serves the auto-publish screen.
type PublishHandler struct {
	layout   *Layout
	publish  *service.PublishService
	articles *service.ArticleService
}

// NewPublishHandler creates a PublishHandler.
func NewPublishHandler(layout *Layout, publish *service.PublishService, articles *service.ArticleService) *PublishHandler {
	return &PublishHandler{layout: layout, publish: publish, articles: articles}
}

// PublishPage is the auto-publish screen data.
type PublishPage struct {
	Articles   []model.GeneratedArticle
	ArticleID  string
	Platforms  []Choice
	ScheduleAt string
	Jobs       []model.PublishStatus
	Error      string
}

func (h *PublishHandler) page(r *http.Request, articleID string, selected []string, scheduleAt string) PublishPage {
	data := PublishPage{ArticleID: articleID, ScheduleAt: scheduleAt}
	ctx := r.Context()

	var err error
	if data.Articles, err = h.articles.List(ctx, savedArticlesLimit); err != nil {
		slog.Error("failed to list articles", "error", err)
	}
	if data.Jobs, err = h.publish.Jobs(ctx, recentJobsLimit); err != nil {
		slog.Error("failed to list publish jobs", "error", err)
	}
	for _, p := range model.PublishPlatforms {
		data.Platforms = append(data.Platforms, Choice{
			ID:      p.ID,
			Label:   h.layout.T(r, p.NameKey),
			Checked: slices.Contains(selected, p.ID),
		})
	}
	return data
}

// Page handles GET /auto-publish. ?article preselects an article.
func (h *PublishHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.layout.Page(w, r, shell.ScreenPublish, h.page(r, r.URL.Query().Get("article"), nil, ""))
}

// Submit handles POST /auto-publish. An empty schedule publishes now.
func (h *PublishHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	articleID := formValue(r, "article_id")
	platforms := r.PostForm["platforms"]
	scheduleAt := formValue(r, "schedule_at")

	in := service.PublishInput{ArticleID: articleID, Platforms: platforms}
	if scheduleAt != "" {
		at, err := time.ParseInLocation(scheduleLayout, scheduleAt, time.Local)
		if err != nil {
			data := h.page(r, articleID, platforms, scheduleAt)
			data.Error = h.layout.T(r, "publish.invalidTime")
			h.layout.Page(w, r, shell.ScreenPublish, data)
			return
		}
		in.ScheduledAt = at
	}

	jobs, err := h.publish.Submit(r.Context(), in)
	if err != nil {
		data := h.page(r, articleID, platforms, scheduleAt)
		data.Error = h.layout.errorMessage(r, err)
		h.layout.Page(w, r, shell.ScreenPublish, data)
		return
	}

	slog.Debug("publish submitted", "article", articleID, "jobs", len(jobs))
	count := len(slices.Compact(slices.Sorted(slices.Values(platforms))))
	flashSuccess(w, r, h.layout.sm, shell.PathAutoPublish, h.layout.T(r, "publish.queued", "count", strconv.Itoa(count)))
}
