// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/newsdash/internal/middleware"
	"github.com/olegiv/newsdash/internal/model"
	"github.com/olegiv/newsdash/internal/service"
	"github.com/olegiv/newsdash/internal/shell"
	"github.com/olegiv/newsdash/internal/util"
)

// savedArticlesLimit caps the saved list on the article and publish screens.
const savedArticlesLimit = 50

// ArticleHandler serves the article generator screen.
type ArticleHandler struct {
	layout    *Layout
	articles  *service.ArticleService
	authState shell.AuthState
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(layout *Layout, articles *service.ArticleService, authState shell.AuthState) *ArticleHandler {
	return &ArticleHandler{layout: layout, articles: articles, authState: authState}
}

// ArticlePage is the article generator screen data.
type ArticlePage struct {
	Topic    string
	Style    SelectField
	Current  *model.GeneratedArticle
	Articles []model.GeneratedArticle
	Error    string
}

func (h *ArticleHandler) page(r *http.Request, topic, style string) ArticlePage {
	data := ArticlePage{
		Topic: topic,
		Style: h.layout.optionSelect(r, "platform_style", model.PlatformStyles, style, "general"),
	}
	articles, err := h.articles.List(r.Context(), savedArticlesLimit)
	if err != nil {
		slog.Error("failed to list articles", "error", err)
	}
	data.Articles = articles
	return data
}

// Page handles GET /article-generator. ?id selects a saved article.
func (h *ArticleHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "", "")

	if id := r.URL.Query().Get("id"); id != "" {
		a, err := h.articles.Get(r.Context(), id)
		if err != nil {
			data.Error = h.layout.errorMessage(r, err)
		} else {
			data.Current = &a
		}
	} else if len(data.Articles) > 0 {
		data.Current = &data.Articles[0]
	}

	h.layout.Page(w, r, shell.ScreenArticles, data)
}

// Generate handles POST /article-generator. The new article is stored and
// the browser is sent to it.
func (h *ArticleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	topic := formValue(r, "topic")
	style := formValue(r, "platform_style")

	in := service.GenerateInput{
		Topic:         topic,
		PlatformStyle: style,
		Language:      middleware.LangFromRequest(r),
	}
	if st := h.authState.State(r.Context()); st.User != nil {
		in.UserID = st.User.ID
	}

	a, err := h.articles.Generate(r.Context(), in)
	if err != nil {
		data := h.page(r, topic, style)
		data.Error = h.layout.errorMessage(r, err)
		h.layout.Page(w, r, shell.ScreenArticles, data)
		return
	}

	http.Redirect(w, r, shell.PathArticleGenerator+"?id="+url.QueryEscape(a.ID), http.StatusSeeOther)
}

// Delete handles POST /article-generator/{id}/delete.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.articles.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, service.ErrNotFound):
		flashError(w, r, h.layout.sm, shell.PathArticleGenerator, h.layout.T(r, "article.notFound"))
	case err != nil:
		slog.Error("failed to delete article", "error", err)
		flashError(w, r, h.layout.sm, shell.PathArticleGenerator, h.layout.T(r, "errors.internal"))
	default:
		flashSuccess(w, r, h.layout.sm, shell.PathArticleGenerator, h.layout.T(r, "article.deleted"))
	}
}

// Download handles GET /article-generator/{id}/download as a Markdown file.
func (h *ArticleHandler) Download(w http.ResponseWriter, r *http.Request) {
	a, err := h.articles.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logAndInternalError(w, "failed to load article", "error", err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+util.Filename(a.Title, "article", ".md")+`"`)
	_, _ = w.Write([]byte(service.Markdown(a)))
}
