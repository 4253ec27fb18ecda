// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the dashboard's HTTP handlers. Every feature
// screen renders inside the shell layout; actions redirect back with a flash
// message or re-render the screen with an inline error.
package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/newsdash/internal/middleware"
	"github.com/olegiv/newsdash/internal/render"
	"github.com/olegiv/newsdash/internal/shell"
)

// Layout renders screens inside the shell.
type Layout struct {
	shell    *shell.Shell
	renderer *render.Renderer
	tr       render.Translator
	sm       *scs.SessionManager
}

// NewLayout creates a Layout.
func NewLayout(sh *shell.Shell, renderer *render.Renderer, tr render.Translator, sm *scs.SessionManager) *Layout {
	return &Layout{shell: sh, renderer: renderer, tr: tr, sm: sm}
}

// T translates key into the request's language.
func (l *Layout) T(r *http.Request, key string, params ...string) string {
	return l.tr.T(middleware.LangFromRequest(r), key, params...)
}

func (l *Layout) view(r *http.Request) shell.View {
	return l.shell.View(r.Context(), shell.Request{
		Path: r.URL.Path,
		Lang: middleware.LangFromRequest(r),
	})
}

// Gate renders the loading page with 503 until translations and auth are
// ready. The page refreshes itself, so the browser lands on the requested
// screen once initialization finishes.
func (l *Layout) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.shell.Ready() {
			l.renderLoading(w, r, l.shell.LoadingView(middleware.LangFromRequest(r)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Layout) renderLoading(w http.ResponseWriter, r *http.Request, v shell.View) {
	w.Header().Set("Retry-After", "1")
	if err := l.renderer.RenderStatus(w, r, http.StatusServiceUnavailable, "loading", render.TemplateData{View: v}); err != nil {
		logAndInternalError(w, "failed to render loading page", "error", err)
	}
}

// Page renders screen with status 200.
func (l *Layout) Page(w http.ResponseWriter, r *http.Request, screen shell.Screen, data any) {
	l.PageStatus(w, r, http.StatusOK, screen, data)
}

// PageStatus renders screen inside the shell layout.
func (l *Layout) PageStatus(w http.ResponseWriter, r *http.Request, status int, screen shell.Screen, data any) {
	v := l.view(r)
	if v.Loading {
		l.renderLoading(w, r, v)
		return
	}

	title := ""
	for _, link := range v.Nav {
		if link.Current {
			title = link.Label
			break
		}
	}

	err := l.renderer.RenderStatus(w, r, status, string(screen), render.TemplateData{
		View:  v,
		Title: title,
		Data:  data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render page", "screen", screen, "error", err)
	}
}
