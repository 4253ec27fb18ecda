// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/newsdash/internal/cache"
	"github.com/olegiv/newsdash/internal/credential"
	"github.com/olegiv/newsdash/internal/scheduler"
	"github.com/olegiv/newsdash/internal/service"
	"github.com/olegiv/newsdash/internal/shell"
)

const recentEventsLimit = 20

// JobRunner lists and triggers background jobs.
type JobRunner interface {
	Jobs() []scheduler.JobInfo
	Trigger(name string) error
}

// SettingsHandler serves the settings screen.
type SettingsHandler struct {
	layout   *Layout
	creds    *credential.Store
	onChange func()
	events   *service.EventService
	jobs     JobRunner
	cache    cache.Cache
	backend  string
	provider string
}

// SettingsConfig wires a SettingsHandler.
type SettingsConfig struct {
	Credentials *credential.Store
	// OnCredentialChange runs after every key save or clear. The shell also
	// listens on the credential notifier; a store built without one relies on
	// this callback alone, and a repeated refresh is a single settings read.
	OnCredentialChange func()
	Events             *service.EventService
	Jobs               JobRunner
	Cache              cache.Cache
	CacheBackend       string
	Provider           string
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(layout *Layout, cfg SettingsConfig) *SettingsHandler {
	onChange := cfg.OnCredentialChange
	if onChange == nil {
		onChange = func() {}
	}
	return &SettingsHandler{
		layout:   layout,
		creds:    cfg.Credentials,
		onChange: onChange,
		events:   cfg.Events,
		jobs:     cfg.Jobs,
		cache:    cfg.Cache,
		backend:  cfg.CacheBackend,
		provider: cfg.Provider,
	}
}

// SettingsPage is the settings screen data.
type SettingsPage struct {
	Provider     string
	Status       credential.Status
	Masked       string
	CacheBackend string
	CacheStats   *cache.Stats
	Jobs         []scheduler.JobInfo
	Events       []service.Event
	Error        string
}

// Page handles GET /settings.
func (h *SettingsHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := SettingsPage{Provider: h.provider, Status: h.creds.Check(ctx), CacheBackend: h.backend}

	key, err := h.creds.Key(ctx)
	if err != nil {
		slog.Error("failed to read API key", "error", err)
	}
	data.Masked = credential.Mask(key)

	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		data.CacheStats = &stats
	}
	if h.jobs != nil {
		data.Jobs = h.jobs.Jobs()
	}
	if h.events != nil {
		if data.Events, err = h.events.Recent(ctx, recentEventsLimit); err != nil {
			slog.Error("failed to list events", "error", err)
		}
	}

	h.layout.Page(w, r, shell.ScreenSettings, data)
}

// SaveKey handles POST /settings/api-key.
func (h *SettingsHandler) SaveKey(w http.ResponseWriter, r *http.Request) {
	key := formValue(r, "api_key")
	if key == "" {
		flashError(w, r, h.layout.sm, shell.PathSettings, h.layout.T(r, "settings.apiKey.empty"))
		return
	}

	if err := h.creds.Set(r.Context(), key); err != nil {
		slog.Error("failed to save API key", "error", err)
		flashError(w, r, h.layout.sm, shell.PathSettings, h.layout.T(r, "errors.internal"))
		return
	}
	h.onChange()

	flashSuccess(w, r, h.layout.sm, shell.PathSettings, h.layout.T(r, "settings.apiKey.saved"))
}

// ClearKey handles POST /settings/api-key/clear.
func (h *SettingsHandler) ClearKey(w http.ResponseWriter, r *http.Request) {
	if err := h.creds.Clear(r.Context()); err != nil {
		slog.Error("failed to clear API key", "error", err)
		flashError(w, r, h.layout.sm, shell.PathSettings, h.layout.T(r, "errors.internal"))
		return
	}
	h.onChange()

	flashSuccess(w, r, h.layout.sm, shell.PathSettings, h.layout.T(r, "settings.apiKey.cleared"))
}

// RunJob handles POST /settings/jobs/{name}/run.
func (h *SettingsHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.jobs == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.jobs.Trigger(name); err != nil {
		flashError(w, r, h.layout.sm, shell.PathSettings, err.Error())
		return
	}
	flashSuccess(w, r, h.layout.sm, shell.PathSettings, h.layout.T(r, "settings.jobs.triggered", "name", name))
}

// ClearCache handles POST /settings/cache/clear. Cached news and trend
// results are dropped so the next visit asks the provider again.
func (h *SettingsHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.cache.Clear(r.Context()); err != nil {
		slog.Error("failed to clear result cache", "category", "cache", "error", err)
		flashError(w, r, h.layout.sm, shell.PathSettings, h.layout.T(r, "errors.internal"))
		return
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		sp.ResetStats()
	}
	flashSuccess(w, r, h.layout.sm, shell.PathSettings, h.layout.T(r, "settings.cache.cleared"))
}
