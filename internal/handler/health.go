// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/newsdash/internal/cache"
	"github.com/olegiv/newsdash/internal/scheduler"
	"github.com/olegiv/newsdash/internal/shell"
	"github.com/olegiv/newsdash/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	shell     *shell.Shell
	readiness func() (translations, auth bool)
	cache     cache.Cache
	jobs      JobRunner
	startTime time.Time
}

// HealthConfig wires a HealthHandler. Cache and Jobs are optional.
type HealthConfig struct {
	DB    *sql.DB
	Shell *shell.Shell
	// Readiness reports translation and auth initialization separately.
	Readiness func() (translations, auth bool)
	Cache     cache.Cache
	Jobs      JobRunner
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg HealthConfig) *HealthHandler {
	return &HealthHandler{
		db:        cfg.DB,
		shell:     cfg.Shell,
		readiness: cfg.Readiness,
		cache:     cfg.Cache,
		jobs:      cfg.Jobs,
		startTime: time.Now(),
	}
}

// HealthStatus is the /healthz response.
type HealthStatus struct {
	Status             string              `json:"status"`
	Version            version.Info        `json:"version"`
	Uptime             string              `json:"uptime"`
	TranslationsLoaded bool                `json:"translationsLoaded"`
	AuthReady          bool                `json:"authReady"`
	Database           string              `json:"database"`
	Credential         string              `json:"credential"`
	CacheBackend       string              `json:"cacheBackend,omitempty"`
	Cache              *cache.Stats        `json:"cache,omitempty"`
	Jobs               []scheduler.JobInfo `json:"jobs,omitempty"`
}

// Health handles GET /healthz. It answers 503 while the dashboard is still
// initializing or the database is unreachable.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:     "ok",
		Version:    version.Get(),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Database:   h.checkDatabase(r.Context()),
		Credential: h.shell.Status().String(),
	}
	if h.readiness != nil {
		status.TranslationsLoaded, status.AuthReady = h.readiness()
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		status.Cache = &stats
	}
	if p, ok := h.cache.(cache.Pinger); ok {
		status.CacheBackend = "healthy"
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		if err := p.Ping(ctx); err != nil {
			status.CacheBackend = "unhealthy"
		}
		cancel()
	}
	if h.jobs != nil {
		status.Jobs = h.jobs.Jobs()
	}

	code := http.StatusOK
	switch {
	case status.Database != "healthy":
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	case !status.TranslationsLoaded || !status.AuthReady:
		status.Status = "starting"
		code = http.StatusServiceUnavailable
	case status.CacheBackend == "unhealthy":
		// Generation still works without the cache.
		status.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) string {
	if h.db == nil {
		return "unconfigured"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		return "unhealthy"
	}
	return "healthy"
}
