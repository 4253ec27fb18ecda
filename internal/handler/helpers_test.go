// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsdash/internal/ai"
	"github.com/olegiv/newsdash/internal/auth"
	"github.com/olegiv/newsdash/internal/cache"
	"github.com/olegiv/newsdash/internal/credential"
	"github.com/olegiv/newsdash/internal/imaging"
	"github.com/olegiv/newsdash/internal/middleware"
	"github.com/olegiv/newsdash/internal/render"
	"github.com/olegiv/newsdash/internal/scheduler"
	"github.com/olegiv/newsdash/internal/service"
	"github.com/olegiv/newsdash/internal/shell"
	"github.com/olegiv/newsdash/internal/testutil"
	"github.com/olegiv/newsdash/web"
)

// testEnv is a fully wired dashboard served over a real listener.
type testEnv struct {
	server   *httptest.Server
	client   *http.Client
	db       *sql.DB
	sm       *scs.SessionManager
	fake     *ai.FakeProvider
	auth     *auth.Provider
	creds    *credential.Store
	articles *service.ArticleService
	lp       *middleware.LoginProtection
}

type envOptions struct {
	// skipAuthInit leaves the auth provider loading.
	skipAuthInit bool
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, envOptions{})
}

func newTestEnvWith(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	logger := testutil.TestLoggerSilent()

	db := testutil.TestDB(t)
	sm := scs.New()
	catalog := testutil.TestCatalog(t)

	provider := auth.NewProvider(db, sm, logger)
	if !opts.skipAuthInit {
		require.NoError(t, provider.Init(context.Background()))
	}

	notifier := credential.NewNotifier()
	creds := credential.NewStore(db, notifier, logger)
	sh := shell.New(catalog, provider, creds, notifier)
	t.Cleanup(sh.Close)

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: sm,
		Translator:     catalog,
	})
	require.NoError(t, err)

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = c.Close() })

	fake := &ai.FakeProvider{}
	images := service.NewImageService(fake, imaging.NewProcessor(1<<20, imaging.DefaultMaxDimension))
	articles := service.NewArticleService(fake, db, logger)
	publish := service.NewPublishService(db, logger)
	events := service.NewEventService(db)

	jobs := scheduler.New(logger)
	require.NoError(t, jobs.Add(scheduler.PruneEventsJob(events, service.DefaultEventRetention)))
	t.Cleanup(jobs.Stop)

	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig(), catalog)
	t.Cleanup(lp.Stop)

	layout := NewLayout(sh, renderer, catalog, sm)
	h := &Handlers{
		Layout:   layout,
		News:     NewNewsHandler(layout, service.NewNewsService(fake, c, time.Hour, logger), service.NewTrendService(fake, c, time.Hour, logger)),
		Images:   NewImageHandler(layout, images, 1<<20),
		Articles: NewArticleHandler(layout, articles, provider),
		Video:    NewVideoHandler(layout, service.NewVideoService(fake), images, 1<<20),
		Publish:  NewPublishHandler(layout, publish, articles),
		Settings: NewSettingsHandler(layout, SettingsConfig{
			Credentials:        creds,
			OnCredentialChange: sh.OnCredentialChange,
			Events:             events,
			Jobs:               jobs,
			Cache:              c,
			CacheBackend:       cache.BackendMemory,
			Provider:           "gemini",
		}),
		Auth:       NewAuthHandler(provider, lp, sm, catalog, nil),
		Membership: NewMembershipHandler(layout, provider),
		Health: NewHealthHandler(HealthConfig{
			DB:        db,
			Shell:     sh,
			Readiness: func() (bool, bool) { return catalog.Ready(), provider.Ready() },
			Cache:     c,
			Jobs:      jobs,
		}),
	}

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.Language(catalog, sm))
	h.Routes(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testEnv{
		server:   server,
		client:   client,
		db:       db,
		sm:       sm,
		fake:     fake,
		auth:     provider,
		creds:    creds,
		articles: articles,
		lp:       lp,
	}
}

// do sends req in English and returns the response with its body read.
func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	req.Header.Set("Accept-Language", "en")

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	require.NoError(t, err)
	return e.do(t, req)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

// postMultipart sends fields plus an optional file under fileField.
func (e *testEnv) postMultipart(t *testing.T, path string, fields map[string]string, fileField string, file []byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile(fileField, "upload.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(t, req)
}

// follow GETs the Location of a redirect response.
func (e *testEnv) follow(t *testing.T, resp *http.Response) (*http.Response, string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "expected a redirect")
	return e.get(t, resp.Header.Get("Location"))
}
