// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsdash/internal/auth"
	"github.com/olegiv/newsdash/internal/session"
	"github.com/olegiv/newsdash/internal/shell"
	"github.com/olegiv/newsdash/internal/testutil"
	"github.com/olegiv/newsdash/web"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: testutil.TestSessions(),
		Translator:     testutil.TestCatalog(t),
	})
	require.NoError(t, err)
	return r
}

func TestNew_ParsesEveryScreen(t *testing.T) {
	r := newTestRenderer(t)

	for _, p := range shell.Paths() {
		screen := string(shell.ScreenFor(p))
		assert.True(t, r.Has(screen), "missing template for screen %s", screen)
	}
	assert.True(t, r.Has("loading"))
}

func TestNew_ReportsParseErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/base.html": {Data: []byte(`{{define "base"}}{{template "body" .}}{{end}}`)},
		"layouts/app.html":  {Data: []byte(`{{define "body"}}{{template "content" .}}{{end}}`)},
		"pages/broken.html": {Data: []byte(`{{define "content"}}{{.Unclosed{{end}}`)},
	}
	_, err := New(Config{TemplatesFS: fsys})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestRender_LayoutAndTranslations(t *testing.T) {
	r := newTestRenderer(t)
	sm := r.sessionManager
	ctx := testutil.SessionContext(t, sm)
	session.PutFlash(ctx, sm, "saved!", "success")

	view := shell.View{
		Lang:        "en",
		Title:       "AI Trending Content Studio",
		CurrentPath: "/pricing",
		Screen:      shell.ScreenPricing,
		Banner:      &shell.Banner{Title: "API key not configured", Message: "Go to /settings"},
		Nav: []shell.NavLink{
			{Path: "/hot-news", Label: "Hot News", Icon: "fire"},
			{Path: "/settings", Label: "Settings", Icon: "cog"},
		},
		Actions: shell.Actions{ShowLogin: true, LoginLabel: "Log in", MembershipLabel: "Membership"},
		Toggle:  shell.LanguageToggle{Target: "zh", Label: "中文", Tooltip: "Chinese"},
		Modal:   &shell.Modal{Kind: auth.ModalLogin, Title: "Log in to your account"},
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pricing", nil).WithContext(ctx)
	require.NoError(t, r.Render(rr, req, "pricing", TemplateData{View: view}))

	body := rr.Body.String()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "Membership plans")
	assert.Contains(t, body, "Upgrade to Pro")
	assert.Equal(t, 1, strings.Count(body, `class="banner banner-warning"`))
	assert.Contains(t, body, "saved!")
	assert.Contains(t, body, `action="/auth/login"`)
	assert.NotContains(t, body, `action="/auth/register"`)
	assert.Contains(t, body, "中文")
	assert.NotContains(t, body, `action="/auth/logout"`)

	// The flash is consumed by the first render.
	rr = httptest.NewRecorder()
	require.NoError(t, r.Render(rr, req, "pricing", TemplateData{View: view}))
	assert.NotContains(t, rr.Body.String(), "saved!")
}

func TestRenderStatus_Loading(t *testing.T) {
	r := newTestRenderer(t)
	ctx := testutil.SessionContext(t, r.sessionManager)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	view := shell.View{Loading: true, Lang: "zh", LoadingText: "正在加载应用..."}
	require.NoError(t, r.RenderStatus(rr, req, http.StatusServiceUnavailable, "loading", TemplateData{View: view}))

	body := rr.Body.String()
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, body, "正在加载应用...")
	assert.Contains(t, body, `http-equiv="refresh"`)
	assert.NotContains(t, body, `class="sidebar"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)
	rr := httptest.NewRecorder()
	err := r.Render(rr, httptest.NewRequest(http.MethodGet, "/", nil), "missing", TemplateData{})
	assert.Error(t, err)
}

func TestTemplateData_T(t *testing.T) {
	catalog := testutil.TestCatalog(t)
	d := TemplateData{View: shell.View{Lang: "en"}, translator: catalog}
	assert.Equal(t, "Logged in as bob", d.T("auth.loggedInAs", "username", "bob"))

	assert.Equal(t, "auth.login", TemplateData{}.T("auth.login"))
}

func TestMarkdown_Sanitizes(t *testing.T) {
	got := string(Markdown("# Title\n\nHello **world**\n\n<script>alert(1)</script>"))
	assert.Contains(t, got, "<h1")
	assert.Contains(t, got, "<strong>world</strong>")
	assert.NotContains(t, got, "<script>")
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AAAA", string(imageURL("data:image/png;base64,AAAA")))
	assert.Equal(t, "#", string(imageURL("javascript:alert(1)")))
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, 3, 5, 14, 7, 0, 0, time.Local)
	assert.Equal(t, "2026年3月5日 14:07", formatDateTime(ts, "zh"))
	assert.Equal(t, "Mar 5, 2026 2:07 PM", formatDateTime(ts, "en"))
	assert.Empty(t, formatDateTime(time.Time{}, "en"))
}
