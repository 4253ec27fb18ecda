// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/newsdash/internal/auth"
	"github.com/olegiv/newsdash/internal/logging"
	"github.com/olegiv/newsdash/internal/middleware"
	"github.com/olegiv/newsdash/internal/render"
	"github.com/olegiv/newsdash/internal/shell"
)

// AuthHandler handles login, registration, the modal layer and the
// language toggle. Every action redirects back to the form's "next" path.
type AuthHandler struct {
	auth *auth.Provider
	lp   *middleware.LoginProtection
	sm   *scs.SessionManager
	tr   render.Translator
	geo  middleware.CountryLookup
}

// NewAuthHandler creates an AuthHandler. lp and geo may be nil.
func NewAuthHandler(provider *auth.Provider, lp *middleware.LoginProtection, sm *scs.SessionManager, tr render.Translator, geo middleware.CountryLookup) *AuthHandler {
	return &AuthHandler{auth: provider, lp: lp, sm: sm, tr: tr, geo: geo}
}

func (h *AuthHandler) t(r *http.Request, key string, params ...string) string {
	return h.tr.T(middleware.LangFromRequest(r), key, params...)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	next := redirectTarget(r)
	username := formValue(r, "username")
	password := r.FormValue("password")

	if h.lp != nil {
		if locked, remaining := h.lp.IsAccountLocked(username); locked {
			flashError(w, r, h.sm, next, h.t(r, "auth.error.locked", "minutes", middleware.LockoutMinutes(remaining)))
			return
		}
	}

	user, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("login failed", "error", err)
			flashError(w, r, h.sm, next, h.t(r, "errors.internal"))
			return
		}
		client := middleware.DescribeClient(r, h.geo)
		slog.Warn("failed sign-in", append([]any{"category", logging.CategoryAuth, "username", username}, client.Attrs()...)...)
		if h.lp != nil {
			if locked, d := h.lp.RecordFailedAttempt(username); locked {
				flashError(w, r, h.sm, next, h.t(r, "auth.error.locked", "minutes", middleware.LockoutMinutes(d)))
				return
			}
		}
		flashError(w, r, h.sm, next, h.t(r, "auth.error.invalidCredentials"))
		return
	}

	if h.lp != nil {
		h.lp.RecordSuccessfulLogin(username)
	}
	client := middleware.DescribeClient(r, h.geo)
	slog.Info("signed in", append([]any{"category", logging.CategoryAuth, "username", user.Username}, client.Attrs()...)...)
	h.auth.CloseModal(r.Context())
	flashSuccess(w, r, h.sm, next, h.t(r, "auth.loginSuccess", "username", user.Username))
}

// Register handles POST /auth/register. Success logs the new user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	next := redirectTarget(r)
	password := r.FormValue("password")

	if password != r.FormValue("confirm_password") {
		flashError(w, r, h.sm, next, h.t(r, "auth.error.passwordMismatch"))
		return
	}

	user, err := h.auth.Register(r.Context(), auth.RegisterInput{
		Username: formValue(r, "username"),
		Email:    formValue(r, "email"),
		Password: password,
	})
	if err != nil {
		key := "errors.internal"
		for _, e := range errorKeys {
			if errors.Is(err, e.err) {
				key = e.key
				break
			}
		}
		if key == "errors.internal" {
			slog.Error("registration failed", "error", err)
		}
		flashError(w, r, h.sm, next, h.t(r, key))
		return
	}

	h.auth.CloseModal(r.Context())
	flashSuccess(w, r, h.sm, next, h.t(r, "auth.registerSuccess", "username", user.Username))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		slog.Error("logout failed", "error", err)
	}
	flashSuccess(w, r, h.sm, shell.PathHome, h.t(r, "auth.logoutSuccess"))
}

// OpenModal handles POST /modal/open. Unknown kinds are ignored.
func (h *AuthHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	if kind, ok := auth.ParseModalKind(r.FormValue("kind")); ok {
		if kind.IsOpen() {
			h.auth.OpenModal(r.Context(), kind)
		} else {
			h.auth.CloseModal(r.Context())
		}
	}
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

// CloseModal handles POST /modal/close.
func (h *AuthHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	h.auth.CloseModal(r.Context())
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

// SetLanguage handles POST /language. The choice is stored in the session
// and a cookie.
func (h *AuthHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	next := redirectTarget(r)
	lang := strings.ToLower(r.FormValue("lang"))

	if !middleware.SetLanguage(r.Context(), h.sm, w, lang) {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	if next == shell.PathSettings {
		flashSuccess(w, r, h.sm, next, h.tr.T(lang, "settings.language.saved"))
		return
	}
	slog.Debug("language switched", "lang", lang)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// MembershipHandler serves the pricing screen and the mock upgrade.
type MembershipHandler struct {
	layout *Layout
	auth   *auth.Provider
}

// NewMembershipHandler creates a MembershipHandler.
func NewMembershipHandler(layout *Layout, provider *auth.Provider) *MembershipHandler {
	return &MembershipHandler{layout: layout, auth: provider}
}

// Page handles GET /pricing.
func (h *MembershipHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.layout.Page(w, r, shell.ScreenPricing, nil)
}

// Upgrade handles POST /pricing/upgrade. Anonymous visitors get the login
// dialog instead.
func (h *MembershipHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	next := redirectTarget(r)
	ctx := r.Context()

	_, err := h.auth.Upgrade(ctx)
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		h.auth.OpenModal(ctx, auth.ModalLogin)
		flashError(w, r, h.layout.sm, next, h.layout.T(r, "membership.loginRequired"))
	case err != nil:
		slog.Error("upgrade failed", "error", err)
		flashError(w, r, h.layout.sm, next, h.layout.T(r, "errors.internal"))
	default:
		h.auth.CloseModal(ctx)
		flashSuccess(w, r, h.layout.sm, next, h.layout.T(r, "membership.upgradeSuccess"))
	}
}
