// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/newsdash/internal/i18n"
	"github.com/olegiv/newsdash/internal/session"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyLanguage holds the resolved UI language code.
const ContextKeyLanguage ContextKey = "language"

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "newsdash_lang"

// Translator looks up localized strings. *i18n.Catalog implements it.
type Translator interface {
	T(lang, key string, params ...string) string
}

// Language creates middleware that resolves the UI language.
// Priority order:
// 1. Session value set by the language toggle
// 2. Language cookie, which survives session expiry
// 3. Accept-Language header
// 4. Catalog default language
//
// The session manager's LoadAndSave must run before this middleware.
func Language(catalog *i18n.Catalog, sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolveLanguage(r, catalog, sm)
			ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLanguage(r *http.Request, catalog *i18n.Catalog, sm *scs.SessionManager) string {
	if lang := strings.ToLower(sm.GetString(r.Context(), session.KeyLanguage)); i18n.IsSupported(lang) {
		return lang
	}
	if cookie, err := r.Cookie(LanguageCookieName); err == nil {
		if lang := strings.ToLower(cookie.Value); i18n.IsSupported(lang) {
			return lang
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return catalog.MatchLanguage(accept)
	}
	return catalog.DefaultLanguage()
}

// GetLang returns the language stored by Language, or zh when absent.
func GetLang(ctx context.Context) string {
	if lang, ok := ctx.Value(ContextKeyLanguage).(string); ok {
		return lang
	}
	return i18n.LangZH
}

// LangFromRequest is GetLang for a request.
func LangFromRequest(r *http.Request) string {
	return GetLang(r.Context())
}

// SetLanguage stores lang in the session and the preference cookie.
// Unsupported codes are ignored and reported as false.
func SetLanguage(ctx context.Context, sm *scs.SessionManager, w http.ResponseWriter, lang string) bool {
	lang = strings.ToLower(lang)
	if !i18n.IsSupported(lang) {
		return false
	}
	sm.Put(ctx, session.KeyLanguage, lang)
	SetLanguageCookie(w, lang)
	return true
}

// SetLanguageCookie sets the language preference cookie.
func SetLanguageCookie(w http.ResponseWriter, langCode string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    langCode,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
