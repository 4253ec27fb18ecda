// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig configures cross-origin form protection. filippo.io/csrf/gorilla
// checks Fetch metadata headers instead of tokens, so forms carry no hidden field.
type CSRFConfig struct {
	AuthKey []byte // 32 bytes, the session secret

	// TrustedOrigins are host:port values allowed to post cross-origin.
	TrustedOrigins []string

	// Translator localizes the rejection page. Nil falls back to English.
	Translator Translator

	// ErrorHandler replaces the default rejection page.
	ErrorHandler http.Handler
}

// DefaultCSRFConfig returns a CSRFConfig. In development the local addresses
// on port are trusted so the dashboard works behind a dev proxy.
func DefaultCSRFConfig(authKey []byte, isDev bool, port int, tr Translator) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey, Translator: tr}
	if isDev {
		p := strconv.Itoa(port)
		cfg.TrustedOrigins = []string{"localhost:" + p, "127.0.0.1:" + p}
	}
	return cfg
}

// CSRF returns a middleware that rejects cross-site state-changing requests.
// Language must run first for the rejection page to be localized.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	errorHandler := cfg.ErrorHandler
	if errorHandler == nil {
		errorHandler = csrfRejected(cfg.Translator)
	}

	opts := []csrf.Option{csrf.ErrorHandler(errorHandler)}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

// CSRFFailureReason returns why the request was rejected, or "unknown".
func CSRFFailureReason(r *http.Request) string {
	if reason := csrf.FailureReason(r); reason != nil {
		return reason.Error()
	}
	return "unknown"
}

func csrfRejected(tr Translator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("CSRF validation failed",
			"reason", CSRFFailureReason(r),
			"method", r.Method,
			"path", r.URL.Path,
			"origin", r.Header.Get("Origin"),
			"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
		)
		msg := "The page has expired. Refresh and try again."
		if tr != nil {
			msg = tr.T(LangFromRequest(r), "errors.csrf")
		}
		http.Error(w, msg, http.StatusForbidden)
	})
}

// SkipCSRF exempts exact paths from CSRF checks.
func SkipCSRF(paths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				r = csrf.UnsafeSkipCheck(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}
