// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the dashboard's HTTP middleware: security
// headers, CSRF protection, request language, rate limiting and login
// lockout.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// Directive is a single Content-Security-Policy directive.
type Directive struct {
	Name  string
	Value string
}

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS and upgrade-insecure-requests.
	IsDevelopment bool

	CSP               []Directive
	HSTSMaxAge        int // seconds, 0 disables HSTS
	FrameOptions      string
	ReferrerPolicy    string
	PermissionsPolicy []string
}

// DefaultSecurityHeadersConfig returns the dashboard's header policy.
// Generated images are served as data: URLs and the trend chart is inline SVG,
// so img-src allows data: and blob:.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:  isDev,
		HSTSMaxAge:     31536000,
		FrameOptions:   "DENY",
		ReferrerPolicy: "strict-origin-when-cross-origin",
		CSP: []Directive{
			{"default-src", "'self'"},
			{"script-src", "'self'"},
			{"style-src", "'self' 'unsafe-inline'"},
			{"img-src", "'self' data: blob:"},
			{"font-src", "'self' data:"},
			{"connect-src", "'self'"},
			{"object-src", "'none'"},
			{"base-uri", "'self'"},
			{"form-action", "'self'"},
			{"frame-ancestors", "'none'"},
		},
		PermissionsPolicy: []string{
			"accelerometer=()",
			"browsing-topics=()",
			"camera=()",
			"geolocation=()",
			"microphone=()",
			"payment=()",
			"usb=()",
		},
	}
	if !isDev {
		cfg.CSP = append(cfg.CSP, Directive{Name: "upgrade-insecure-requests"})
	}
	return cfg
}

// buildCSP joins directives in order. A directive without a value is emitted
// as its bare name.
func buildCSP(directives []Directive) string {
	parts := make([]string, 0, len(directives))
	for _, d := range directives {
		parts = append(parts, strings.TrimSpace(d.Name+" "+d.Value))
	}
	return strings.Join(parts, "; ")
}

// SecurityHeaders returns a middleware that adds security headers to responses.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	headers := map[string]string{
		"X-Content-Type-Options":       "nosniff",
		"Cross-Origin-Opener-Policy":   "same-origin",
		"Cross-Origin-Resource-Policy": "same-origin",
	}
	if len(cfg.CSP) > 0 {
		headers["Content-Security-Policy"] = buildCSP(cfg.CSP)
	}
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		headers["Strict-Transport-Security"] = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge) + "; includeSubDomains"
	}
	if cfg.FrameOptions != "" {
		headers["X-Frame-Options"] = cfg.FrameOptions
	}
	if cfg.ReferrerPolicy != "" {
		headers["Referrer-Policy"] = cfg.ReferrerPolicy
	}
	if len(cfg.PermissionsPolicy) > 0 {
		headers["Permissions-Policy"] = strings.Join(cfg.PermissionsPolicy, ", ")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}
