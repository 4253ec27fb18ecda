// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

// Localizer binds a Catalog to one request's language.
type Localizer struct {
	catalog *Catalog
	lang    string
}

// For returns a Localizer for lang, falling back to the default language
// when lang is not supported.
func (c *Catalog) For(lang string) Localizer {
	if !IsSupported(lang) {
		lang = c.defaultLang
	}
	return Localizer{catalog: c, lang: lang}
}

// T translates key in the bound language.
func (l Localizer) T(key string, params ...string) string {
	if l.catalog == nil {
		return key
	}
	return l.catalog.T(l.lang, key, params...)
}

// Language returns the bound language code.
func (l Localizer) Language() string {
	return l.lang
}

// Ready reports whether the underlying catalog has loaded.
func (l Localizer) Ready() bool {
	return l.catalog != nil && l.catalog.Ready()
}
