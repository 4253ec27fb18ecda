// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"

	"github.com/olegiv/newsdash/internal/i18n"
	"github.com/olegiv/newsdash/internal/model"
)

// languageName is the language instruction given to the model.
func languageName(lang string) string {
	if lang == i18n.LangEN {
		return "English"
	}
	return "Simplified Chinese"
}

// cacheKey joins parts into a cache key, normalizing case and whitespace.
func cacheKey(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(strings.Join(strings.Fields(p), " "))
	}
	return strings.Join(norm, ":")
}

// optionValue returns the preset's prompt fragment, or "" for unknown IDs.
func optionValue(options []model.Option, id string) string {
	if o, ok := model.FindOption(options, id); ok {
		return o.Value
	}
	return ""
}

// joinPrompt joins non-empty fragments with ", ".
func joinPrompt(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
