// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the dashboard's string tables and language matching.
//
// A Catalog is created once in main and handed to the components that need
// it. Loading happens in the background; until it finishes Ready reports
// false and lookups return the key itself.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Supported language codes.
const (
	LangZH = "zh"
	LangEN = "en"
)

// SupportedLanguages lists the UI languages in toggle order.
var SupportedLanguages = []string{LangZH, LangEN}

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Config configures a Catalog.
type Config struct {
	// FS holds locales/<lang>/messages.json. Defaults to the embedded tables.
	FS              fs.FS
	DefaultLanguage string
	Logger          *slog.Logger
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	fsys         fs.FS
	logger       *slog.Logger
	ready        atomic.Bool
}

// New creates an empty catalog. Call Load or LoadAsync to fill it.
func New(cfg Config) *Catalog {
	if cfg.FS == nil {
		cfg.FS = localesFS
	}
	if !IsSupported(cfg.DefaultLanguage) {
		cfg.DefaultLanguage = LangZH
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(lang))
	}

	return &Catalog{
		translations: make(map[string]map[string]string),
		matcher:      language.NewMatcher(tags),
		supported:    tags,
		defaultLang:  strings.ToLower(cfg.DefaultLanguage),
		fsys:         cfg.FS,
		logger:       cfg.Logger,
	}
}

// Load reads every supported language table and marks the catalog ready.
func (c *Catalog) Load() error {
	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("loading language %s: %w", lang, err)
		}
	}
	c.ready.Store(true)
	c.logger.Info("translations loaded", "languages", SupportedLanguages)
	return nil
}

// LoadAsync runs Load in the background. The returned channel receives the
// result and is then closed. A failed load leaves the catalog not ready.
func (c *Catalog) LoadAsync() <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := c.Load()
		if err != nil {
			c.logger.Error("translations failed to load", "error", err)
		}
		done <- err
	}()
	return done
}

// Ready reports whether the string tables have finished loading.
func (c *Catalog) Ready() bool {
	return c.ready.Load()
}

// DefaultLanguage returns the configured fallback language.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := fs.ReadFile(c.fsys, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	table := make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		table[msg.ID] = msg.Translation
	}

	c.mu.Lock()
	c.translations[lang] = table
	c.mu.Unlock()

	c.logger.Debug("loaded translations", "language", lang, "count", len(table))
	return nil
}

// T translates key into lang. Params are name/value pairs substituted for
// {name} placeholders. Missing keys fall back to the default language, then
// to the key itself.
func (c *Catalog) T(lang, key string, params ...string) string {
	c.mu.RLock()
	translation, ok := c.translations[lang][key]
	if !ok && lang != c.defaultLang {
		translation, ok = c.translations[c.defaultLang][key]
	}
	c.mu.RUnlock()

	if !ok {
		return key
	}
	return interpolate(translation, params)
}

// interpolate replaces {name} placeholders. A trailing unpaired param is ignored.
func interpolate(s string, params []string) string {
	if len(params) < 2 {
		return s
	}
	pairs := make([]string, 0, len(params))
	for i := 0; i+1 < len(params); i += 2 {
		pairs = append(pairs, "{"+params[i]+"}", params[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// TranslationCount returns the number of translations loaded for a language.
func (c *Catalog) TranslationCount(lang string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.translations[lang])
}

// MatchLanguage finds the best supported language for an Accept-Language
// header or a bare language code.
func (c *Catalog) MatchLanguage(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return c.defaultLang
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := c.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(c.supported) {
		return c.defaultLang
	}
	return SupportedLanguages[idx]
}

// IsSupported checks if a language code is supported.
func IsSupported(lang string) bool {
	lang = strings.ToLower(lang)
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return true
		}
	}
	return false
}

// Other returns the language the toggle switches to from lang.
func Other(lang string) string {
	if lang == LangZH {
		return LangEN
	}
	return LangZH
}

// NativeName returns the language's own name, used as the toggle label.
func NativeName(lang string) string {
	if lang == LangZH {
		return "中文"
	}
	return "English"
}
