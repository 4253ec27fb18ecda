// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package credential stores the generative AI API key and classifies it as
// present or missing.
package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olegiv/newsdash/internal/store"
)

// SettingKey is the settings row holding the API key.
const SettingKey = "ai_api_key"

// Status classifies the stored credential.
type Status int

const (
	// Missing is the zero value so an unchecked status shows the banner.
	Missing Status = iota
	Present
)

func (s Status) String() string {
	if s == Present {
		return "present"
	}
	return "missing"
}

// Checker reports the credential status. Check reads local configuration only.
type Checker interface {
	Check(ctx context.Context) Status
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) Status

// Check calls f.
func (f CheckerFunc) Check(ctx context.Context) Status {
	return f(ctx)
}

// Store reads and writes the API key in the settings table. Every change is
// announced on the notifier when one is set.
type Store struct {
	queries  *store.Queries
	notifier *Notifier
	logger   *slog.Logger
}

// NewStore creates a Store. notifier may be nil.
func NewStore(db *sql.DB, notifier *Notifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{queries: store.New(db), notifier: notifier, logger: logger}
}

func (s *Store) changed() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}

// Key returns the stored API key, or "" when none is configured.
func (s *Store) Key(ctx context.Context) (string, error) {
	setting, err := s.queries.GetSetting(ctx, SettingKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading api key: %w", err)
	}
	return strings.TrimSpace(setting.Value), nil
}

// Check implements Checker. Read errors count as missing.
func (s *Store) Check(ctx context.Context) Status {
	key, err := s.Key(ctx)
	if err != nil {
		s.logger.Error("credential check failed", "error", err)
		return Missing
	}
	if key == "" {
		return Missing
	}
	return Present
}

// Set stores key, replacing any existing one. A blank key clears it.
func (s *Store) Set(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.Clear(ctx)
	}
	if err := s.queries.UpsertSetting(ctx, store.UpsertSettingParams{
		Key:       SettingKey,
		Value:     key,
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}); err != nil {
		return fmt.Errorf("saving api key: %w", err)
	}
	s.logger.Info("api key updated", "category", "credential")
	s.changed()
	return nil
}

// Clear removes the stored key.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.queries.DeleteSetting(ctx, SettingKey); err != nil {
		return fmt.Errorf("clearing api key: %w", err)
	}
	s.logger.Info("api key cleared", "category", "credential")
	s.changed()
	return nil
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	n := utf8.RuneCountInString(key)
	if n == 0 {
		return ""
	}
	if n <= 8 {
		return strings.Repeat("•", n)
	}
	runes := []rune(key)
	return strings.Repeat("•", 8) + string(runes[n-4:])
}
