// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for newsdash.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/newsdash/internal/i18n"
	"github.com/olegiv/newsdash/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a logger that discards everything.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a migrated SQLite database in the test's temp directory.
// It is closed when the test finishes.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "newsdash-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// TestSessions returns a session manager backed by the in-memory store.
func TestSessions() *scs.SessionManager {
	return scs.New()
}

// SessionContext returns a context carrying a fresh, empty session.
func SessionContext(t *testing.T, sm *scs.SessionManager) context.Context {
	t.Helper()

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return ctx
}

// TestCatalog returns a loaded translation catalog with zh as the default.
func TestCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()

	c := i18n.New(i18n.Config{DefaultLanguage: i18n.LangZH, Logger: TestLoggerSilent()})
	if err := c.Load(); err != nil {
		t.Fatalf("loading translations: %v", err)
	}
	return c
}
