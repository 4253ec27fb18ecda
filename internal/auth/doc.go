// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth implements the dashboard's mock membership layer: password
// hashing, SQLite-backed users and the per-session auth state, including
// which dialog (login, register or pricing) is currently open.
package auth
