// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import "github.com/olegiv/newsdash/internal/store"

// Membership tiers.
const (
	TierFree = "free"
	TierPro  = "pro"
)

// User is the read-only view of an account exposed to handlers and templates.
type User struct {
	ID             string
	Username       string
	Email          string
	MembershipTier string
}

// IsPro reports whether the user has the pro membership.
func (u User) IsPro() bool {
	return u.MembershipTier == TierPro
}

func userFromStore(u store.User) User {
	return User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		MembershipTier: u.MembershipTier,
	}
}

// Session is one browser session's auth state.
type Session struct {
	IsAuthenticated bool
	User            *User
	IsLoading       bool
	ActiveModal     ModalKind
}
