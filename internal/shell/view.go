// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package shell

import "github.com/olegiv/newsdash/internal/auth"

// View is the resolved layout handed to the templates.
type View struct {
	Loading     bool
	LoadingText string

	Lang        string
	Title       string
	CurrentPath string
	Screen      Screen

	Banner *Banner
	Nav    []NavLink

	User       *auth.User
	LoggedInAs string
	ProBadge   string

	Actions Actions
	Toggle  LanguageToggle

	ActiveModal auth.ModalKind
	Modal       *Modal
}

// Banner is the credential-missing warning.
type Banner struct {
	Title   string
	Message string
}

// NavLink is a localized sidebar entry.
type NavLink struct {
	Path    string
	Label   string
	Icon    string
	Current bool
}

// Actions are the sidebar buttons below the navigation.
type Actions struct {
	ShowLogin    bool
	ShowRegister bool
	ShowLogout   bool

	LoginLabel      string
	RegisterLabel   string
	MembershipLabel string
	LogoutLabel     string
}

// LanguageToggle switches to Target. Label is Target's native name.
type LanguageToggle struct {
	Target  string
	Label   string
	Tooltip string
}

// Modal is the open dialog.
type Modal struct {
	Kind  auth.ModalKind
	Title string
}

// CurrentCount returns how many nav links are highlighted.
func (v View) CurrentCount() int {
	n := 0
	for _, l := range v.Nav {
		if l.Current {
			n++
		}
	}
	return n
}

// ModalOpen reports whether the dialog k is showing.
func (v View) ModalOpen(k auth.ModalKind) bool {
	return v.Modal != nil && v.Modal.Kind == k
}
