// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package shell composes localization, auth and credential status into the
// dashboard's root layout: the loading gate, sidebar, credential banner,
// routed outlet and modal layer.
package shell

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/olegiv/newsdash/internal/auth"
	"github.com/olegiv/newsdash/internal/credential"
	"github.com/olegiv/newsdash/internal/i18n"
)

// Localization is the string table the shell reads.
type Localization interface {
	Ready() bool
	T(lang, key string, params ...string) string
}

// AuthState is the part of the auth provider the shell reads. Ready must
// agree with State's IsLoading but must not touch the session store.
type AuthState interface {
	Ready() bool
	State(ctx context.Context) auth.Session
}

// Shell holds the last credential status. Everything else it shows is read
// from its collaborators on each request.
type Shell struct {
	loc     Localization
	auth    AuthState
	checker credential.Checker

	status atomic.Int32
	seq    atomic.Uint64 // generation handed to each Refresh

	mu        sync.Mutex
	storedSeq uint64 // generation of the stored status, guarded by mu

	initOnce    sync.Once
	unsubscribe func()
}

// New creates a Shell and subscribes it to credential changes. notifier may be nil.
func New(loc Localization, authState AuthState, checker credential.Checker, notifier *credential.Notifier) *Shell {
	s := &Shell{
		loc:     loc,
		auth:    authState,
		checker: checker,
	}
	s.status.Store(int32(credential.Missing))
	if notifier != nil {
		s.unsubscribe = notifier.Subscribe(s.OnCredentialChange)
	}
	return s
}

// Close detaches the shell from the notifier.
func (s *Shell) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Refresh re-checks the credential. Checks are ordered by when they start:
// a check that finishes after a newer one has stored its result is dropped.
func (s *Shell) Refresh(ctx context.Context) {
	gen := s.seq.Add(1)
	status := s.checker.Check(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen > s.storedSeq {
		s.storedSeq = gen
		s.status.Store(int32(status))
	}
}

// OnCredentialChange is the zero-argument callback handed to the settings
// screen and subscribed to the notifier.
func (s *Shell) OnCredentialChange() {
	s.Refresh(context.Background())
}

// Status returns the result of the most recently started check that has finished.
func (s *Shell) Status() credential.Status {
	return credential.Status(s.status.Load())
}

// Ready reports whether both localization and auth have initialized. It
// reads only the two readiness flags.
func (s *Shell) Ready() bool {
	return s.loc.Ready() && s.auth.Ready()
}

// afterInit refreshes the credential status the first time the shell sees
// both collaborators ready. Concurrent first requests wait for that check.
func (s *Shell) afterInit(ctx context.Context) {
	s.initOnce.Do(func() { s.Refresh(ctx) })
}

// LoadingView is the view rendered while initialization is pending.
func (s *Shell) LoadingView(lang string) View {
	lang = viewLang(lang)
	return View{
		Loading:     true,
		Lang:        lang,
		LoadingText: s.loc.T(lang, "general.loadingApp"),
	}
}

func viewLang(lang string) string {
	if !i18n.IsSupported(lang) {
		return i18n.LangZH
	}
	return lang
}

// Request is what the shell needs to know about the current page.
type Request struct {
	Path string
	Lang string
}

// View builds the layout for one request. While initialization is pending
// only Loading and LoadingText are set.
func (s *Shell) View(ctx context.Context, req Request) View {
	lang := viewLang(req.Lang)
	t := func(key string, params ...string) string {
		return s.loc.T(lang, key, params...)
	}

	session := s.auth.State(ctx)
	if !s.loc.Ready() || session.IsLoading {
		return s.LoadingView(lang)
	}
	s.afterInit(ctx)

	v := View{
		Lang:        lang,
		Title:       t("appTitle"),
		CurrentPath: req.Path,
		Screen:      ScreenFor(req.Path),
		ActiveModal: session.ActiveModal,
	}

	if s.Status() == credential.Missing {
		v.Banner = &Banner{
			Title:   t("apiKeyMissing.titleUser"),
			Message: t("apiKeyMissing.messageUser", "settingsPath", PathSettings),
		}
	}

	for _, item := range navItems {
		v.Nav = append(v.Nav, NavLink{
			Path:    item.Path,
			Label:   t(item.LabelKey),
			Icon:    item.Icon,
			Current: IsCurrent(item.Path, req.Path),
		})
	}

	if session.IsAuthenticated && session.User != nil {
		v.User = session.User
		v.LoggedInAs = t("auth.loggedInAs", "username", session.User.Username)
		if session.User.IsPro() {
			v.ProBadge = t("auth.proMember")
		}
	}

	v.Actions = Actions{
		ShowLogin:       !session.IsAuthenticated,
		ShowRegister:    !session.IsAuthenticated,
		ShowLogout:      session.IsAuthenticated,
		LoginLabel:      t("auth.login"),
		RegisterLabel:   t("auth.register"),
		MembershipLabel: t("nav.membership"),
		LogoutLabel:     t("auth.logout"),
	}

	other := i18n.Other(lang)
	v.Toggle = LanguageToggle{
		Target:  other,
		Label:   i18n.NativeName(other),
		Tooltip: t("settings.language." + other),
	}

	if session.ActiveModal.IsOpen() {
		v.Modal = &Modal{Kind: session.ActiveModal, Title: t(modalTitleKey(session.ActiveModal))}
	}

	return v
}

func modalTitleKey(k auth.ModalKind) string {
	switch k {
	case auth.ModalLogin:
		return "auth.loginTitle"
	case auth.ModalRegister:
		return "auth.registerTitle"
	default:
		return "membership.title"
	}
}
