// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package shell

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/olegiv/newsdash/internal/auth"
	"github.com/olegiv/newsdash/internal/credential"
	"github.com/olegiv/newsdash/internal/i18n"
	"github.com/olegiv/newsdash/internal/testutil"
)

type fakeLoc struct {
	ready bool
}

func (f fakeLoc) Ready() bool { return f.ready }

func (f fakeLoc) T(lang, key string, params ...string) string {
	return lang + ":" + key + strings.Join(params, ",")
}

type fakeAuth struct {
	mu         sync.Mutex
	session    auth.Session
	stateCalls int
	readyCalls int
}

func (f *fakeAuth) State(context.Context) auth.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stateCalls++
	return f.session
}

func (f *fakeAuth) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readyCalls++
	return !f.session.IsLoading
}

func (f *fakeAuth) set(s auth.Session) {
	f.mu.Lock()
	f.session = s
	f.mu.Unlock()
}

type fakeChecker struct {
	mu     sync.Mutex
	status credential.Status
	calls  int
}

func (f *fakeChecker) Check(context.Context) credential.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.status
}

func (f *fakeChecker) set(s credential.Status) {
	f.mu.Lock()
	f.status = s
	f.mu.Unlock()
}

func TestView_LoadingGate(t *testing.T) {
	tests := []struct {
		name      string
		locReady  bool
		authState auth.Session
		loading   bool
	}{
		{"both pending", false, auth.Session{IsLoading: true}, true},
		{"translations pending", false, auth.Session{}, true},
		{"auth pending", true, auth.Session{IsLoading: true}, true},
		{"ready", true, auth.Session{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &fakeChecker{}
			s := New(fakeLoc{ready: tt.locReady}, &fakeAuth{session: tt.authState}, checker, nil)

			if s.Ready() == tt.loading {
				t.Errorf("Ready() = %v, want %v", s.Ready(), !tt.loading)
			}
			v := s.View(context.Background(), Request{Path: PathHome, Lang: i18n.LangEN})
			if v.Loading != tt.loading {
				t.Fatalf("Loading = %v, want %v", v.Loading, tt.loading)
			}
			if !tt.loading {
				return
			}
			if v.Banner != nil || v.Nav != nil || v.Modal != nil || v.Title != "" || v.User != nil {
				t.Errorf("loading view rendered more than the indicator: %+v", v)
			}
			if v.LoadingText == "" {
				t.Error("loading view has no text")
			}
			if checker.calls != 0 {
				t.Errorf("credential checked %d times before init", checker.calls)
			}
		})
	}
}

func TestReady_SkipsSessionLookup(t *testing.T) {
	authState := &fakeAuth{}
	s := New(fakeLoc{ready: true}, authState, &fakeChecker{}, nil)

	if !s.Ready() {
		t.Fatal("Ready() = false with both collaborators ready")
	}
	if authState.stateCalls != 0 {
		t.Errorf("Ready() loaded the session %d times", authState.stateCalls)
	}

	v := s.LoadingView("fr")
	if !v.Loading || v.Lang != i18n.LangZH || v.LoadingText != "zh:general.loadingApp" {
		t.Errorf("LoadingView = %+v", v)
	}
}

func TestView_RefreshesOnceAfterInit(t *testing.T) {
	checker := &fakeChecker{status: credential.Present}
	a := &fakeAuth{session: auth.Session{IsLoading: true}}
	s := New(fakeLoc{ready: true}, a, checker, nil)
	ctx := context.Background()

	s.View(ctx, Request{Path: PathHome})
	if checker.calls != 0 {
		t.Fatalf("checked while loading")
	}

	a.set(auth.Session{})
	for range 3 {
		v := s.View(ctx, Request{Path: PathHome})
		if v.Banner != nil {
			t.Error("banner shown with a present credential")
		}
	}
	if checker.calls != 1 {
		t.Errorf("Check called %d times, want 1", checker.calls)
	}
}

func TestView_BannerIffMissing(t *testing.T) {
	for _, status := range []credential.Status{credential.Missing, credential.Present} {
		t.Run(status.String(), func(t *testing.T) {
			s := New(fakeLoc{ready: true}, &fakeAuth{}, &fakeChecker{status: status}, nil)
			v := s.View(context.Background(), Request{Path: PathTrends, Lang: i18n.LangEN})

			if (v.Banner != nil) != (status == credential.Missing) {
				t.Fatalf("Banner = %+v for status %s", v.Banner, status)
			}
			if v.Banner != nil && !strings.Contains(v.Banner.Message, PathSettings) {
				t.Errorf("banner message %q does not carry the settings path", v.Banner.Message)
			}
		})
	}
}

func TestView_ExactlyOneCurrentNavItem(t *testing.T) {
	s := New(fakeLoc{ready: true}, &fakeAuth{}, &fakeChecker{}, nil)
	ctx := context.Background()

	for _, item := range NavItems() {
		v := s.View(ctx, Request{Path: item.Path})
		if n := v.CurrentCount(); n != 1 {
			t.Errorf("path %s: %d current items, want 1", item.Path, n)
		}
		for _, l := range v.Nav {
			if l.Current && l.Path != item.Path {
				t.Errorf("path %s highlights %s", item.Path, l.Path)
			}
		}
	}

	home := s.View(ctx, Request{Path: PathHome})
	hot := s.View(ctx, Request{Path: PathHotNews})
	for i := range home.Nav {
		if home.Nav[i].Current != hot.Nav[i].Current {
			t.Errorf("nav %s: / and /hot-news disagree", home.Nav[i].Path)
		}
	}
	if home.Screen != hot.Screen {
		t.Errorf("/ renders %s, /hot-news renders %s", home.Screen, hot.Screen)
	}
	// The alias only affects highlighting.
	if home.CurrentPath == hot.CurrentPath {
		t.Error("home and hot news share a path")
	}
}

func TestView_UnmatchedPathFallsBackToNews(t *testing.T) {
	s := New(fakeLoc{ready: true}, &fakeAuth{}, &fakeChecker{}, nil)
	v := s.View(context.Background(), Request{Path: "/no-such-page"})
	if v.Screen != ScreenNews {
		t.Errorf("Screen = %s, want news", v.Screen)
	}
	if n := v.CurrentCount(); n != 0 {
		t.Errorf("%d items current for an unknown path", n)
	}
}

func TestView_SidebarActions(t *testing.T) {
	a := &fakeAuth{}
	s := New(fakeLoc{ready: true}, a, &fakeChecker{}, nil)
	ctx := context.Background()

	v := s.View(ctx, Request{Path: PathHome, Lang: i18n.LangEN})
	if !v.Actions.ShowLogin || !v.Actions.ShowRegister || v.Actions.ShowLogout {
		t.Errorf("anonymous actions = %+v", v.Actions)
	}
	if v.Actions.MembershipLabel == "" {
		t.Error("membership button missing for anonymous user")
	}
	if v.User != nil || v.ProBadge != "" {
		t.Error("user block shown for anonymous user")
	}

	a.set(auth.Session{
		IsAuthenticated: true,
		User:            &auth.User{ID: "1", Username: "demo", MembershipTier: auth.TierPro},
	})
	v = s.View(ctx, Request{Path: PathHome, Lang: i18n.LangEN})
	if v.Actions.ShowLogin || v.Actions.ShowRegister || !v.Actions.ShowLogout {
		t.Errorf("authenticated actions = %+v", v.Actions)
	}
	if v.Actions.MembershipLabel == "" {
		t.Error("membership button missing for authenticated user")
	}
	if !strings.Contains(v.LoggedInAs, "demo") || v.ProBadge == "" {
		t.Errorf("user block = %q / %q", v.LoggedInAs, v.ProBadge)
	}

	a.set(auth.Session{
		IsAuthenticated: true,
		User:            &auth.User{ID: "2", Username: "free", MembershipTier: auth.TierFree},
	})
	if v = s.View(ctx, Request{Path: PathHome}); v.ProBadge != "" {
		t.Error("pro badge shown for a free user")
	}
}

func TestView_AtMostOneModal(t *testing.T) {
	a := &fakeAuth{}
	s := New(fakeLoc{ready: true}, a, &fakeChecker{}, nil)
	ctx := context.Background()

	for _, k := range auth.ModalKinds {
		a.set(auth.Session{ActiveModal: k})
		v := s.View(ctx, Request{Path: PathHome})
		for _, other := range auth.ModalKinds {
			if v.ModalOpen(other) != (other == k) {
				t.Errorf("active %s: ModalOpen(%s) = %v", k, other, v.ModalOpen(other))
			}
		}
	}

	a.set(auth.Session{})
	if v := s.View(ctx, Request{Path: PathHome}); v.Modal != nil {
		t.Errorf("Modal = %+v with none active", v.Modal)
	}
}

func TestView_LanguageToggleRoundTrip(t *testing.T) {
	s := New(testutil.TestCatalog(t), &fakeAuth{}, &fakeChecker{}, nil)
	ctx := context.Background()

	start := s.View(ctx, Request{Path: PathTrends, Lang: i18n.LangZH})
	if start.Toggle.Label != "English" || start.Toggle.Target != i18n.LangEN {
		t.Errorf("zh toggle = %+v", start.Toggle)
	}
	if start.Toggle.Tooltip != "英语" {
		t.Errorf("zh toggle tooltip = %q, want 英语", start.Toggle.Tooltip)
	}

	flipped := s.View(ctx, Request{Path: PathTrends, Lang: start.Toggle.Target})
	if flipped.Toggle.Label != "中文" || flipped.Nav[0].Label == start.Nav[0].Label {
		t.Errorf("en view = %+v / %q", flipped.Toggle, flipped.Nav[0].Label)
	}

	back := s.View(ctx, Request{Path: PathTrends, Lang: flipped.Toggle.Target})
	if back.Lang != start.Lang {
		t.Fatalf("Lang after two toggles = %q, want %q", back.Lang, start.Lang)
	}
	for i := range start.Nav {
		if back.Nav[i].Label != start.Nav[i].Label {
			t.Errorf("nav %d label = %q, want %q", i, back.Nav[i].Label, start.Nav[i].Label)
		}
	}
}

func TestView_LoginOpenCloseExample(t *testing.T) {
	sm := testutil.TestSessions()
	provider := auth.NewProvider(testutil.TestDB(t), sm, testutil.TestLoggerSilent())
	if err := provider.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ctx := testutil.SessionContext(t, sm)
	s := New(testutil.TestCatalog(t), provider, &fakeChecker{}, nil)

	v := s.View(ctx, Request{Path: PathHome, Lang: i18n.LangEN})
	if v.User != nil || v.Modal != nil {
		t.Fatalf("initial view = %+v", v)
	}

	provider.OpenModal(ctx, auth.ModalLogin)
	v = s.View(ctx, Request{Path: PathHome, Lang: i18n.LangEN})
	if !v.ModalOpen(auth.ModalLogin) || v.ModalOpen(auth.ModalRegister) || v.ModalOpen(auth.ModalPricing) {
		t.Fatalf("after open: Modal = %+v", v.Modal)
	}
	if v.Modal.Title != "Log in to your account" {
		t.Errorf("login modal title = %q", v.Modal.Title)
	}

	provider.CloseModal(ctx)
	v = s.View(ctx, Request{Path: PathHome, Lang: i18n.LangEN})
	if v.Modal != nil || v.ActiveModal != auth.ModalNone {
		t.Errorf("after close: Modal = %+v, ActiveModal = %s", v.Modal, v.ActiveModal)
	}
}

func TestSettingsCallbackClearsBanner(t *testing.T) {
	notifier := credential.NewNotifier()
	creds := credential.NewStore(testutil.TestDB(t), nil, testutil.TestLoggerSilent())
	s := New(testutil.TestCatalog(t), &fakeAuth{}, creds, notifier)
	defer s.Close()
	ctx := context.Background()

	req := Request{Path: PathSettings, Lang: i18n.LangEN}
	if v := s.View(ctx, req); v.Banner == nil {
		t.Fatal("banner absent with no stored key")
	}

	// The settings screen stores a key and invokes its callback.
	if err := creds.Set(ctx, "sk-test-1234567890"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	onChange := s.OnCredentialChange
	onChange()

	v := s.View(ctx, req)
	if v.Banner != nil {
		t.Error("banner still shown after the credential was set")
	}
	if v.Screen != ScreenSettings || v.CurrentPath != PathSettings {
		t.Errorf("route changed: %s %s", v.Screen, v.CurrentPath)
	}
}

func TestNotifierRefreshesStatus(t *testing.T) {
	notifier := credential.NewNotifier()
	checker := &fakeChecker{status: credential.Missing}
	s := New(fakeLoc{ready: true}, &fakeAuth{}, checker, notifier)

	s.View(context.Background(), Request{Path: PathHome})
	if s.Status() != credential.Missing {
		t.Fatal("expected missing")
	}

	checker.set(credential.Present)
	notifier.Notify()
	if s.Status() != credential.Present {
		t.Error("status not refreshed on notification")
	}

	s.Close()
	checker.set(credential.Missing)
	notifier.Notify()
	if s.Status() != credential.Present {
		t.Error("closed shell still listening")
	}
}

func TestLastWriteWins(t *testing.T) {
	checker := &fakeChecker{}
	s := New(fakeLoc{ready: true}, &fakeAuth{}, checker, nil)

	checker.set(credential.Present)
	s.OnCredentialChange()
	checker.set(credential.Missing)
	s.OnCredentialChange()

	if s.Status() != credential.Missing {
		t.Errorf("Status = %s, want the latest check", s.Status())
	}
}

// gatedChecker blocks its first Check until release is closed.
type gatedChecker struct {
	first   credential.Status
	later   credential.Status
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (g *gatedChecker) Check(context.Context) credential.Status {
	if g.calls.Add(1) == 1 {
		close(g.started)
		<-g.release
		return g.first
	}
	return g.later
}

func TestRefresh_LaterCheckWinsOverSlowerEarlierCheck(t *testing.T) {
	checker := &gatedChecker{
		first:   credential.Missing,
		later:   credential.Present,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(fakeLoc{ready: true}, &fakeAuth{}, checker, nil)

	done := make(chan struct{})
	go func() {
		s.Refresh(context.Background())
		close(done)
	}()
	<-checker.started

	// A credential change lands while the first check is still pending.
	s.OnCredentialChange()
	if s.Status() != credential.Present {
		t.Fatalf("Status = %s, want present from the newer check", s.Status())
	}

	close(checker.release)
	<-done
	if s.Status() != credential.Present {
		t.Errorf("Status = %s after the stale check finished, want present", s.Status())
	}
}

func TestView_ConcurrentFirstRequestsWaitForInitialCheck(t *testing.T) {
	checker := &gatedChecker{
		first:   credential.Present,
		later:   credential.Present,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(fakeLoc{ready: true}, &fakeAuth{}, checker, nil)

	first := make(chan View, 1)
	go func() { first <- s.View(context.Background(), Request{Path: PathHome}) }()
	<-checker.started

	second := make(chan View, 1)
	go func() { second <- s.View(context.Background(), Request{Path: PathTrends}) }()

	close(checker.release)
	for _, ch := range []chan View{first, second} {
		if v := <-ch; v.Banner != nil {
			t.Error("banner shown before the initial check finished")
		}
	}
	if n := checker.calls.Load(); n != 1 {
		t.Errorf("Check calls = %d, want 1", n)
	}
}
