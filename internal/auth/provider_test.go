// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsdash/internal/session"
	"github.com/olegiv/newsdash/internal/testutil"
)

func newTestProvider(t *testing.T) (*Provider, *scs.SessionManager, context.Context) {
	t.Helper()
	sm := testutil.TestSessions()
	p := NewProvider(testutil.TestDB(t), sm, testutil.TestLoggerSilent())
	require.NoError(t, p.Init(context.Background()))
	return p, sm, testutil.SessionContext(t, sm)
}

func TestProvider_LoadingUntilInit(t *testing.T) {
	sm := testutil.TestSessions()
	p := NewProvider(testutil.TestDB(t), sm, testutil.TestLoggerSilent())
	ctx := testutil.SessionContext(t, sm)

	s := p.State(ctx)
	assert.True(t, s.IsLoading)
	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)

	require.NoError(t, <-p.InitAsync(context.Background()))
	assert.True(t, p.Ready())
	assert.False(t, p.State(ctx).IsLoading)
}

func TestProvider_InitIsIdempotent(t *testing.T) {
	p, _, ctx := newTestProvider(t)
	require.NoError(t, p.Init(context.Background()))

	u, err := p.Login(ctx, DemoUsername, DemoPassword)
	require.NoError(t, err)
	assert.True(t, u.IsPro())
}

func TestProvider_InitialState(t *testing.T) {
	p, _, ctx := newTestProvider(t)

	s := p.State(ctx)
	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)
	assert.False(t, s.IsLoading)
	assert.Equal(t, ModalNone, s.ActiveModal)
}

func TestProvider_LoginOpenCloseExample(t *testing.T) {
	p, _, ctx := newTestProvider(t)

	p.OpenModal(ctx, ModalLogin)
	assert.Equal(t, ModalLogin, p.State(ctx).ActiveModal)

	p.CloseModal(ctx)
	assert.Equal(t, ModalNone, p.State(ctx).ActiveModal)

	// Closing again stays at none.
	p.CloseModal(ctx)
	assert.Equal(t, ModalNone, p.State(ctx).ActiveModal)
}

func TestProvider_OpenReplacesActiveModal(t *testing.T) {
	p, _, ctx := newTestProvider(t)

	p.OpenModal(ctx, ModalLogin)
	p.OpenModal(ctx, ModalPricing)
	assert.Equal(t, ModalPricing, p.State(ctx).ActiveModal)

	p.OpenModal(ctx, ModalNone)
	assert.Equal(t, ModalNone, p.State(ctx).ActiveModal)
}

func TestProvider_IgnoresCorruptModalValue(t *testing.T) {
	p, sm, ctx := newTestProvider(t)

	sm.Put(ctx, session.KeyActiveModal, "bogus")
	assert.Equal(t, ModalNone, p.State(ctx).ActiveModal)
}

func TestProvider_Login(t *testing.T) {
	p, _, ctx := newTestProvider(t)
	p.OpenModal(ctx, ModalLogin)

	_, err := p.Login(ctx, DemoUsername, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.Login(ctx, "nobody", DemoPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, p.State(ctx).IsAuthenticated)

	u, err := p.Login(ctx, " DEMO ", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, DemoUsername, u.Username)

	s := p.State(ctx)
	require.True(t, s.IsAuthenticated)
	assert.Equal(t, u.ID, s.User.ID)
	assert.Equal(t, TierPro, s.User.MembershipTier)
	assert.Equal(t, ModalNone, s.ActiveModal, "login closes the dialog")
}

func TestProvider_RegisterValidation(t *testing.T) {
	p, _, ctx := newTestProvider(t)

	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"short username", RegisterInput{Username: "ab", Password: "secret1"}, ErrUsernameLength},
		{"long username", RegisterInput{Username: "abcdefghijklmnopqrstuvwxyz1234567", Password: "secret1"}, ErrUsernameLength},
		{"short password", RegisterInput{Username: "alice", Password: "12345"}, ErrPasswordTooShort},
		{"bad email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "secret1"}, ErrInvalidEmail},
		{"taken", RegisterInput{Username: "Demo", Password: "secret1"}, ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Register(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProvider_RegisterLogsIn(t *testing.T) {
	p, _, ctx := newTestProvider(t)
	p.OpenModal(ctx, ModalRegister)

	u, err := p.Register(ctx, RegisterInput{Username: "李雷", Email: "lilei@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, TierFree, u.MembershipTier)

	s := p.State(ctx)
	require.True(t, s.IsAuthenticated)
	assert.Equal(t, "李雷", s.User.Username)
	assert.Equal(t, ModalNone, s.ActiveModal)
}

func TestProvider_LogoutKeepsLanguage(t *testing.T) {
	p, sm, ctx := newTestProvider(t)

	_, err := p.Login(ctx, DemoUsername, DemoPassword)
	require.NoError(t, err)
	sm.Put(ctx, session.KeyLanguage, "en")
	p.OpenModal(ctx, ModalPricing)

	require.NoError(t, p.Logout(ctx))

	s := p.State(ctx)
	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)
	assert.Equal(t, ModalNone, s.ActiveModal)
	assert.Equal(t, "en", sm.GetString(ctx, session.KeyLanguage))
}

func TestProvider_Upgrade(t *testing.T) {
	p, _, ctx := newTestProvider(t)

	_, err := p.Upgrade(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = p.Register(ctx, RegisterInput{Username: "hanmeimei", Password: "secret1"})
	require.NoError(t, err)

	u, err := p.Upgrade(ctx)
	require.NoError(t, err)
	assert.True(t, u.IsPro())
	assert.True(t, p.State(ctx).User.IsPro())

	// Upgrading a pro user is a no-op.
	u, err = p.Upgrade(ctx)
	require.NoError(t, err)
	assert.True(t, u.IsPro())
}

func TestProvider_StaleUserIsDropped(t *testing.T) {
	p, sm, ctx := newTestProvider(t)

	sm.Put(ctx, session.KeyUserID, "deleted-user")
	s := p.State(ctx)
	assert.False(t, s.IsAuthenticated)
	assert.Empty(t, sm.GetString(ctx, session.KeyUserID))
}
