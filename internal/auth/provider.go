// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/olegiv/newsdash/internal/session"
	"github.com/olegiv/newsdash/internal/store"
)

// Sentinel errors returned by Provider.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUsernameLength     = errors.New("username must be 3 to 32 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Registration limits.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MinPasswordLength = 6
)

// Demo account seeded at startup.
const (
	DemoUsername = "demo"
	DemoPassword = "demo123"
)

// Provider owns auth state. Users live in SQLite, the logged-in user ID and
// the active modal live in the scs session.
type Provider struct {
	queries  *store.Queries
	sessions *scs.SessionManager
	logger   *slog.Logger
	ready    atomic.Bool
}

// NewProvider creates a provider. It reports loading until Init completes.
func NewProvider(db *sql.DB, sm *scs.SessionManager, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		queries:  store.New(db),
		sessions: sm,
		logger:   logger,
	}
}

// Init seeds the demo account if it does not exist and marks the provider
// ready. On error the provider stays loading.
func (p *Provider) Init(ctx context.Context) error {
	if err := p.seedDemoUser(ctx); err != nil {
		return fmt.Errorf("seeding demo user: %w", err)
	}
	p.ready.Store(true)
	return nil
}

// InitAsync runs Init in the background. The returned channel receives the
// result and is then closed.
func (p *Provider) InitAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := p.Init(ctx)
		if err != nil {
			p.logger.Error("auth provider failed to initialize", "error", err)
		}
		done <- err
	}()
	return done
}

// Ready reports whether initialization has finished.
func (p *Provider) Ready() bool {
	return p.ready.Load()
}

func (p *Provider) seedDemoUser(ctx context.Context) error {
	_, err := p.queries.GetUserByUsername(ctx, DemoUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	if _, err := p.queries.CreateUser(ctx, store.CreateUserParams{
		ID:             uuid.NewString(),
		Username:       DemoUsername,
		Email:          "demo@example.com",
		PasswordHash:   hash,
		MembershipTier: TierPro,
		CreatedAt:      now,
		UpdatedAt:      now,
	}); err != nil {
		return err
	}
	p.logger.Info("demo user created", "username", DemoUsername)
	return nil
}

// State returns the session's auth state. A user ID that no longer resolves
// is dropped from the session.
func (p *Provider) State(ctx context.Context) Session {
	s := Session{
		IsLoading:   !p.Ready(),
		ActiveModal: p.activeModal(ctx),
	}
	if s.IsLoading {
		return s
	}

	userID := p.sessions.GetString(ctx, session.KeyUserID)
	if userID == "" {
		return s
	}

	u, err := p.queries.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			p.logger.Error("loading session user", "error", err, "user_id", userID)
		}
		p.sessions.Remove(ctx, session.KeyUserID)
		return s
	}

	user := userFromStore(u)
	s.IsAuthenticated = true
	s.User = &user
	return s
}

func (p *Provider) activeModal(ctx context.Context) ModalKind {
	k, ok := ParseModalKind(p.sessions.GetString(ctx, session.KeyActiveModal))
	if !ok {
		return ModalNone
	}
	return k
}

// OpenModal makes k the active dialog, replacing any open one.
func (p *Provider) OpenModal(ctx context.Context, k ModalKind) {
	next := p.activeModal(ctx).Open(k)
	if next == ModalNone {
		p.sessions.Remove(ctx, session.KeyActiveModal)
		return
	}
	p.sessions.Put(ctx, session.KeyActiveModal, string(next))
}

// CloseModal clears the active dialog. Closing when none is open is a no-op.
func (p *Provider) CloseModal(ctx context.Context) {
	p.sessions.Remove(ctx, session.KeyActiveModal)
}

// Login verifies the credentials, renews the session token and stores the
// user in the session. The active modal is closed on success.
func (p *Provider) Login(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)

	u, err := p.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("loading user: %w", err)
	}

	valid, err := CheckPassword(password, u.PasswordHash)
	if err != nil {
		p.logger.Error("password check error", "error", err, "user_id", u.ID)
		return User{}, ErrInvalidCredentials
	}
	if !valid {
		return User{}, ErrInvalidCredentials
	}

	if NeedsRehash(u.PasswordHash) {
		p.rehash(ctx, u.ID, password)
	}

	if err := p.startSession(ctx, u.ID); err != nil {
		return User{}, err
	}
	p.logger.Info("user logged in", "user_id", u.ID, "username", u.Username)
	return userFromStore(u), nil
}

func (p *Provider) rehash(ctx context.Context, userID, password string) {
	hash, err := HashPassword(password)
	if err != nil {
		return
	}
	if err := p.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC().Truncate(time.Second),
		ID:           userID,
	}); err != nil {
		p.logger.Error("failed to re-hash password", "error", err, "user_id", userID)
	}
}

func (p *Provider) startSession(ctx context.Context, userID string) error {
	if err := p.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	p.sessions.Put(ctx, session.KeyUserID, userID)
	p.sessions.Remove(ctx, session.KeyActiveModal)
	return nil
}

// RegisterInput holds the register form fields.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Validate checks the field rules without touching the database.
func (in RegisterInput) Validate() error {
	n := utf8.RuneCountInString(strings.TrimSpace(in.Username))
	if n < MinUsernameLength || n > MaxUsernameLength {
		return ErrUsernameLength
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return ErrInvalidEmail
		}
	}
	return nil
}

// Register creates a free account and logs it in.
func (p *Provider) Register(ctx context.Context, in RegisterInput) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, err
	}
	username := strings.TrimSpace(in.Username)

	if _, err := p.queries.GetUserByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("checking username: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	u, err := p.queries.CreateUser(ctx, store.CreateUserParams{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          strings.TrimSpace(in.Email),
		PasswordHash:   hash,
		MembershipTier: TierFree,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		// Lost a race with a concurrent registration of the same name.
		if strings.Contains(err.Error(), "UNIQUE") {
			return User{}, ErrUsernameTaken
		}
		return User{}, fmt.Errorf("creating user: %w", err)
	}

	if err := p.startSession(ctx, u.ID); err != nil {
		return User{}, err
	}
	p.logger.Info("user registered", "user_id", u.ID, "username", u.Username)
	return userFromStore(u), nil
}

// Logout removes the user and the active modal from the session and renews
// the token. Other session values such as the language survive.
func (p *Provider) Logout(ctx context.Context) error {
	userID := p.sessions.GetString(ctx, session.KeyUserID)

	if err := p.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	p.sessions.Remove(ctx, session.KeyUserID)
	p.sessions.Remove(ctx, session.KeyActiveModal)

	if userID != "" {
		p.logger.Info("user logged out", "user_id", userID)
	}
	return nil
}

// Upgrade moves the logged-in user to the pro tier. No payment is taken.
func (p *Provider) Upgrade(ctx context.Context) (User, error) {
	s := p.State(ctx)
	if !s.IsAuthenticated {
		return User{}, ErrNotAuthenticated
	}
	if s.User.IsPro() {
		return *s.User, nil
	}

	if err := p.queries.UpdateUserTier(ctx, store.UpdateUserTierParams{
		MembershipTier: TierPro,
		UpdatedAt:      time.Now().UTC().Truncate(time.Second),
		ID:             s.User.ID,
	}); err != nil {
		return User{}, fmt.Errorf("upgrading user: %w", err)
	}

	user := *s.User
	user.MembershipTier = TierPro
	p.logger.Info("user upgraded to pro", "user_id", user.ID)
	return user, nil
}
