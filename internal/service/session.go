package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"fitvision-backend/internal/auth"
	"fitvision-backend/internal/mail"
	"fitvision-backend/internal/models"
)

// TokenPair is what a successful signup, login, or refresh hands back: a
// short-lived signed access token plus the raw opaque refresh token. The
// refresh token exists only here and in the client — storage keeps a digest.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionManager orchestrates signup, login, refresh, and logout against the
// user store. Refresh tokens are single-use: every successful login or
// refresh rotates the stored digest, invalidating the previous token.
type SessionManager struct {
	users    models.UserStore
	hasher   *auth.PasswordHasher
	codec    *auth.TokenCodec
	notifier mail.Notifier
	now      func() time.Time
}

func NewSessionManager(users models.UserStore, hasher *auth.PasswordHasher, codec *auth.TokenCodec, notifier mail.Notifier) *SessionManager {
	return &SessionManager{
		users:    users,
		hasher:   hasher,
		codec:    codec,
		notifier: notifier,
		now:      time.Now,
	}
}

// Signup creates a user with a hashed password and a freshly issued refresh
// token, then returns the initial token pair. The welcome email is
// best-effort and never fails the signup.
func (s *SessionManager) Signup(ctx context.Context, email, password, name string) (*TokenPair, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, models.ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	refresh, err := auth.GenerateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	user := &models.User{
		Email:            email,
		PasswordHash:     hash,
		Profile:          models.Profile{Name: name},
		RefreshTokenHash: auth.DigestOpaqueToken(refresh),
	}
	// The unique index catches the race where two signups pass the
	// FindByEmail check concurrently.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	access, err := s.codec.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	go func() {
		if err := s.notifier.SendWelcome(context.Background(), email, name); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}()

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Login verifies credentials and rotates the refresh token. An unknown email
// and a wrong password produce the same error, so callers cannot probe for
// registered accounts.
func (s *SessionManager) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	refresh, err := auth.GenerateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.users.RecordLogin(ctx, email, auth.DigestOpaqueToken(refresh), s.now()); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	access, err := s.codec.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The stored
// digest is swapped in the same atomic update that matches it, so of two
// concurrent calls presenting the same token at most one succeeds; the other
// gets ErrInvalidRefreshToken.
func (s *SessionManager) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	if presented == "" {
		return nil, models.ErrMissingRefreshToken
	}

	next, err := auth.GenerateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	user, err := s.users.SwapRefreshToken(ctx, auth.DigestOpaqueToken(presented), auth.DigestOpaqueToken(next))
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	if user == nil {
		return nil, models.ErrInvalidRefreshToken
	}

	access, err := s.codec.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: next}, nil
}

// Logout clears the stored refresh digest so the outstanding refresh token
// can no longer be exchanged. Access tokens are stateless and simply expire.
func (s *SessionManager) Logout(ctx context.Context, email string) error {
	if err := s.users.ClearRefreshToken(ctx, email); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}
