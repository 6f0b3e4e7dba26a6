package service

import (
	"context"
	"sync"
	"time"

	"fitvision-backend/internal/models"
)

// memStore is an in-memory models.UserStore with the same per-record
// atomicity guarantees as the Mongo repository: conditional swaps and
// redemptions happen under one lock, so only one racer can win.
type memStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*models.User)}
}

func clone(u *models.User) *models.User {
	c := *u
	return &c
}

func (s *memStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		return clone(u), nil
	}
	return nil, nil
}

func (s *memStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return models.ErrEmailAlreadyRegistered
	}
	user.CreatedAt = time.Now()
	s.users[user.Email] = clone(user)
	return nil
}

func (s *memStore) RecordLogin(ctx context.Context, email, refreshDigest string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		u.RefreshTokenHash = refreshDigest
		u.LastLogin = &at
	}
	return nil
}

func (s *memStore) SwapRefreshToken(ctx context.Context, currentDigest, newDigest string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.RefreshTokenHash != "" && u.RefreshTokenHash == currentDigest {
			u.RefreshTokenHash = newDigest
			return clone(u), nil
		}
	}
	return nil, nil
}

func (s *memStore) ClearRefreshToken(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		u.RefreshTokenHash = ""
	}
	return nil
}

func (s *memStore) SetResetToken(ctx context.Context, email, digest string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		u.ResetPasswordToken = digest
		u.ResetPasswordExpires = &expires
	}
	return nil
}

func (s *memStore) RedeemResetToken(ctx context.Context, digest, newPasswordHash string, now time.Time) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetPasswordToken != "" && u.ResetPasswordToken == digest &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now) {
			u.PasswordHash = newPasswordHash
			u.ResetPasswordToken = ""
			u.ResetPasswordExpires = nil
			return clone(u), nil
		}
	}
	return nil, nil
}

func (s *memStore) UpdateProfile(ctx context.Context, email string, profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		u.Profile = profile
		u.OnboardingCompleted = true
	}
	return nil
}

// get returns the stored record for direct assertions.
func (s *memStore) get(email string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		return clone(u)
	}
	return nil
}

// fakeNotifier records sends; setting fail makes every send error, to prove
// mail failures never fail the primary operation.
type fakeNotifier struct {
	mu         sync.Mutex
	fail       bool
	welcomes   []string
	resetLinks []string
	changed    []string
	contacts   []string
}

type notifierError struct{}

func (notifierError) Error() string { return "smtp unavailable" }

func (n *fakeNotifier) record(dst *[]string, v string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return notifierError{}
	}
	*dst = append(*dst, v)
	return nil
}

func (n *fakeNotifier) SendWelcome(ctx context.Context, email, name string) error {
	return n.record(&n.welcomes, email)
}

func (n *fakeNotifier) SendReset(ctx context.Context, email, resetLink string) error {
	return n.record(&n.resetLinks, resetLink)
}

func (n *fakeNotifier) SendPasswordChanged(ctx context.Context, email, name string) error {
	return n.record(&n.changed, email)
}

func (n *fakeNotifier) SendContact(ctx context.Context, name, email, message string) error {
	return n.record(&n.contacts, message)
}

func (n *fakeNotifier) welcomeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.welcomes)
}

func (n *fakeNotifier) links() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.resetLinks...)
}

func (n *fakeNotifier) changedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.changed)
}
