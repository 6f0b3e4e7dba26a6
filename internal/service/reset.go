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

// PasswordResetFlow handles the forgot-password / reset-password handshake.
// The raw reset token travels only in the outbound email; storage holds its
// digest plus an expiry, and redemption clears both in one atomic update so
// a token can never be used twice.
type PasswordResetFlow struct {
	users           models.UserStore
	hasher          *auth.PasswordHasher
	notifier        mail.Notifier
	frontendBaseURL string
	ttl             time.Duration
	now             func() time.Time
}

func NewPasswordResetFlow(users models.UserStore, hasher *auth.PasswordHasher, notifier mail.Notifier, frontendBaseURL string, ttl time.Duration) *PasswordResetFlow {
	return &PasswordResetFlow{
		users:           users,
		hasher:          hasher,
		notifier:        notifier,
		frontendBaseURL: frontendBaseURL,
		ttl:             ttl,
		now:             time.Now,
	}
}

// RequestReset issues a reset token for the account, if one exists. It
// returns nil either way: callers must not be able to tell a registered
// email from an unknown one.
func (f *PasswordResetFlow) RequestReset(ctx context.Context, email string) error {
	user, err := f.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil
	}

	token, err := auth.GenerateOpaqueToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expires := f.now().Add(f.ttl)
	if err := f.users.SetResetToken(ctx, email, auth.DigestOpaqueToken(token), expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", f.frontendBaseURL, token)
	go func() {
		if err := f.notifier.SendReset(context.Background(), email, resetLink); err != nil {
			log.Printf("Error sending reset email: %v", err)
		}
	}()

	return nil
}

// CompleteReset redeems a reset token and overwrites the password. The token
// must match a stored digest AND be unexpired; which condition failed is
// never revealed. Success clears the reset fields, making the token
// single-use even under concurrent redemption.
func (f *PasswordResetFlow) CompleteReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return models.ErrInvalidOrExpiredToken
	}

	hash, err := f.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := f.users.RedeemResetToken(ctx, auth.DigestOpaqueToken(token), hash, f.now())
	if err != nil {
		return fmt.Errorf("redeem reset token: %w", err)
	}
	if user == nil {
		return models.ErrInvalidOrExpiredToken
	}

	go func() {
		if err := f.notifier.SendPasswordChanged(context.Background(), user.Email, user.Profile.Name); err != nil {
			log.Printf("Error sending password changed email: %v", err)
		}
	}()

	return nil
}
