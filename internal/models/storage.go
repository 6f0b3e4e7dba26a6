package models

import (
	"context"
	"time"
)

// UserStore is the persistence contract for user records. Every mutation is a
// single atomic document update; rotation and redemption condition on the
// currently stored digest so concurrent racers lose cleanly.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create inserts a new user and returns ErrEmailAlreadyRegistered when
	// the email is already taken.
	Create(ctx context.Context, user *User) error

	// RecordLogin stores a fresh refresh-token digest and the login time,
	// superseding any previously issued refresh token.
	RecordLogin(ctx context.Context, email, refreshDigest string, at time.Time) error

	// SwapRefreshToken atomically replaces currentDigest with newDigest and
	// returns the matched user, or nil when no user holds currentDigest.
	SwapRefreshToken(ctx context.Context, currentDigest, newDigest string) (*User, error)

	ClearRefreshToken(ctx context.Context, email string) error

	SetResetToken(ctx context.Context, email, digest string, expires time.Time) error

	// RedeemResetToken atomically sets the new password hash and clears both
	// reset fields for the user whose stored reset digest matches and whose
	// expiry is still in the future. Returns nil when no such user exists,
	// so a redeemed or expired token cannot be distinguished by the caller.
	RedeemResetToken(ctx context.Context, digest, newPasswordHash string, now time.Time) (*User, error)

	// UpdateProfile overwrites the profile and marks onboarding completed.
	// Calling it again simply overwrites the previous values.
	UpdateProfile(ctx context.Context, email string, profile Profile) error
}

// ContactStore persists contact-form submissions.
type ContactStore interface {
	Create(ctx context.Context, msg *ContactMessage) error
}
