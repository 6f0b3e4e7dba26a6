package mail

import "context"

// Notifier defines the outbound email surface. Every send is best-effort:
// callers run these in background goroutines and log failures without
// propagating them, so mail transport availability never affects the
// success of signup, reset, or contact requests.
type Notifier interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendReset(ctx context.Context, email, resetLink string) error
	SendPasswordChanged(ctx context.Context, email, name string) error
	SendContact(ctx context.Context, name, email, message string) error
}
