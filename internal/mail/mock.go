package mail

import (
	"context"
	"log"
)

// MockNotifier logs sends instead of delivering them. Used when
// RESEND_API_KEY is not set (local development).
//
// The reset link carries the raw token, so it is deliberately not logged.
type MockNotifier struct{}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendWelcome(ctx context.Context, email, name string) error {
	log.Printf("📧 [MockMail] Welcome email to %s (%s)", email, name)
	return nil
}

func (m *MockNotifier) SendReset(ctx context.Context, email, resetLink string) error {
	log.Printf("📧 [MockMail] Password reset email to %s", email)
	return nil
}

func (m *MockNotifier) SendPasswordChanged(ctx context.Context, email, name string) error {
	log.Printf("📧 [MockMail] Password changed email to %s (%s)", email, name)
	return nil
}

func (m *MockNotifier) SendContact(ctx context.Context, name, email, message string) error {
	log.Printf("📧 [MockMail] Contact form from %s <%s>: %s", name, email, message)
	return nil
}
