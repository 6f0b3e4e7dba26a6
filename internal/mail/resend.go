package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer delivers transactional email through Resend.
type ResendMailer struct {
	client          *resend.Client
	from            string
	adminEmail      string
	frontendBaseURL string
}

func NewResendMailer(apiKey, from, adminEmail, frontendBaseURL string) *ResendMailer {
	return &ResendMailer{
		client:          resend.NewClient(apiKey),
		from:            from,
		adminEmail:      adminEmail,
		frontendBaseURL: frontendBaseURL,
	}
}

func (m *ResendMailer) SendWelcome(ctx context.Context, email, name string) error {
	html := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
			<h1 style="color: #0F172A;">FitVision</h1>
			<p style="color: #64748B;">Your personal health &amp; fitness guide</p>
			<p>Hi <strong>%s</strong>,</p>
			<p>Your account has been created successfully.</p>
			<a href="%s/onboarding" style="display: inline-block; background: #14B8A6; color: white; padding: 14px 24px; border-radius: 10px; text-decoration: none; font-weight: 600;">
				Complete Onboarding
			</a>
			<p style="margin-top: 24px;">We're excited to help you build healthier habits.</p>
			<p>– Team FitVision</p>
		</div>
	`, name, m.frontendBaseURL)

	return m.send(ctx, []string{email}, "Welcome to FitVision 👋", html)
}

func (m *ResendMailer) SendReset(ctx context.Context, email, resetLink string) error {
	html := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
			<h2 style="color: #0F172A;">Reset your password</h2>
			<p style="color: #64748B;">This link expires shortly after it was requested.</p>
			<a href="%s" style="display: inline-block; background: #14B8A6; color: white; padding: 14px 24px; border-radius: 10px; text-decoration: none; font-weight: 600;">
				Reset Password
			</a>
			<p style="color: #94A3B8; font-size: 13px; margin-top: 24px;">
				If you didn't request this, you can safely ignore this email.
			</p>
		</div>
	`, resetLink)

	return m.send(ctx, []string{email}, "Reset your FitVision password", html)
}

func (m *ResendMailer) SendPasswordChanged(ctx context.Context, email, name string) error {
	html := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
			<h2 style="color: #0F172A;">Password Changed</h2>
			<p>Hi <strong>%s</strong>,</p>
			<p>Your FitVision password was changed successfully.</p>
			<p style="background: #F1F5F9; padding: 12px; border-radius: 8px;">
				If this wasn't you, please secure your account immediately.
			</p>
			<a href="%s/forgot-password" style="display: inline-block; background: #14B8A6; color: white; padding: 12px 22px; border-radius: 10px; text-decoration: none; font-weight: 600;">
				Secure My Account
			</a>
			<p style="margin-top: 24px;">– Team FitVision</p>
		</div>
	`, name, m.frontendBaseURL)

	return m.send(ctx, []string{email}, "Your FitVision password was changed", html)
}

func (m *ResendMailer) SendContact(ctx context.Context, name, email, message string) error {
	html := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
			<h2 style="color: #0F172A;">New Contact Message</h2>
			<p><strong>Name:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<div style="margin-top: 20px; padding: 16px; background: #F1F5F9; border-radius: 8px;">
				<p style="margin: 0; color: #0F172A;">%s</p>
			</div>
		</div>
	`, name, email, message)

	return m.send(ctx, []string{m.adminEmail}, "New Contact Form Submission", html)
}

func (m *ResendMailer) send(ctx context.Context, to []string, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      to,
		Subject: subject,
		Html:    html,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
