package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"accessmap/internal/config"
	"accessmap/pkg/utils"
)

// Mailer sends outbound application mail. Failures are surfaced to the
// caller; there are no retries.
type Mailer interface {
	SendContactMessage(ctx context.Context, name, fromEmail, message string) error
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
}

// SMTPMailer implements Mailer over plain SMTP.
type SMTPMailer struct {
	cfg *config.SMTPConfig
}

// NewSMTPMailer creates a new SMTP mailer.
func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendContactMessage relays a contact form submission to the configured
// recipient, with Reply-To set to the submitting user.
func (m *SMTPMailer) SendContactMessage(_ context.Context, name, fromEmail, message string) error {
	if m.cfg.ContactRecipient == "" {
		return fmt.Errorf("contact recipient is not configured")
	}

	// The sender address goes verbatim into the Reply-To header, so reject
	// anything that does not look like a bare address.
	if !utils.IsValidEmail(fromEmail) {
		return fmt.Errorf("invalid reply address %q", fromEmail)
	}

	subject := fmt.Sprintf("New contact message from %s", name)
	body := fmt.Sprintf("Name: %s\r\nEmail: %s\r\n\r\n%s\r\n", name, fromEmail, message)

	msg := m.buildMessage(m.cfg.ContactRecipient, subject, body, fromEmail)

	return m.send(m.cfg.ContactRecipient, msg)
}

// SendPasswordReset mails a reset link to the account's email address.
func (m *SMTPMailer) SendPasswordReset(_ context.Context, toEmail, resetLink string) error {
	subject := "Reset your password"
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\n"+
			"Open the link below to choose a new password. The link expires in one hour.\r\n\r\n%s\r\n\r\n"+
			"If you did not request this, you can ignore this message.\r\n",
		resetLink,
	)

	msg := m.buildMessage(toEmail, subject, body, "")

	return m.send(toEmail, msg)
}

func (m *SMTPMailer) buildMessage(to, subject, body, replyTo string) []byte {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	if replyTo != "" {
		msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", replyTo))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return []byte(msg.String())
}

func (m *SMTPMailer) send(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
