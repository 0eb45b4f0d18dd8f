// Package mailer is the notification sink for stock alerts: a subject plus
// plain-text and HTML bodies, delivered best-effort over SMTP.
package mailer

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/ghuser/autospares/pkg/config"
	"github.com/ghuser/autospares/pkg/logger"
)

// Notifier delivers an alert with a plain-text fallback and an HTML body.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Send(ctx context.Context, subject, text, htmlBody string) error
}

// New returns an SMTP-backed Notifier, or a logging no-op when SMTP_HOST is
// unset so development environments never try to deliver mail.
func New(cfg *config.Config, log logger.Logger) Notifier {
	if cfg.SMTPHost == "" {
		return &nopNotifier{log: log}
	}
	return &smtpNotifier{
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		host:     cfg.SMTPHost,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.AlertEmailFrom,
		to:       cfg.AlertEmailTo,
	}
}

type smtpNotifier struct {
	addr     string
	host     string
	username string
	password string
	from     string
	to       string
}

func (n *smtpNotifier) Send(_ context.Context, subject, text, htmlBody string) error {
	if n.to == "" {
		return fmt.Errorf("mailer: ALERT_EMAIL_TO is not configured")
	}

	msg := buildMessage(n.from, n.to, subject, text, htmlBody)

	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}
	if err := smtp.SendMail(n.addr, auth, envelopeAddr(n.from), []string{n.to}, msg); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

// buildMessage assembles a multipart/alternative MIME message so clients can
// pick the HTML table or fall back to plain text.
func buildMessage(from, to, subject, text, htmlBody string) []byte {
	const boundary = "stock-alert-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

// envelopeAddr strips a display name ("Auto Spares System <a@b>" → "a@b") for
// the SMTP envelope.
func envelopeAddr(from string) string {
	if start := strings.LastIndex(from, "<"); start != -1 {
		if end := strings.LastIndex(from, ">"); end > start {
			return from[start+1 : end]
		}
	}
	return from
}

// nopNotifier logs alerts instead of delivering them.
type nopNotifier struct {
	log logger.Logger
}

func (n *nopNotifier) Send(ctx context.Context, subject, text, _ string) error {
	n.log.InfoContext(ctx, "mailer disabled, alert not delivered", "subject", subject, "body_len", len(text))
	return nil
}
