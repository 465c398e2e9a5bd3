// Package notify delivers low-stock alerts and manager reports over email
// and SMS. Provider failures on the alert path are logged and swallowed so
// they never surface into business transactions.
package notify

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"ibms-backend/internal/config"
)

// Mailer sends plain-text mail, optionally with a single attachment.
type Mailer interface {
	Send(to, subject, body string) error
	SendWithAttachment(to, subject, body, filename string, attachment []byte) error
}

type smtpMailer struct {
	addr     string
	from     string
	auth     smtp.Auth
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer builds a Mailer from the SMTP section of the config. When
// auth is disabled (local relays, mailhog) no AUTH is attempted.
func NewSMTPMailer(cfg config.Config) Mailer {
	var auth smtp.Auth
	if !cfg.SMTPAuthDisabled {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPServer)
	}
	return &smtpMailer{
		addr:     cfg.SMTPAddr(),
		from:     cfg.AlertFrom,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := buildMessage(m.from, to, subject, body)
	if err := m.sendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func (m *smtpMailer) SendWithAttachment(to, subject, body, filename string, attachment []byte) error {
	msg := buildMessageWithAttachment(m.from, to, subject, body, filename, attachment)
	if err := m.sendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

const mimeBoundary = "ibms-part-boundary"

func buildMessageWithAttachment(from, to, subject, body, filename string, attachment []byte) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%s\r\n", mimeBoundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: application/pdf\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n\r\n", filename)
	writeBase64Wrapped(&b, attachment)

	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return []byte(b.String())
}

// writeBase64Wrapped emits base64 in 76-column lines per RFC 2045.
func writeBase64Wrapped(b *strings.Builder, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	b.WriteString("\r\n")
}
