// Package mailer delivers contact form submissions by email.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("mailer: SMTP credentials not configured")

// Message is what the visitor typed into the contact block.
type Message struct {
	Name    string
	Contact string
	Summary string
}

// Sender delivers a contact message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTP sends through an authenticated SMTP relay.
type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// sendMail is deliver unless a test replaces it.
	sendMail func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP returns an SMTP sender.
func NewSMTP(host, port, user, pass, to string) *SMTP {
	s := &SMTP{Host: host, Port: port, User: user, Pass: pass, To: to}
	s.sendMail = s.deliver
	return s
}

// Configured reports whether credentials are present.
func (s *SMTP) Configured() bool {
	return s.User != "" && s.Pass != ""
}

func (s *SMTP) Send(ctx context.Context, m Message) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	msg := Compose(s.User, s.To, m)
	if err := s.sendMail(ctx, net.JoinHostPort(s.Host, s.Port), auth, s.User, []string{s.To}, msg); err != nil {
		return fmt.Errorf("send mail via %s: %w", s.Host, errors.Join(err, ctx.Err()))
	}
	return nil
}

// deliver is smtp.SendMail bounded by ctx: the dial honours it, the
// connection inherits its deadline, and cancellation closes the connection.
func (s *SMTP) deliver(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.Host}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(a); err != nil {
				return err
			}
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// Compose builds the RFC 5322 message. Reply-To is set only when the visitor
// left an email address rather than a phone number.
func Compose(from, to string, m Message) []byte {
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", headerSafe("Portfolio Contact: "+m.Name)) + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	if addr, err := mail.ParseAddress(m.Contact); err == nil {
		b.WriteString("Reply-To: " + addr.Address + "\r\n")
	}
	b.WriteString("\r\n")
	fmt.Fprintf(&b, `New contact form submission from your portfolio:

Name: %s
Email or phone: %s
Project summary:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Contact, m.Summary)
	return []byte(normalizeCRLF(b.String()))
}

// headerSafe drops CR and LF so user input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(s)
}

func normalizeCRLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
