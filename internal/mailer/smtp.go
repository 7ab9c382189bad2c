// ABOUTME: SMTP delivery of consultation briefs
// ABOUTME: Uses net/smtp with PLAIN auth and retries transient failures
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/harper/chambers/internal/util"
)

// SMTPConfig holds mail server settings
type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Pass       string
	From       string
	MaxRetries int
	RetryDelay time.Duration
}

// sendFunc matches smtp.SendMail so tests can swap it out
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers briefs through an SMTP relay
type SMTPSender struct {
	cfg  SMTPConfig
	send sendFunc
}

// NewSMTPSender validates cfg and returns a sender
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return nil, errors.New("SMTP host, user and password are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	return &SMTPSender{cfg: cfg, send: smtp.SendMail}, nil
}

// Send mails brief to a single recipient
func (s *SMTPSender) Send(ctx context.Context, to string, brief Brief) error {
	to = strings.TrimSpace(to)
	if to == "" || strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("invalid recipient %q", to)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	msg := s.message(to, brief)

	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := util.Wait(ctx, s.cfg.RetryDelay, attempt); err != nil {
				return err
			}
		}
		if lastErr = s.send(addr, auth, s.cfg.From, []string{to}, msg); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to send brief after %d attempts: %w", s.cfg.MaxRetries+1, lastErr)
}

func (s *SMTPSender) message(to string, brief Brief) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: Chambers <%s>\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", strings.ReplaceAll(brief.Subject, "\n", " "))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(brief.Body, "\n", "\r\n"))
	return []byte(b.String())
}
