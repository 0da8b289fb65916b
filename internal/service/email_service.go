package service

import (
	"errors"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// ==============================================
// EMAIL SERVICE (SMTP dispatch channel)
// ==============================================

// EmailService sends mail over plain SMTP. Dispatch is fire-and-forget from
// the verification flow's perspective: no retries, errors surface to the
// caller.
type EmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
}

func NewEmailService(host string, port int, username, password, from string, logger *zap.Logger) *EmailService {
	return &EmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// SendEmail sends a single message. Message bodies may contain one-time
// tokens, so neither subject nor body is ever logged.
func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.host == "" {
		return errors.New("smtp host not configured")
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.from, to, subject, body))
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var a smtp.Auth
	if s.username != "" {
		a = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, a, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	s.logger.Debug("email sent", zap.String("to", to))
	return nil
}
