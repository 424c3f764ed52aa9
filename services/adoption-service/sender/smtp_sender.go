package sender

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
)

type SMTPSender struct {
	host     string
	port     string
	username string
	password string
}

// NewSMTPSender returns nil when no host is configured; callers treat a
// nil sender as "email disabled".
func NewSMTPSender(host, port, username, password string) *SMTPSender {
	if host == "" {
		return nil
	}
	return &SMTPSender{host: host, port: port, username: username, password: password}
}

func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	msg := []byte(
		"From: " + s.username + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(addr, auth, s.username, []string{to}, msg); err != nil {
		return SendResult{}, fmt.Errorf("smtp send failed: %w", err)
	}

	return SendResult{
		MessageID: uuid.NewString(),
		SentAt:    time.Now(),
	}, nil
}
