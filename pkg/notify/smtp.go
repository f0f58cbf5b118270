package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
)

// SMTPNotifier отправляет почту через обычный SMTP (PLAIN auth).
type SMTPNotifier struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

func NewSMTPNotifier(host, port, from, username, password string) *SMTPNotifier {
	return &SMTPNotifier{Host: host, Port: port, From: from, Username: username, Password: password}
}

func (n *SMTPNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", n.From, recipient, subject, body)
	addr := net.JoinHostPort(n.Host, n.Port)
	var auth smtp.Auth
	if n.Username != "" {
		auth = smtp.PlainAuth("", n.Username, n.Password, n.Host)
	}
	done := make(chan error, 1)
	go func() { done <- smtp.SendMail(addr, auth, n.From, []string{recipient}, []byte(msg)) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
