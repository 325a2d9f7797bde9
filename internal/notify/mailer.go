package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers a notification to a list of recipients.
type Mailer interface {
	Send(n Notification, recipients []string) error
}

// SMTPMailer sends mail over an implicit-TLS SMTP connection, one
// message per recipient on a single connection.
type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	d := gomail.NewDialer(host, port, username, password)
	d.SSL = true
	return &SMTPMailer{dialer: d}
}

func (m *SMTPMailer) Send(n Notification, recipients []string) error {
	sender, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer sender.Close()

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.From)
	msg.SetHeader("Subject", n.Subject)
	msg.SetBody("text/plain", n.Body)
	for _, rcpt := range recipients {
		msg.SetHeader("To", rcpt)
		if err := gomail.Send(sender, msg); err != nil {
			return fmt.Errorf("send to %s: %w", rcpt, err)
		}
	}
	return nil
}
