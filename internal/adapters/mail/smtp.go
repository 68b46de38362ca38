package mail

import (
	"context"

	"github.com/gophish/gomail"
)

// sender is the part of gomail.Dialer we use
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPTransport delivers through an authenticated SMTP relay
type SMTPTransport struct {
	d sender
}

// NewSMTP builds an SMTP transport; port 0 means 587
func NewSMTP(host string, port int, user, password string) *SMTPTransport {
	if port == 0 {
		port = 587
	}
	return &SMTPTransport{d: gomail.NewDialer(host, port, user, password)}
}

// Name implements Transport
func (*SMTPTransport) Name() string { return TransportSMTP }

// Send implements Transport. gomail has no context support, so ctx is only checked up front
func (t *SMTPTransport) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To...)
	msg.SetHeader("Reply-To", m.ReplyTo)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	return t.d.DialAndSend(msg)
}
