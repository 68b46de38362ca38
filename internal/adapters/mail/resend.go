package mail

import (
	"context"
	"net/url"

	"github.com/resend/resend-go/v2"
)

// ResendTransport delivers through the Resend transactional API
type ResendTransport struct {
	client *resend.Client
}

// NewResend builds a Resend transport; baseURL is optional
func NewResend(apiKey, baseURL string) *ResendTransport {
	c := resend.NewClient(apiKey)
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil {
			c.BaseURL = u
		}
	}
	return &ResendTransport{client: c}
}

// Name implements Transport
func (*ResendTransport) Name() string { return TransportResend }

// Send implements Transport
func (t *ResendTransport) Send(ctx context.Context, m Message) error {
	_, err := t.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.From,
		To:      m.To,
		Subject: m.Subject,
		Text:    m.Text,
		ReplyTo: m.ReplyTo,
	})
	return err
}
