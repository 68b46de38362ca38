// Package mail composes lead notifications and hands them to a delivery transport
package mail

import (
	"context"
	"strings"

	perr "leadintake/internal/platform/errors"
	"leadintake/internal/platform/logger"
	pstrings "leadintake/internal/platform/strings"
)

// Transport names accepted by MAIL_TRANSPORT
const (
	TransportResend = "resend"
	TransportSMTP   = "smtp"
)

// Lead is the subset of a submission that goes into the notification
type Lead struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Message is a composed plain-text notification
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// Transport delivers a composed message
type Transport interface {
	Name() string
	Send(ctx context.Context, m Message) error
}

// Settings is the resolved mail configuration
type Settings struct {
	Transport  string
	From       string
	To         []string
	Credential string
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	// ResendBaseURL overrides the API endpoint (tests)
	ResendBaseURL string
}

// Dispatcher sends one notification per accepted lead
type Dispatcher struct {
	settings  Settings
	transport Transport
	log       logger.Logger
}

// NewDispatcher builds the transport selected by s.Transport
// Missing settings are not an error here; Dispatch reports them per request
func NewDispatcher(s Settings) *Dispatcher {
	var t Transport
	switch s.Transport {
	case TransportSMTP:
		t = NewSMTP(s.SMTPHost, s.SMTPPort, pstrings.Or(s.SMTPUser, s.From), s.Credential)
	default:
		s.Transport = TransportResend
		t = NewResend(s.Credential, s.ResendBaseURL)
	}
	return NewDispatcherWith(s, t)
}

// NewDispatcherWith uses an explicit transport
func NewDispatcherWith(s Settings, t Transport) *Dispatcher {
	return &Dispatcher{settings: s, transport: t, log: *logger.Named("mail")}
}

// Check reports the first missing precondition as a configuration error
func (d *Dispatcher) Check() error {
	switch {
	case d.settings.From == "":
		return perr.Configurationf("mail sender (MAIL_FROM) is not configured")
	case len(d.settings.To) == 0:
		return perr.Configurationf("mail recipient (MAIL_TO) is not configured")
	case d.settings.Credential == "":
		return perr.Configurationf("mail credential (MAIL_API_KEY) is not configured")
	case d.settings.Transport == TransportSMTP && d.settings.SMTPHost == "":
		return perr.Configurationf("smtp host (MAIL_SMTP_HOST) is not configured")
	}
	return nil
}

// Dispatch composes and sends the notification for lead
func (d *Dispatcher) Dispatch(ctx context.Context, lead Lead) error {
	if err := d.Check(); err != nil {
		return err
	}
	m := Compose(d.settings.From, d.settings.To, lead)
	if err := d.transport.Send(ctx, m); err != nil {
		return perr.Dispatchf(err, "%s send", d.transport.Name())
	}
	d.log.Debug().Str("transport", d.transport.Name()).Int("recipients", len(m.To)).Msg("lead notification sent")
	return nil
}

// Compose builds the notification; the submitter's address becomes Reply-To
func Compose(from string, to []string, lead Lead) Message {
	body := strings.Join([]string{
		"Name: " + lead.Name,
		"Email: " + lead.Email,
		"Phone: " + pstrings.Or(lead.Phone, "—"),
		"",
		"Message:",
		lead.Message,
	}, "\n")
	return Message{
		From:    from,
		To:      append([]string(nil), to...),
		ReplyTo: lead.Email,
		Subject: "New website lead from " + lead.Name,
		Text:    body,
	}
}
