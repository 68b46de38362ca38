package service

import (
	"context"

	"github.com/rs/zerolog"

	perr "leadintake/internal/platform/errors"
	"leadintake/internal/services/api/contact/domain"
	"leadintake/internal/services/api/contact/parse"
)

// Public messages for rejected submissions
const (
	MsgChallenge = "Please complete the security challenge."
	MsgSpam      = "Spam detected."
)

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	settings domain.Settings
	parser   *parse.Parser
	cascade  *Cascade
	mail     domain.Dispatcher
	audit    *Audit
}

var _ domain.ServicePort = (*Service)(nil)

// New constructs the contact service
func New(s domain.Settings, turnstile, recaptcha domain.ProviderClient, mail domain.Dispatcher, log zerolog.Logger) *Service {
	if mail == nil {
		panic("contact.Service requires a non-nil Dispatcher")
	}
	if s.DispatchFailure == "" {
		s.DispatchFailure = domain.DispatchTestLenient
	}
	return &Service{
		settings: s,
		parser:   parse.New(parse.Limits{NameMin: s.NameMin, MessageMin: s.MessageMin}),
		cascade:  NewCascade(s, turnstile, recaptcha),
		mail:     mail,
		audit:    NewAudit(log),
	}
}

// Submit parses, verifies and relays one contact form post
// the notification is sent at most once and only after the cascade passed
func (s *Service) Submit(ctx context.Context, contentType string, body []byte, meta domain.RequestMeta) (domain.SubmitResult, error) {
	rec := s.audit.Begin(meta)
	var out domain.Outcome
	verified := false

	// a panic still leaves a server-error record; RecoverJSON answers the client
	defer func() {
		if p := recover(); p != nil {
			var o *domain.Outcome
			if verified {
				o = &out
			}
			rec.Emit(EventServerError, o, perr.PanicErrf("panic: %v", p))
			panic(p)
		}
	}()

	sub, err := s.parser.Parse(contentType, body)
	if err != nil {
		rec.Emit(EventFor(err), nil, err)
		return domain.SubmitResult{}, err
	}

	out = s.cascade.Verify(ctx, sub, meta)
	verified = true
	if !out.Passed {
		if out.Reason == domain.ReasonHoneypotHit {
			err = perr.Spamf(MsgSpam)
		} else {
			err = perr.VerificationFailed(MsgChallenge, out.ErrorCodes)
		}
		rec.Emit(EventFor(err), &out, err)
		return domain.SubmitResult{}, err
	}

	if err := s.mail.Dispatch(ctx, sub.Lead()); err != nil {
		if out.TestMode && s.settings.DispatchFailure == domain.DispatchTestLenient {
			rec.Emit(EventSuccess, &out, err)
			return domain.SubmitResult{Provider: out.Provider, Success: true}, nil
		}
		if _, ok := perr.As(err); !ok {
			err = perr.Wrap(err, perr.ErrorCodeUnknown, "dispatch")
		}
		rec.Emit(EventFor(err), &out, err)
		return domain.SubmitResult{}, err
	}

	rec.Emit(EventSuccess, &out, nil)
	return domain.SubmitResult{Provider: out.Provider, Success: true}, nil
}

// WidgetConfig returns the public site keys for the form
func (s *Service) WidgetConfig() domain.WidgetConfig {
	cfg := domain.WidgetConfig{
		TurnstileSiteKey: s.settings.Turnstile.SiteKey,
		RecaptchaSiteKey: s.settings.Recaptcha.SiteKey,
		ProviderDefault:  domain.ProviderNone,
	}
	switch {
	case cfg.TurnstileSiteKey != "":
		cfg.ProviderDefault = domain.ProviderTurnstile
	case cfg.RecaptchaSiteKey != "":
		cfg.ProviderDefault = domain.ProviderRecaptcha
	}
	return cfg
}

// MaxBodyBytes is the request body cap handlers apply before Submit
func (s *Service) MaxBodyBytes() int64 {
	if s.settings.MaxBodyBytes <= 0 {
		return 64 << 10
	}
	return s.settings.MaxBodyBytes
}
