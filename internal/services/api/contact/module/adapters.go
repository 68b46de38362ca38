package module

import (
	"context"

	"leadintake/internal/adapters/captcha"
	"leadintake/internal/adapters/mail"
	"leadintake/internal/services/api/contact/domain"
)

// providerPort exposes a captcha client through the domain port
type providerPort struct {
	c *captcha.Client
}

func (p providerPort) Name() string { return p.c.Name() }

func (p providerPort) Verify(ctx context.Context, secret, token, remoteIP string) domain.VerifyResult {
	res := p.c.Verify(ctx, secret, token, remoteIP)
	return domain.VerifyResult{OK: res.OK, ErrorCodes: res.ErrorCodes}
}

// mailPort exposes the mail dispatcher through the domain port
type mailPort struct {
	d *mail.Dispatcher
}

func (m mailPort) Dispatch(ctx context.Context, lead domain.Lead) error {
	return m.d.Dispatch(ctx, mail.Lead{Name: lead.Name, Email: lead.Email, Phone: lead.Phone, Message: lead.Message})
}

// providerClient returns nil for an unconfigured provider so the cascade skips it
func providerClient(d captcha.Descriptor, pc domain.ProviderConfig, cfg Config) domain.ProviderClient {
	if !pc.Configured() {
		return nil
	}
	return providerPort{c: captcha.NewClient(d, captcha.Options{Timeout: cfg.VerifyTimeout, VerifyURL: pc.VerifyURL})}
}
