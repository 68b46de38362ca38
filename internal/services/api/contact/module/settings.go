package module

import (
	"context"
	"time"

	"leadintake/internal/adapters/mail"
	"leadintake/internal/platform/config"
	"leadintake/internal/platform/secrets"
	"leadintake/internal/services/api/contact/domain"
	"leadintake/internal/services/api/contact/parse"
)

const (
	defaultVerifyTimeout = 8 * time.Second
	defaultMaxBodyBytes  = 64 << 10
)

// Config is everything the contact module resolves from the environment at startup
type Config struct {
	Contact       domain.Settings
	Mail          mail.Settings
	VerifyTimeout time.Duration
	// EnvExplicit is false when APP_ENV was absent and development was assumed
	EnvExplicit bool
}

// LoadConfig resolves contact, captcha and mail settings once
// public site keys come from config, secrets from src
func LoadConfig(ctx context.Context, cfg config.Conf, src secrets.Source) Config {
	if src == nil {
		src = secrets.EnvSource{}
	}
	env := cfg.AppEnv()

	// preview deployments carry their own Turnstile widget
	suffix := ""
	if env == config.EnvPreview {
		suffix = "_PREVIEW"
	}

	captcha := cfg.Prefix("CAPTCHA_")
	mailCfg := cfg.Prefix("MAIL_")
	contact := cfg.Prefix("CONTACT_")

	s := domain.Settings{
		Environment: string(env),
		Production:  env == config.EnvProduction,
		TestMode:    captcha.MayString("TEST_MODE", "") == "pass",
		Turnstile: domain.ProviderConfig{
			Name:      domain.ProviderTurnstile,
			Secret:    secrets.Value(ctx, src, "CAPTCHA_TURNSTILE_SECRET_KEY"+suffix),
			SiteKey:   captcha.MayString("TURNSTILE_SITE_KEY"+suffix, ""),
			VerifyURL: captcha.MayString("TURNSTILE_VERIFY_URL", ""),
		},
		Recaptcha: domain.ProviderConfig{
			Name:           domain.ProviderRecaptcha,
			Secret:         secrets.Value(ctx, src, "CAPTCHA_RECAPTCHA_SECRET_KEY"),
			SiteKey:        captcha.MayString("RECAPTCHA_SITE_KEY", ""),
			VerifyURL:      captcha.MayString("RECAPTCHA_VERIFY_URL", ""),
			RequireSiteKey: true,
		},
		TurnstileFailure: domain.TurnstileFailurePolicy(captcha.MayEnum("TURNSTILE_FAILURE_POLICY",
			string(domain.TurnstileFailureHard), string(domain.TurnstileFailureHard), string(domain.TurnstileFailureSoft))),
		DispatchFailure: domain.DispatchFailurePolicy(mailCfg.MayEnum("DISPATCH_FAILURE_POLICY",
			string(domain.DispatchTestLenient), string(domain.DispatchTestLenient), string(domain.DispatchFatal))),
		NameMin:      contact.MayPositiveInt("NAME_MIN", parse.DefaultNameMin),
		MessageMin:   contact.MayPositiveInt("MESSAGE_MIN", parse.DefaultMessageMin),
		MaxBodyBytes: int64(contact.MayPositiveInt("MAX_BODY_BYTES", defaultMaxBodyBytes)),
	}

	m := mail.Settings{
		Transport:     mailCfg.MayEnum("TRANSPORT", mail.TransportResend, mail.TransportResend, mail.TransportSMTP),
		From:          mailCfg.MayString("FROM", ""),
		To:            mailCfg.MayCSV("TO", nil),
		Credential:    secrets.First(ctx, src, "MAIL_API_KEY", "RESEND_API_KEY"),
		SMTPHost:      mailCfg.MayString("SMTP_HOST", ""),
		SMTPPort:      mailCfg.MayPositiveInt("SMTP_PORT", 587),
		SMTPUser:      mailCfg.MayString("SMTP_USER", ""),
		ResendBaseURL: mailCfg.MayString("RESEND_BASE_URL", ""),
	}

	return Config{
		Contact:       s,
		Mail:          m,
		VerifyTimeout: captcha.MayDuration("HTTP_TIMEOUT", defaultVerifyTimeout),
		EnvExplicit:   cfg.MayString("APP_ENV", "") != "",
	}
}

// startupWarnings lists test-mode configurations an operator should notice
func startupWarnings(cfg Config) []string {
	if !cfg.Contact.TestMode {
		return nil
	}
	switch {
	case cfg.Contact.Production:
		return []string{"CAPTCHA_TEST_MODE is set in production and is ignored"}
	case !cfg.EnvExplicit:
		return []string{"CAPTCHA_TEST_MODE=pass with APP_ENV unset; development assumed and the captcha bypass is active"}
	}
	return nil
}
