// Package service implements the contact intake flow and its verification cascade
package service

import (
	"context"

	perr "leadintake/internal/platform/errors"
	"leadintake/internal/services/api/contact/domain"
)

// Cascade runs the honeypot guard and the providers in strict Turnstile then reCAPTCHA order
// it holds no per-request state and is safe for concurrent use
type Cascade struct {
	settings  domain.Settings
	turnstile domain.ProviderClient
	recaptcha domain.ProviderClient
}

// NewCascade wires one client per provider; a nil client leaves that provider unconfigured
func NewCascade(s domain.Settings, turnstile, recaptcha domain.ProviderClient) *Cascade {
	if s.TurnstileFailure == "" {
		s.TurnstileFailure = domain.TurnstileFailureHard
	}
	s.Turnstile.Name = domain.ProviderTurnstile
	s.Recaptcha.Name = domain.ProviderRecaptcha
	s.Recaptcha.RequireSiteKey = true
	return &Cascade{settings: s, turnstile: turnstile, recaptcha: recaptcha}
}

type stageResult int

const (
	stageSkipped stageResult = iota
	stagePassed
	stageFailed
)

type stage struct {
	cfg    domain.ProviderConfig
	client domain.ProviderClient
	token  string

	notConfigured domain.Reason
	missingToken  domain.Reason
	pass          domain.Reason
	fail          domain.Reason
}

// Verify decides whether sub came from a human. It makes at most two remote calls
func (c *Cascade) Verify(ctx context.Context, sub domain.LeadSubmission, meta domain.RequestMeta) domain.Outcome {
	out := domain.Outcome{Provider: domain.ProviderNone, ErrorCodes: []string{}}

	// a filled honeypot rejects before any provider is contacted
	if sub.Honeypot != "" {
		out.Provider = domain.ProviderHoneypot
		out.Reason = domain.ReasonHoneypotHit
		out.Reasons = append(out.Reasons, domain.ReasonHoneypotHit)
		out.Diagnostics = append(out.Diagnostics, "honeypot field was filled")
		return out
	}

	// production is re-checked here so a stray test flag stays inert
	if c.settings.TestBypass() && sub.TurnstileToken != "" {
		out.Provider = domain.ProviderTurnstile
		out.Passed = true
		out.TestMode = true
		out.Reason = domain.ReasonTurnstileTestMode
		out.Reasons = append(out.Reasons, domain.ReasonTurnstileTestMode)
		return out
	}

	switch c.run(ctx, c.turnstileStage(sub), meta, &out) {
	case stagePassed:
		return out
	case stageFailed:
		if c.settings.TurnstileFailure != domain.TurnstileFailureSoft {
			out.Reason = domain.ReasonTurnstileFail
			return out
		}
	}

	if c.run(ctx, c.recaptchaStage(sub), meta, &out) == stagePassed {
		return out
	}

	out.Reason = domain.ReasonVerificationFailed
	out.Reasons = append(out.Reasons, domain.ReasonVerificationFailed)
	return out
}

func (c *Cascade) turnstileStage(sub domain.LeadSubmission) stage {
	return stage{
		cfg:           c.settings.Turnstile,
		client:        c.turnstile,
		token:         sub.TurnstileToken,
		notConfigured: domain.ReasonTurnstileNotConfigured,
		missingToken:  domain.ReasonTurnstileMissingToken,
		pass:          domain.ReasonTurnstilePass,
		fail:          domain.ReasonTurnstileFail,
	}
}

func (c *Cascade) recaptchaStage(sub domain.LeadSubmission) stage {
	return stage{
		cfg:           c.settings.Recaptcha,
		client:        c.recaptcha,
		token:         sub.RecaptchaToken,
		notConfigured: domain.ReasonRecaptchaNotConfigured,
		missingToken:  domain.ReasonRecaptchaMissingToken,
		pass:          domain.ReasonRecaptchaPass,
		fail:          domain.ReasonRecaptchaFail,
	}
}

// ready reports why a stage cannot call its provider; these signals never leave the cascade
func (st stage) ready() error {
	if st.client == nil || !st.cfg.Configured() {
		return perr.NotConfiguredf("%s is not configured", st.cfg.Name)
	}
	if st.token == "" {
		return perr.TokenMissingf("%s token missing", st.cfg.Name)
	}
	return nil
}

func (c *Cascade) run(ctx context.Context, st stage, meta domain.RequestMeta, out *domain.Outcome) stageResult {
	if err := st.ready(); err != nil {
		if perr.IsCode(err, perr.ErrorCodeProviderNotConfigured) {
			out.Reasons = append(out.Reasons, st.notConfigured)
		} else {
			out.Reasons = append(out.Reasons, st.missingToken)
		}
		return stageSkipped
	}

	res := st.client.Verify(ctx, st.cfg.Secret, st.token, meta.ClientIP)
	if res.OK {
		out.Provider = st.cfg.Name
		out.Passed = true
		out.Reason = st.pass
		out.Reasons = append(out.Reasons, st.pass)
		return stagePassed
	}

	out.Reasons = append(out.Reasons, st.fail)
	out.ErrorCodes = append(out.ErrorCodes, res.ErrorCodes...)
	out.Diagnostics = append(out.Diagnostics, Diagnose(st.cfg.Name, res.ErrorCodes, meta.Host))
	return stageFailed
}
