// Package module wires the contact API into HTTP via modkit
package module

import (
	"context"
	"net/http"

	"leadintake/internal/adapters/captcha"
	"leadintake/internal/adapters/mail"
	"leadintake/internal/modkit"
	"leadintake/internal/modkit/httpkit"
	"leadintake/internal/platform/strings"
	"leadintake/internal/services/api/contact/domain"
	contacthttp "leadintake/internal/services/api/contact/http"
	"leadintake/internal/services/api/contact/service"
)

// Ports exposes the service port for cross-module lookups
type Ports struct {
	Service domain.ServicePort
}

// Module implements the contact module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *service.Service
}

// New constructs the contact module from environment config and the secret source
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	cfg := LoadConfig(context.Background(), deps.Cfg, deps.SecretSource())
	return NewWithConfig(deps, cfg, opts...)
}

// NewWithConfig constructs the contact module from already resolved config
func NewWithConfig(deps modkit.Deps, cfg Config, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("contact"), modkit.WithPrefix("/contact")}, opts...)...)

	svc := service.New(
		cfg.Contact,
		providerClient(captcha.Turnstile, cfg.Contact.Turnstile, cfg),
		providerClient(captcha.Recaptcha, cfg.Contact.Recaptcha, cfg),
		mailPort{d: mail.NewDispatcher(cfg.Mail)},
		deps.Logger("contact.audit"),
	)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		contacthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}

	log := deps.Logger("contact")
	log.Info().
		Str("env", cfg.Contact.Environment).
		Bool("turnstile", cfg.Contact.Turnstile.Configured()).
		Bool("recaptcha", cfg.Contact.Recaptcha.Configured()).
		Bool("test_mode", cfg.Contact.TestBypass()).
		Str("turnstile_failure", string(cfg.Contact.TurnstileFailure)).
		Str("dispatch_failure", string(cfg.Contact.DispatchFailure)).
		Str("mail_transport", cfg.Mail.Transport).
		Msg("contact module ready")
	for _, w := range startupWarnings(cfg) {
		log.Warn().Bool("test_mode", cfg.Contact.TestMode).Str("env", cfg.Contact.Environment).Msg(w)
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name is the module name
func (m *Module) Name() string { return strings.Or(m.name, "contact") }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return strings.MustPrefix(m.prefix) }

// Middlewares is the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
