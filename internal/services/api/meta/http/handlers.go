// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"leadintake/internal/core/version"
	"leadintake/internal/modkit/httpkit"
	ptime "leadintake/internal/platform/time"
	"leadintake/internal/services/api/contact/domain"
)

// WidgetSource reports which captcha widgets the contact form can render
type WidgetSource interface {
	WidgetConfig() domain.WidgetConfig
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	Environment string
	StartedAt   time.Time
	Widgets     WidgetSource
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/captcha", h.captcha)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

// CaptchaResponse tells an operator what the form will see, without leaking keys
type CaptchaResponse struct {
	OK                      bool            `json:"ok"`
	Env                     string          `json:"env"`
	Host                    string          `json:"host"`
	TurnstileSiteKeyPresent bool            `json:"turnstileSiteKeyPresent"`
	RecaptchaSiteKeyPresent bool            `json:"recaptchaSiteKeyPresent"`
	ProviderDefault         domain.Provider `json:"providerDefault"`
	Timestamp               string          `json:"timestamp"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     ptime.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := ptime.Now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// captcha reports key presence per widget; the default provider is always turnstile
func (h *handlers) captcha(r *http.Request) (any, error) {
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	var w domain.WidgetConfig
	if h.deps.Widgets != nil {
		w = h.deps.Widgets.WidgetConfig()
	}
	return CaptchaResponse{
		OK:                      true,
		Env:                     h.deps.Environment,
		Host:                    host,
		TurnstileSiteKeyPresent: w.TurnstileSiteKey != "",
		RecaptchaSiteKeyPresent: w.RecaptchaSiteKey != "",
		ProviderDefault:         domain.ProviderTurnstile,
		Timestamp:               ptime.Stamp(ptime.Now()),
	}, nil
}
