// Package http provides HTTP transport for the contact API
package http

import (
	stdhttp "net/http"

	"leadintake/internal/modkit/httpkit"
	"leadintake/internal/platform/logger"
	pnet "leadintake/internal/platform/net"
	"leadintake/internal/platform/net/http/bind"
	"leadintake/internal/services/api/contact/domain"
)

// Register mounts contact endpoints on the given router
// the form posts multipart, url-encoded or JSON to the module root
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	r.Post("/", Submit(s))
	httpkit.Get(r, "/config", h.config)
}

type handlers struct{ svc domain.ServicePort }

// Submit returns the submission handler, also mounted at the legacy path
func Submit(s domain.ServicePort) httpkit.Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		httpkit.Handle(func(r *stdhttp.Request) httpkit.Response {
			body, err := bind.ReadBody(w, r, s.MaxBodyBytes())
			if err != nil {
				logger.C(r.Context()).Info().Err(err).Msg("contact body rejected")
				return httpkit.Error(err)
			}
			res, err := s.Submit(r.Context(), r.Header.Get("Content-Type"), body, Meta(r))
			if err != nil {
				return httpkit.Error(err)
			}
			return httpkit.OK(res)
		})(w, r)
	}
}

// Meta collects the request facts the cascade and audit log use
func Meta(r *stdhttp.Request) domain.RequestMeta {
	ctx := r.Context()
	ip := pnet.ClientIPFrom(ctx)
	if ip == "" {
		ip = pnet.ClientIP(r)
	}
	return domain.RequestMeta{
		RequestID: pnet.RequestID(ctx),
		Host:      r.Host,
		UserAgent: r.UserAgent(),
		ClientIP:  ip,
	}
}

func (h *handlers) config(_ *stdhttp.Request) (any, error) {
	return h.svc.WidgetConfig(), nil
}
