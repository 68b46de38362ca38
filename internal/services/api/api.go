// Package api provides the HTTP API for the application
package api

import (
	"time"

	"leadintake/internal/platform/config"
	"leadintake/internal/platform/logger"
	phttp "leadintake/internal/platform/net/http"
	"leadintake/internal/platform/secrets"

	"leadintake/internal/modkit"
	"leadintake/internal/modkit/httpkit"
	"leadintake/internal/modkit/module"

	"leadintake/internal/services/api/contact/domain"
	contacthttp "leadintake/internal/services/api/contact/http"
	contactmod "leadintake/internal/services/api/contact/module"
	metamod "leadintake/internal/services/api/meta/module"
)

// LegacyContactPath is the pre-versioning form action still embedded in deployed pages
const LegacyContactPath = "/api/contact"

// Options are the API options
type Options struct {
	Config         config.Conf
	Secrets        secrets.Source
	Logger         *logger.Logger
	CORSOrigins    []string
	Timeout        time.Duration
	SlowRequest    time.Duration
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Secrets: opt.Secrets,
		Log:     opt.Logger,
	}

	// contact owns the service port; meta reads widget config from it
	contact := contactmod.New(deps)
	svc := module.MustPortsOf[domain.ServicePort](contact)

	mods := []module.Module{
		contact,
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Widgets: svc})),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Timeout:     opt.Timeout,
		SlowRequest: opt.SlowRequest,
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	httpkit.PostAt(r, LegacyContactPath, stack, contacthttp.Submit(svc))
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}
