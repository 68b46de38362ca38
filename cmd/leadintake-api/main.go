// Command leadintake-api serves the website contact form endpoint
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"leadintake/internal/platform/config"
	"leadintake/internal/platform/logger"
	phttp "leadintake/internal/platform/net/http"
	"leadintake/internal/platform/net/middleware"
	"leadintake/internal/platform/secrets"

	"leadintake/internal/services/api"
)

func main() {
	// .env is a local convenience only; deployed environments inject real vars
	if os.Getenv("APP_ENV") != string(config.EnvProduction) {
		_ = godotenv.Load()
	}

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("LEADS_API_")

	src, err := secrets.New(root)
	if err != nil {
		l.Panic().Err(err).Msg("secrets.New failed")
	}

	// http server (reads LEADS_API_API_PORT); /healthz answers load balancers before routing
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(middleware.Heartbeat("/healthz"))
	})

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Secrets:        src,
			Logger:         l,
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			Timeout:        apiCfg.MayDuration("TIMEOUT", 30*time.Second),
			SlowRequest:    apiCfg.MayDuration("SLOW_REQUEST", 2*time.Second),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info().Str("addr", srv.Addr()).Str("env", string(root.AppEnv())).Msg("leadintake api starting")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
