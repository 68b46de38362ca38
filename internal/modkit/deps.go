// Package modkit provides module wiring and core deps
package modkit

import (
	"leadintake/internal/platform/config"
	"leadintake/internal/platform/logger"
	"leadintake/internal/platform/secrets"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     *logger.Logger
	Cfg     config.Conf
	Secrets secrets.Source
}

// SecretSource returns the configured secret source, falling back to process env
// zero-value Deps stay usable in tests
func (d Deps) SecretSource() secrets.Source {
	if d.Secrets == nil {
		return secrets.EnvSource{}
	}
	return d.Secrets
}

// Logger returns a component logger rooted at Log, or at the process logger when Log is nil
func (d Deps) Logger(component string) logger.Logger {
	if d.Log == nil {
		return *logger.Named(component)
	}
	return d.Log.With().Str("component", component).Logger()
}
