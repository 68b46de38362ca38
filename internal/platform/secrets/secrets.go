// Package secrets resolves credentials (provider secrets, mail keys) from a pluggable backend
package secrets

import (
	"context"
	"errors"
	"os"
	"strings"

	"leadintake/internal/platform/config"
	"leadintake/internal/platform/logger"
)

// ErrNotFound is returned when no backend holds the key
var ErrNotFound = errors.New("secret not found")

// Source is a backend that can provide secret values
type Source interface {
	Name() string
	Lookup(ctx context.Context, key string) (string, error)
}

// Provider names accepted by SECRETS_PROVIDER
const (
	ProviderEnv   = "env"
	ProviderVault = "vault"
)

// New selects the backend named by SECRETS_PROVIDER (env by default)
func New(cfg config.Conf) (Source, error) {
	switch cfg.MayEnum("SECRETS_PROVIDER", ProviderEnv, ProviderEnv, ProviderVault) {
	case ProviderVault:
		return NewVaultSource(cfg.Prefix("VAULT_"))
	default:
		return EnvSource{}, nil
	}
}

// EnvSource reads secrets straight from the process environment (.env in dev)
type EnvSource struct{}

// Name implements Source
func (EnvSource) Name() string { return ProviderEnv }

// Lookup implements Source
func (EnvSource) Lookup(_ context.Context, key string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v, nil
	}
	return "", ErrNotFound
}

// Value returns the secret for key, or "" when absent
// Backend failures are logged and treated as absent so a missing credential
// degrades to "provider not configured" instead of failing startup
func Value(ctx context.Context, src Source, key string) string {
	v, err := src.Lookup(ctx, key)
	if err == nil {
		return v
	}
	if !errors.Is(err, ErrNotFound) {
		logger.Named("secrets").Warn().Err(err).Str("source", src.Name()).Str("key", key).Msg("secret lookup failed")
	}
	return ""
}

// First returns the first present secret among keys, or ""
func First(ctx context.Context, src Source, keys ...string) string {
	for _, k := range keys {
		if v := Value(ctx, src, k); v != "" {
			return v
		}
	}
	return ""
}
