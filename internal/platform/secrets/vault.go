package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"leadintake/internal/platform/config"

	vault "github.com/hashicorp/vault/api"
)

// kvReader is the slice of the Vault KV v2 client we use
type kvReader interface {
	Get(ctx context.Context, secretPath string) (*vault.KVSecret, error)
}

// VaultSource reads KV v2 secrets stored as {"value": "..."} under <mount>/data/<key>
// An explicit environment variable still wins so operators can override one key locally
type VaultSource struct {
	kv    kvReader
	mount string
}

// NewVaultSource builds a client from VAULT_ADDR, VAULT_TOKEN and VAULT_PATH (mount, default "secret")
func NewVaultSource(cfg config.Conf) (*VaultSource, error) {
	addr := cfg.MayString("ADDR", "")
	token := cfg.MayString("TOKEN", "")
	mount := cfg.MayString("PATH", "secret")
	if addr == "" || token == "" {
		return nil, errors.New("vault secrets require VAULT_ADDR and VAULT_TOKEN")
	}

	client, err := vault.NewClient(&vault.Config{Address: addr})
	if err != nil {
		return nil, fmt.Errorf("vault client init: %w", err)
	}
	client.SetToken(token)
	return &VaultSource{kv: client.KVv2(mount), mount: mount}, nil
}

// Name implements Source
func (v *VaultSource) Name() string { return ProviderVault }

// Lookup implements Source
func (v *VaultSource) Lookup(ctx context.Context, key string) (string, error) {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val, nil
	}

	secret, err := v.kv.Get(ctx, key)
	if errors.Is(err, vault.ErrSecretNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("vault read %s/%s: %w", v.mount, key, err)
	}
	if secret == nil {
		return "", ErrNotFound
	}
	if val, ok := secret.Data["value"].(string); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val), nil
	}
	return "", ErrNotFound
}
