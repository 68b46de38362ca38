package service

import (
	"fmt"

	"leadintake/internal/services/api/contact/domain"
)

// Diagnose turns a provider's raw error codes into one operator-facing line
// The first recognized code wins; diagnostics never reach the client
func Diagnose(provider domain.Provider, codes []string, host string) string {
	for _, code := range codes {
		switch code {
		case "invalid-domain", "invalid-input-response":
			return fmt.Sprintf("Invalid domain for %s site key (%s not whitelisted)", provider, host)
		case "invalid-sitekey":
			return fmt.Sprintf("Invalid %s site key", provider)
		case "invalid-input-secret":
			return fmt.Sprintf("Invalid %s secret key", provider)
		case "timeout-or-duplicate", "timeout-or-duplicate-response":
			return fmt.Sprintf("%s token expired or already used", provider)
		case "missing-input-response":
			return fmt.Sprintf("Missing %s token", provider)
		case "missing-input-secret":
			return fmt.Sprintf("Missing %s secret key", provider)
		case "bad-request":
			return fmt.Sprintf("%s verification request invalid", provider)
		}
	}
	return fmt.Sprintf("%s verification failed", provider)
}
