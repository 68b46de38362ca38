package net

import (
	stdnet "net"
	"net/http"
	"strings"

	pstrings "leadintake/internal/platform/strings"
)

// ClientIP resolves the submitter address for provider calls and audit records
// Order: CF-Connecting-IP, first hop of X-Forwarded-For, X-Real-IP, then the socket peer
func ClientIP(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); v != "" {
		return v
	}
	if v := pstrings.FirstToken(r.Header.Get("X-Forwarded-For")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get("X-Real-IP")); v != "" {
		return v
	}
	if host, _, err := stdnet.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
