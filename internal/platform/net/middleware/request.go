package middleware

import (
	"net/http"

	"leadintake/internal/platform/logger"
	pnet "leadintake/internal/platform/net"
)

// RequestContext resolves the client address once and stores it with the request id
// on both the transport context and the logger context. Mount after RequestID
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := pnet.ClientIP(r)
		rid := pnet.RequestID(r.Context())
		ctx := pnet.WithRequest(r.Context(), "", ip)
		ctx = logger.WithRequest(ctx, rid, ip)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
