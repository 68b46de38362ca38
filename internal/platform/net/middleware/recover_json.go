package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "leadintake/internal/platform/errors"
	"leadintake/internal/platform/logger"
	phttp "leadintake/internal/platform/net/http"
)

// RecoverJSON converts panics into the generic JSON 500 body and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			phttp.RespondError(w, r, perr.PanicErrf("panic recovered: %v", v))
		}()
		next.ServeHTTP(w, r)
	})
}
