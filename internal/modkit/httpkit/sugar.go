package httpkit

import (
	"net/http"
)

// Get registers a no-body handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post registers a handler under POST; the handler reads the body itself
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// PostAt registers a single POST handler at an absolute path inside its own middleware group
// used for legacy aliases that live outside a versioned scope
// an OPTIONS route is registered too so group middleware such as CORS sees preflights
func PostAt(r Router, path string, mw []func(http.Handler) http.Handler, h Handler) {
	r.Group(func(g Router) {
		if len(mw) > 0 {
			g.Use(mw...)
		}
		g.Post(path, h)
		g.Options(path, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	})
}
