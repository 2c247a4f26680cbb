package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Wrap applies mws so that the last one listed is the outermost.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}

// StripBase mounts h below the configured base path.
func StripBase(base string) Middleware {
	return func(h http.Handler) http.Handler {
		if base == "" || base == "/" {
			return h
		}
		return http.StripPrefix(base, h)
	}
}
