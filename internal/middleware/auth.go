package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/match3-server/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

// Auth attaches the caller's session claims to the request context when a
// valid token is present. Requests without one pass through unchanged.
func Auth(log *logrus.Logger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseSessionClaims(r)
			if err != nil {
				if !errors.Is(err, http.ErrNoCookie) {
					log.WithError(err).Debug("rejecting session token")
				}
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionClaims(ctx context.Context) (*config.SessionClaims, bool) {
	claims, ok := ctx.Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}
