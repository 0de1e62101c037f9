package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// Authenticator resolves a bearer token to the subject it was issued for.
// Failures wrap the jwtx error kinds.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// AuthnMiddleware requires a valid bearer token and puts its subject on the
// request context.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "", "missing bearer token")
				return
			}

			subject, err := a.Authenticate(ctx, raw)
			switch {
			case err == nil:
			case errors.Is(err, jwtx.ErrExpired):
				writeBearerError(w, "invalid_token", "token expired")
				return
			case jwtx.IsAuthFailure(err):
				log.Debug("bearer token rejected", "err", err)
				writeBearerError(w, "invalid_token", "invalid token")
				return
			default:
				log.Error("authenticate failed", "err", err)
				WriteError(w, http.StatusInternalServerError, "server_error", "")
				return
			}

			ctx = WithSubject(ctx, subject)
			ctx = slogx.With(ctx, "user_id", subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// writeBearerError answers 401 with an RFC 6750 challenge. A request with
// no credentials gets a bare challenge without an error code.
func writeBearerError(w http.ResponseWriter, code, desc string) {
	challenge := `Bearer realm="storefront"`
	if code != "" {
		challenge += `, error="` + code + `", error_description="` + desc + `"`
	}
	w.Header().Set("WWW-Authenticate", challenge)

	if code == "" {
		code = "unauthorized"
	}
	WriteError(w, http.StatusUnauthorized, code, desc)
}
