package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// AdminChecker answers whether subject may use admin routes.
type AdminChecker interface {
	IsAdmin(ctx context.Context, subject string) (bool, error)
}

// RequireAdmin must run after AuthnMiddleware. Non-admins get 403.
func RequireAdmin(c AdminChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			subject, ok := SubjectFromContext(ctx)
			if !ok {
				writeBearerError(w, "", "missing bearer token")
				return
			}

			admin, err := c.IsAdmin(ctx, subject)
			if err != nil {
				slogx.FromContext(ctx).Error("admin check failed", "err", err)
				WriteError(w, http.StatusInternalServerError, "server_error", "")
				return
			}
			if !admin {
				WriteError(w, http.StatusForbidden, "forbidden", "admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
