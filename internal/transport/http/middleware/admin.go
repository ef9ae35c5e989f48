package middleware

import (
	"errors"
	"net/http"
	"strings"

	"hrdocs/internal/domain/auth"
	"hrdocs/internal/transport/http/api"
)

// Authorizer validates a bearer token carrying the admin flag.
type Authorizer interface {
	Authorize(token string) error
}

func RequireAdmin(authz Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := GetRequestID(r.Context())
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
				return
			}
			if err := authz.Authorize(token); err != nil {
				switch {
				case errors.Is(err, auth.ErrNotAdmin):
					api.Fail(w, http.StatusForbidden, "forbidden", "admin privileges required", reqID)
				case errors.Is(err, auth.ErrAdminDisabled):
					api.Fail(w, http.StatusForbidden, "admin_disabled", "admin access is not configured", reqID)
				default:
					api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", reqID)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
