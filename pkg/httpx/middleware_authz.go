package httpx

import (
	"net/http"
	"slices"
)

// RequireAnyRole lets the request through only when the principal's system
// role is one of roles. It must run after the session middleware.
func RequireAnyRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := Role(r.Context())
			if role == "" {
				WriteJSON(w, http.StatusUnauthorized, ErrorBody{Code: "unauthorized", Message: "Authentication required"})
				return
			}
			if !slices.Contains(roles, role) {
				WriteJSON(w, http.StatusForbidden, ErrorBody{Code: "forbidden", Message: "You do not have access to this resource"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
