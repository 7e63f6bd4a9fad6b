package middleware

import (
	"net/http"

	"photoportal/internal/auth"
)

// LoadIdentity reads the caller's session identity and injects it into the
// request context. An empty identity is injected when there is no session.
func LoadIdentity(s *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithIdentity(req.Context(), s.Current(req))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// RequireIdentity redirects callers without an identity to loginPath.
// It must run after LoadIdentity.
func RequireIdentity(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id, ok := auth.IdentityFromContext(req.Context())
			if !ok || !id.Authenticated() {
				http.Redirect(w, req, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
