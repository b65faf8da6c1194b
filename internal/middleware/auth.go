package middleware

import (
	"net/http"
	"strings"

	"github.com/ofertemutare/ofertemutare/internal/ctxkeys"
	"github.com/ofertemutare/ofertemutare/internal/i18n"
	"github.com/ofertemutare/ofertemutare/internal/respond"
	"github.com/ofertemutare/ofertemutare/internal/service"
)

// BearerAuth checks for a bearer JWT and adds the caller to context if valid.
// Missing or invalid tokens continue anonymously; RequireCaller rejects them.
func BearerAuth(authService *service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := authService.VerifyJWT(strings.TrimSpace(raw))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithCaller(r.Context(), caller)))
		})
	}
}

// RequireCaller ensures the request carries a verified bearer identity.
func RequireCaller(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.Caller(r.Context()) == nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			respond.Error(w, http.StatusUnauthorized, i18n.T(r, i18n.Unauthorized))
			return
		}
		next(w, r)
	}
}
