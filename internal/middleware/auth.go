package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"convertify/internal/auth"
	"convertify/internal/httputil"
)

// OptionalAuth attaches the verified user to the request context.
//
// Requests without an Authorization header continue anonymously. A header
// that is present but is not a valid bearer token is rejected with 401.
// A nil verifier treats every request as anonymous.
func OptionalAuth(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if verifier == nil || header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, "invalid authorization header",
					map[string]interface{}{"success": false})
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				logger.Debug("rejected bearer token", "path", r.URL.Path, "error", err)
				httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, "invalid or expired token",
					map[string]interface{}{"success": false})
				return
			}

			next.ServeHTTP(w, httputil.WithClaims(r, claims))
		})
	}
}
