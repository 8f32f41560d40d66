package middleware

import (
	"net/http"
	"strings"

	"scribbly/internal/httputil"
)

// TokenVerifier validates a bearer token and returns the user ID it carries.
type TokenVerifier interface {
	VerifyToken(tokenString string) (string, error)
}

// Auth validates the Authorization header and stores the authenticated
// user ID in the request context. Requests without a valid token get 401.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			userID, err := verifier.VerifyToken(parts[1])
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
