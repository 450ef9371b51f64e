package middleware

import (
	"net/http"
	"strings"

	"github.com/hearthworks/remodel/pkg/auth"
	"github.com/hearthworks/remodel/pkg/response"
)

// Auth validates the Bearer token and stores its claims in the request
// context for handlers that need the caller's identity.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			response.Fail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Fail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}
