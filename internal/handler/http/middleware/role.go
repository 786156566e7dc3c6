package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/handler/http/response"
)

// AdminOnly requires an admin or superadmin role
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || !identity.Role(role).IsAdmin() {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
