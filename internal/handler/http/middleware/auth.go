package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"

	"github.com/leanchem/erp-backend-go/internal/domain/identity"
	"github.com/leanchem/erp-backend-go/internal/handler/http/response"
	"github.com/leanchem/erp-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a valid, unrevoked access token.
// jwtauth.Verifier must run earlier in the chain.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if jwtService.IsTokenRevoked(BearerToken(r)) {
				response.Unauthorized(w, "Token revoked")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// BearerToken returns the raw token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

// ActorFromRequest builds the acting identity out of verified token claims.
func ActorFromRequest(r *http.Request) identity.Actor {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return identity.Actor{}
	}

	actor := identity.Actor{}
	if v, ok := claims["employee_id"].(string); ok {
		actor.EmployeeID = v
	}
	if v, ok := claims["role"].(string); ok {
		actor.Role = identity.Role(v)
	}
	if v, ok := claims["name"].(string); ok {
		actor.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		actor.Email = v
	}
	return actor
}
