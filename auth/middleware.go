// Package auth, as part of the authentication module.
// This file, `middleware.go`, defines the bearer-token middleware guarding protected routes.
package auth

import (
	"net/http"
	"strings"

	"github.com/user/degreeportal-go/apperror"
)

// JWTMiddleware verifies the Authorization header and stores an Authenticated
// Subject in the request context. Every rejection is terminal: the wrapped
// handler never runs.
//
//	no header                          -> 401 "Missing or invalid Authorization header"
//	not exactly "Bearer <token>"       -> 401 "Invalid AuthHeader format"
//	empty token                        -> 401 "Missing token"
//	no signing secret                  -> 500
//	bad signature, algorithm or expiry -> 401 "Expired or invalid token"
//	payload is not a claim             -> 401 "Invalid token payload"
func JWTMiddleware(authenticator *TokenAuthenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewUnauthorizedError("Missing or invalid Authorization header", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				WriteError(w, r, apperror.NewUnauthorizedError("Invalid AuthHeader format", nil))
				return
			}
			if parts[1] == "" {
				WriteError(w, r, apperror.NewUnauthorizedError("Missing token", nil))
				return
			}

			claim, err := authenticator.Authenticate(parts[1])
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := NewContextWithSubject(r.Context(), Authenticated{Claim: claim})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
