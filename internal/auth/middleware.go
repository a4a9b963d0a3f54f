package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

// TokenHeader is the request header clients present their token in.
const TokenHeader = "x-auth-token"

type contextKey string

// userClaimsKey is the context key for decoded token claims.
const userClaimsKey = contextKey("userClaims")

// ClaimsFromContext extracts the decoded claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	return claims, ok
}

// RequireAuth creates a middleware that rejects requests without a valid
// token. A missing token yields 401; a token that fails verification
// yields 400. On success the decoded claims are attached to the request
// context for downstream handlers.
func RequireAuth(tm *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			claims, err := tm.Verify(tokenStr)
			if err != nil {
				writeMsg(w, http.StatusBadRequest, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates a middleware that rejects authenticated requests
// whose claims do not carry the required role. It must run after
// RequireAuth in the chain.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}
			if claims.Role != role {
				writeMsg(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
