package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/inventory-dashboard-api/internal/pkg/token"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the caller recovered from a session token. The token is an
// unsigned reversible encoding — possession equals authentication — so all
// this middleware can do is decode it and reject garbage.
type Identity struct {
	Email    string
	IssuedAt time.Time
}

// Session returns middleware that decodes the Bearer session token and
// injects the identity into context. Undecodable tokens are treated as
// unauthenticated, never as a server error.
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			tok := strings.TrimPrefix(authHeader, "Bearer ")
			email, issuedAt, err := token.Decode(tok)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid session token")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, &Identity{Email: email, IssuedAt: issuedAt})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the session identity from the request context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}
