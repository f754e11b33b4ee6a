package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// Authorizer resolves a bearer token to an identity.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (auth.Identity, error)
}

type AuthMiddleware struct {
	Authority Authorizer
}

func NewAuthMiddleware(authority Authorizer) *AuthMiddleware {
	return &AuthMiddleware{Authority: authority}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return header[len(prefix):]
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read bearer token
		token := bearerToken(r)
		if token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Resolve it through the session authority
		identity, err := a.Authority.Authorize(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrBackendUnavailable) {
				http.Error(w, "auth backend unavailable", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Attach identity to context
		ctx := context.WithValue(r.Context(), identityKey, identity)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
