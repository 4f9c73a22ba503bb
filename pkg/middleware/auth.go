package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/dinehub/pkg/auth"
	"github.com/shashiranjanraj/dinehub/pkg/response"
)

// identityKey is the unexported context key for the authenticated identity.
type identityKey struct{}

// Identity is the verified caller extracted from the token.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// Auth authenticates the request from the httpOnly token cookie or an
// Authorization: Bearer header and stores the verified identity in the
// request context. Missing, invalid, or expired tokens get a 401 and, for
// cookie callers, the stale cookie is cleared.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, fromCookie := extractToken(r)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			if fromCookie {
				auth.ClearTokenCookie(w)
			}
			response.Unauthorized(w)
			return
		}

		identity := Identity{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}
		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) (token string, fromCookie bool) {
	if cookie, err := r.Cookie(auth.TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), false
	}
	return "", false
}

// IdentityFromCtx returns the authenticated identity, if any.
func IdentityFromCtx(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey{}).(Identity)
	return id, ok
}

// RoleFromCtx returns the caller's role, if authenticated.
func RoleFromCtx(r *http.Request) (string, bool) {
	id, ok := IdentityFromCtx(r)
	return id.Role, ok
}

// UserIDFromCtx returns the caller's user id, if authenticated.
func UserIDFromCtx(r *http.Request) (string, bool) {
	id, ok := IdentityFromCtx(r)
	return id.UserID, ok
}
