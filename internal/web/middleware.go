package web

import (
	"context"
	"net/http"

	"github.com/campusboard/lostfound/internal/auth"
	"github.com/campusboard/lostfound/internal/store"
)

type contextKey string

const (
	memberClaimsKey contextKey = "memberClaims"
	adminClaimsKey  contextKey = "adminClaims"
)

// WithSession reads the session cookies and attaches any valid claims
// to the request context. Handlers decide whether a session is required.
func (s *Server) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if claims := s.cookieClaims(r, "token"); claims != nil && claims.IsMember() {
			ctx = context.WithValue(ctx, memberClaimsKey, claims)
		}

		if claims := s.cookieClaims(r, "admin_token"); claims != nil && claims.IsAdmin() {
			ctx = context.WithValue(ctx, adminClaimsKey, claims)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cookieClaims validates the token in the named cookie. It returns nil
// for missing, invalid, expired or revoked tokens.
func (s *Server) cookieClaims(r *http.Request, name string) *auth.Claims {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value)
	if err != nil {
		return nil
	}

	revoked, err := store.IsTokenRevoked(r.Context(), s.DB, claims.ID)
	if err != nil || revoked {
		return nil
	}

	return claims
}

// MemberClaims returns the member session claims, or nil.
func MemberClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(memberClaimsKey).(*auth.Claims)
	return claims
}

// AdminClaims returns the administrator session claims, or nil.
func AdminClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(adminClaimsKey).(*auth.Claims)
	return claims
}
