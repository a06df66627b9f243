package server

import (
	"context"
	"net/http"
	"strings"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/token"
	"github.com/jrsteele09/go-mall-client/users"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the verified credential claims
	ContextKeyClaims ContextKey = "claims"
	// ContextKeyUser stores the account the credential belongs to
	ContextKeyUser ContextKey = "user"
	// ContextKeyRequestID stores the request correlation id
	ContextKeyRequestID ContextKey = "request_id"
)

// RequireAuth is middleware that validates a Bearer credential and loads its account
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// Extract Bearer token from Authorization header
			parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				writeError(w, http.StatusUnauthorized, "request rejected, a valid bearer credential is required")
				return
			}

			claims, err := token.Verify(strings.TrimSpace(parts[1]), s.signer)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("[Server RequireAuth] credential rejected")
				writeError(w, http.StatusUnauthorized, "credential is invalid or expired, please log in again")
				return
			}

			if s.revoked.IsRevoked(claims) {
				log.Debug().Str("jti", claims.ID).Msg("[Server RequireAuth] credential was logged out")
				writeError(w, http.StatusUnauthorized, "credential is invalid or expired, please log in again")
				return
			}

			user, err := s.users.GetByID(claims.UserID)
			if err != nil {
				log.Debug().Err(err).Int64("user_id", claims.UserID).Msg("[Server RequireAuth] unknown account")
				writeError(w, http.StatusUnauthorized, "credential is invalid or expired, please log in again")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			ctx = context.WithValue(ctx, ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin rejects callers whose account is not an administrator. It must
// run after RequireAuth.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user := userFromContext(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, mallerrors.ErrNotAuthenticated.Error())
				return
			}
			if !user.IsAdmin {
				writeError(w, http.StatusForbidden, mallerrors.ErrNotAdministrator.Error())
				return
			}
			next(w, r)
		}
	}
}

func claimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims
}

func userFromContext(ctx context.Context) *users.User {
	user, _ := ctx.Value(ContextKeyUser).(*users.User)
	return user
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}
