package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/instiprop/instiprop-api/internal/pkg/jwt"
	"github.com/instiprop/instiprop-api/internal/pkg/response"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UniqueIDKey contextKey = "unique_id"
	RoleKey     contextKey = "role"
)

// Account carries the account flags the auth gate checks on every request.
type Account struct {
	UniqueID  int64
	Role      string
	Suspended bool
	Verified  bool
}

// AccountSource loads the account state for a user id.
// Implementations return (nil, nil) when the user does not exist.
type AccountSource interface {
	AccountByID(ctx context.Context, id uuid.UUID) (*Account, error)
}

// Auth returns middleware that validates JWT and checks account state.
// Suspended or unverified accounts are rejected even with a valid token.
func Auth(jwtService *jwt.Service, accounts AccountSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			// Check Bearer prefix
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			// Validate token
			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			// Account gate: the token alone is not enough. Suspension or a
			// revoked verification must take effect before the token expires.
			account, err := accounts.AccountByID(r.Context(), claims.UserID)
			if err != nil {
				response.InternalError(w)
				return
			}
			if account == nil {
				response.Unauthorized(w, "User not found")
				return
			}
			if account.Suspended {
				response.Forbidden(w, "Your account has been suspended")
				return
			}
			if !account.Verified {
				response.Forbidden(w, "Your account is not verified")
				return
			}

			// Add claims to context
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UniqueIDKey, account.UniqueID)
			ctx = context.WithValue(ctx, RoleKey, account.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetUniqueID extracts the integer account id from context
func GetUniqueID(ctx context.Context) int64 {
	if id, ok := ctx.Value(UniqueIDKey).(int64); ok {
		return id
	}
	return 0
}

// GetRole extracts role name from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}

// RequireRole returns middleware that checks user role
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetRole(r.Context())

			for _, role := range roles {
				if userRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}
