package middleware

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/auth"
	"github.com/tinymillion/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Auth context keys
const (
	ClaimsKey      = "jwt_claims"
	UserIDKey      = "user_id"
	RoleKey        = "role"
	IsAdminKey     = "is_admin"
	MiniStoreIDKey = "mini_store_id"
	AuthHeaderKey  = "Authorization"
	TokenHeaderKey = "token"
)

// tokenCookies are checked in order when no header carries a token
var tokenCookies = []string{"token", "jwt", "auth"}

var bearerPrefix = regexp.MustCompile(`(?i)^Bearer\s+`)

// TokenValidator validates a raw token string
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// SubAdminLookup loads the account behind a sub-admin token
type SubAdminLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// AuthConfig holds configuration for the auth middlewares
type AuthConfig struct {
	// Tokens is required for token validation
	Tokens TokenValidator
	// Blacklist is optional; a revoked jti is treated as an invalid token
	Blacklist auth.TokenBlacklist
	// Users is required by SubAdminOnly
	Users  SubAdminLookup
	Logger *zap.Logger
}

// ExtractToken returns the raw token of a request. The Authorization header
// wins over the token header, which wins over the token, jwt and auth cookies.
// A Bearer prefix and surrounding quotes are stripped.
func ExtractToken(c *gin.Context) string {
	raw := c.GetHeader(AuthHeaderKey)
	if raw == "" {
		raw = c.GetHeader(TokenHeaderKey)
	}
	if raw == "" {
		for _, name := range tokenCookies {
			if v, err := c.Cookie(name); err == nil && v != "" {
				raw = v
				break
			}
		}
	}

	token := strings.TrimSpace(raw)
	token = bearerPrefix.ReplaceAllString(token, "")
	token = strings.TrimPrefix(token, `"`)
	token = strings.TrimPrefix(token, `'`)
	token = strings.TrimSuffix(token, `"`)
	token = strings.TrimSuffix(token, `'`)
	return token
}

// AuthUser authenticates customer, sub-admin and admin tokens
func AuthUser(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			abortAuth(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Not Authorized (token missing)")
			return
		}

		claims, ok := validate(c, cfg, token)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Invalid or expired token")
			return
		}

		if claims.IsAdmin() {
			setClaims(c, claims, auth.RoleAdmin)
			c.Next()
			return
		}

		if _, err := claims.UserUUID(); err != nil {
			abortAuth(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Invalid token payload")
			return
		}
		role := claims.Role
		if role == "" {
			role = auth.RoleCustomer
		}
		setClaims(c, claims, role)
		c.Next()
	}
}

// AdminOnly admits only admin tokens
func AdminOnly(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			abortAuth(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Not Authorized - Admin access required")
			return
		}

		claims, ok := validate(c, cfg, token)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Invalid or expired token")
			return
		}
		if !claims.IsAdmin() {
			abortAuth(c, http.StatusForbidden, shared.CodeForbidden, "Forbidden - Admin access required")
			return
		}

		setClaims(c, claims, auth.RoleAdmin)
		c.Next()
	}
}

// SubAdminOnly admits sub-admin tokens whose account still owns a store
func SubAdminOnly(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			abortAuth(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Not Authorized - Sub-admin access required")
			return
		}

		claims, ok := validate(c, cfg, token)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Invalid or expired token")
			return
		}
		if claims.Role != auth.RoleSubAdmin {
			abortAuth(c, http.StatusForbidden, shared.CodeForbidden, "Forbidden - Sub-admin access required")
			return
		}

		userID, err := claims.UserUUID()
		if err != nil {
			abortAuth(c, http.StatusNotFound, shared.CodeNotFound, "User not found")
			return
		}
		user, err := cfg.Users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				abortAuth(c, http.StatusNotFound, shared.CodeNotFound, "User not found")
				return
			}
			authLogger(c, cfg).Error("Sub-admin lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
			abortAuth(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Authentication failed")
			return
		}
		if !user.HasStore() {
			abortAuth(c, http.StatusForbidden, shared.CodeForbidden, "No mini store assigned to this sub-admin")
			return
		}

		setClaims(c, claims, auth.RoleSubAdmin)
		c.Set(MiniStoreIDKey, *user.MiniStoreID)
		c.Next()
	}
}

func validate(c *gin.Context, cfg AuthConfig, token string) (*auth.Claims, bool) {
	claims, err := cfg.Tokens.ValidateToken(token)
	if err != nil {
		authLogger(c, cfg).Debug("Token rejected", zap.Error(err))
		return nil, false
	}

	err = auth.CheckNotRevoked(c.Request.Context(), cfg.Blacklist, claims)
	switch {
	case errors.Is(err, auth.ErrTokenBlacklisted):
		authLogger(c, cfg).Debug("Token rejected", zap.String("jti", claims.ID), zap.Error(err))
		return nil, false
	case err != nil:
		// fail open: revocation only shortens a token's lifetime
		authLogger(c, cfg).Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *auth.Claims, role string) {
	c.Set(ClaimsKey, claims)
	c.Set(RoleKey, role)
	c.Set(IsAdminKey, role == auth.RoleAdmin)
	if id, err := claims.UserUUID(); err == nil {
		c.Set(UserIDKey, id)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), id.String()))
	}
}

func abortAuth(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func authLogger(c *gin.Context, cfg AuthConfig) *zap.Logger {
	if _, ok := c.Get("logger"); ok {
		return logger.GetGinLogger(c)
	}
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return zap.NewNop()
}

// GetClaims returns the validated claims of the request
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetUserID returns the authenticated user id
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetMiniStoreID returns the store of the authenticated sub-admin
func GetMiniStoreID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(MiniStoreIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// IsAdmin reports whether the request carries an admin token
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(IsAdminKey)
}
