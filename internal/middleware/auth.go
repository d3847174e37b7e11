package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/connectsphere/connectsphere-api/internal/model"
	"github.com/connectsphere/connectsphere-api/internal/token"
)

const (
	// ContextKeyUserID is the key for the authenticated user's UUID in the Gin context
	ContextKeyUserID = "user_id"
	// ContextKeyRole is the key for the authenticated user's role in the Gin context
	ContextKeyRole = "role"
)

// AuthMiddleware validates bearer tokens and injects identity into context
type AuthMiddleware struct {
	issuer *token.Issuer
}

func NewAuthMiddleware(issuer *token.Issuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// Authenticate is the Gin middleware handler. A missing token is an
// authentication failure (401); a bad or expired one is rejected with 403.
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "No token provided",
			})
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "No token provided",
			})
			return
		}

		claims, err := am.issuer.Verify(parts[1])
		if err != nil {
			if !errors.Is(err, token.ErrExpired) {
				log.Warn().Err(err).Msg("Failed to verify bearer token")
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Invalid token",
			})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}

// RequireRole gates a route to a single role. The deny message is
// route-specific so responses read naturally per surface.
func RequireRole(role model.Role, denyMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": denyMessage,
			})
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user's UUID from the Gin context
func GetUserID(c *gin.Context) uuid.UUID {
	v, _ := c.Get(ContextKeyUserID)
	if id, ok := v.(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetRole extracts the authenticated user's role from the Gin context
func GetRole(c *gin.Context) model.Role {
	v, _ := c.Get(ContextKeyRole)
	if r, ok := v.(model.Role); ok {
		return r
	}
	return ""
}
