package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"memoir-backend/pkg/jwt"
)

const (
	ContextUserID        = "user_id"
	ContextAuthenticated = "authenticated"
)

// AuthMiddleware validates the Bearer token and puts the user ID on the context.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, manager)
		if !ok {
			c.JSON(401, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "invalid or missing token"}})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(401, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "invalid user ID in token"}})
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextAuthenticated, true)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer when a token is present but lets
// anonymous requests through. Public reads need this to tell Owner apart from
// AuthenticatedOther and Public.
func OptionalAuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, manager); ok {
			if userID, err := uuid.Parse(claims.UserID); err == nil {
				c.Set(ContextUserID, userID)
				c.Set(ContextAuthenticated, true)
			}
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, manager *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := manager.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}
