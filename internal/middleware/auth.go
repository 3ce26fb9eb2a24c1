package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-be/internal/jwt"
	"catalog-be/internal/repository"
)

// Context keys set by AuthMiddleware for downstream handlers
const (
	ContextUserID = "userId"
	ContextEmail  = "email"
)

// AuthMiddleware is the sole gate for protected routes. It extracts the
// bearer token, verifies it as an access token, re-confirms the user still
// exists, and attaches the identity to the request context.
func AuthMiddleware(tokens *jwt.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		claims, err := tokens.VerifyAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// The token may outlive its user
		if _, err := userRepo.FindByID(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
