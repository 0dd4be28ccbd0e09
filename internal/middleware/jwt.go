package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"sweetshop/internal/store" // Data access
	"sweetshop/internal/utils" // JWT utility functions
)

// CurrentUserKey is the gin context key holding the authenticated user.
const CurrentUserKey = "currentUser"

// unauthorized aborts the request with a bearer challenge, as required for
// token-protected routes.
func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": msg})
}

// JWTAuthMiddleware validates the bearer token and resolves its subject to a
// user row, which is stored in the context for downstream handlers
func JWTAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Not authenticated")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			unauthorized(c, "Could not validate credentials")
			return
		}
		// Resolve the token subject to a stored user
		user, err := store.UserByUsername(db, claims.Username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load user"})
			return
		}
		if user == nil {
			unauthorized(c, "Could not validate credentials")
			return
		}
		c.Set(CurrentUserKey, user) // Store the resolved user in context
		c.Next()                    // Proceed to the next handler
	}
}

// AdminOnlyMiddleware restricts a route to users with the admin flag set.
// It must run after JWTAuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c) // Get resolved user from context
		if user == nil {
			// JWT middleware did not run or failed silently
			unauthorized(c, "Not authenticated")
			return
		}
		// Check the admin flag
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
