package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework

	"sweetshop/internal/domain" // Domain models
)

// CurrentUser returns the authenticated user resolved by JWTAuthMiddleware,
// or nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *domain.User {
	val, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	user, ok := val.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
