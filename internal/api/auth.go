package api

import (
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes
	"time"     // Token TTL

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"sweetshop/internal/middleware" // Auth middleware helpers
	"sweetshop/internal/store"      // Data access
	"sweetshop/internal/utils"      // Token utilities
)

// RegisterRequest is the JSON body of the registration endpoint
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`  // Username must be provided
	FullName string `json:"full_name" binding:"required"` // Full name must be provided
	Email    string `json:"email" binding:"required"`     // Email must be provided
	Password string `json:"password" binding:"required"`  // Password must be provided
}

// LoginForm is the form-encoded body of the login endpoint
type LoginForm struct {
	Username string `form:"username" binding:"required"` // Username must be provided
	Password string `form:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return validation error
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}
		isAdmin := c.Query("is_admin") == "true" // Optional admin flag from query
		profile := store.UserProfile{
			Username: req.Username, // Username
			Email:    req.Email,    // Email address
			FullName: req.FullName, // Display name
		}
		// Create the user; duplicates are rejected
		user, err := store.CreateUser(db, profile, req.Password, isAdmin)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateUser) {
				// Duplicate username or email
				c.JSON(http.StatusBadRequest, gin.H{"detail": "User already registered"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"username": req.Username, // Requested username
				"error":    err.Error(),  // Error message
			}).Error("Registration failed") // Log registration failure
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to register user"})
			return
		}
		c.JSON(http.StatusOK, user) // Return the created profile (hash excluded via json tag)
	}
}

// LoginHandler authenticates a user and returns a bearer token
func LoginHandler(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form LoginForm // Bind form-encoded request to struct
		if err := c.ShouldBind(&form); err != nil {
			// If binding fails, return validation error
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}
		// Fetch the user; absent user and bad password get the same answer
		user, err := store.UserByUsername(db, form.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load user"})
			return
		}
		if user == nil || !utils.CheckPassword(form.Password, user.HashedPassword) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
			return
		}
		// Issue the access token
		token, err := utils.GenerateJWT(user.Username, jwtSecret, tokenTTL)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate token"})
			return
		}
		// Return the token with the embedded profile
		c.JSON(http.StatusOK, gin.H{
			"access_token": token,    // Signed bearer token
			"token_type":   "bearer", // Token type
			"user":         user,     // Authenticated user profile
		})
	}
}

// currentUsername returns the authenticated username for logging, or "" when
// the request is unauthenticated.
func currentUsername(c *gin.Context) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.Username
	}
	return ""
}
