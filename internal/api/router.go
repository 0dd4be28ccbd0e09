package api

import (
	"time" // Token TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"sweetshop/internal/middleware" // Auth middleware
)

// NewRouter wires every route group onto a gin engine. The Redis client may
// be nil, in which case the catalog endpoints skip caching.
func NewRouter(db *gorm.DB, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration) *gin.Engine {
	r := gin.Default() // Gin router instance

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", RegisterHandler(db))                // Registration endpoint
	authGroup.POST("/login", LoginHandler(db, jwtSecret, tokenTTL)) // Login endpoint

	// Sweet routes; reads are public, writes require a bearer token
	sweetsGroup := r.Group("/api/sweets")
	sweetsGroup.GET("/", ListSweetsHandler(db, rdb))         // Catalog listing endpoint
	sweetsGroup.GET("/search", SearchSweetsHandler(db, rdb)) // Catalog search endpoint

	authed := sweetsGroup.Group("")
	authed.Use(middleware.JWTAuthMiddleware(db, jwtSecret)) // Protect write routes with JWT
	authed.POST("/", CreateSweetHandler(db, rdb))           // Create sweet endpoint
	authed.PUT("/:id", UpdateSweetHandler(db, rdb))         // Update sweet endpoint
	authed.POST("/:id/purchase", PurchaseHandler(db, rdb))  // Purchase endpoint

	// Admin routes (delete and restock)
	admin := sweetsGroup.Group("")
	admin.Use(middleware.JWTAuthMiddleware(db, jwtSecret), middleware.AdminOnlyMiddleware())
	admin.DELETE("/:id", DeleteSweetHandler(db, rdb))   // Delete sweet endpoint
	admin.POST("/:id/restock", RestockHandler(db, rdb)) // Restock endpoint

	return r
}
