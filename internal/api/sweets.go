package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library

	"sweetshop/internal/domain" // Domain models
	"sweetshop/internal/store"  // Data access
	"sweetshop/internal/utils"  // Cache utilities
)

// cacheTTL bounds how stale a cached catalog listing can get.
const cacheTTL = 60 * time.Second

// sweetCachePrefix namespaces every catalog cache key so writes can
// invalidate the whole family at once.
const sweetCachePrefix = "sweets:"

// SweetRequest is the JSON body for creating and updating sweets
type SweetRequest struct {
	Name     string  `json:"name" binding:"required"`     // Product name
	Category string  `json:"category" binding:"required"` // Catalog category
	Price    float64 `json:"price" binding:"required"`    // Unit price
	Quantity int     `json:"quantity"`                    // Initial stock (create only, defaults to 0)
}

// sweetID parses the path id, responding 404 on garbage input
func sweetID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Sweet not found"})
		return 0, false
	}
	return uint(id), true
}

// invalidateSweetCache drops every cached catalog listing after a write
func invalidateSweetCache(rdb *redis.Client) {
	if rdb == nil {
		return // Caching disabled
	}
	if err := utils.InvalidateCachePrefix(context.Background(), rdb, sweetCachePrefix); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate sweets cache")
	}
}

// CreateSweetHandler adds a new item to the catalog
func CreateSweetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SweetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return validation error
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}
		// Persist the new sweet
		sweet, err := store.CreateSweet(db, store.SweetSpec{
			Name:     req.Name,     // Product name
			Category: req.Category, // Catalog category
			Price:    req.Price,    // Unit price
			Quantity: req.Quantity, // Initial stock
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  req.Name,    // Product name
				"error": err.Error(), // Error message
			}).Error("Failed to create sweet") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create sweet"})
			return
		}
		// Log the catalog change
		logrus.WithFields(logrus.Fields{
			"sweet_id": sweet.ID,           // New sweet ID
			"name":     sweet.Name,         // Product name
			"user":     currentUsername(c), // Acting user
		}).Info("Sweet created") // Log catalog addition
		invalidateSweetCache(rdb)    // Listings are stale now
		c.JSON(http.StatusOK, sweet) // Return the created record
	}
}

// ListSweetsHandler returns a window of the catalog in insertion order
func ListSweetsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))     // Offset into the catalog
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100")) // Window size
		ctx := context.Background()                              // Context for Redis operations
		// Cache key carries the pagination window
		cacheKey := sweetCachePrefix + "list:skip=" + strconv.Itoa(skip) + ":limit=" + strconv.Itoa(limit)
		var cached []domain.Sweet
		if rdb != nil {
			// If cached data found, return it
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
		sweets, err := store.ListSweets(db, skip, limit) // Fetch from the database
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch sweets"})
			return
		}
		if sweets == nil {
			sweets = []domain.Sweet{} // Serialize an empty array, not null
		}
		if rdb != nil {
			// Cache the listing for future requests
			_ = utils.SetCache(ctx, rdb, cacheKey, sweets, cacheTTL)
		}
		c.JSON(http.StatusOK, sweets) // Return the listing
	}
}

// SearchSweetsHandler filters the catalog; every provided filter is ANDed
func SearchSweetsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter store.SweetFilter // Optional filters, absent means no-op
		if name := c.Query("name"); name != "" {
			filter.Name = &name // Substring match on name
		}
		if category := c.Query("category"); category != "" {
			filter.Category = &category // Exact match on category
		}
		if raw := c.Query("min_price"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				filter.MinPrice = &v // Inclusive lower price bound
			}
		}
		if raw := c.Query("max_price"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				filter.MaxPrice = &v // Inclusive upper price bound
			}
		}
		ctx := context.Background() // Context for Redis operations
		// Build the cache key from all query params
		var keyParts []string
		for _, k := range []string{"name", "category", "min_price", "max_price"} {
			keyParts = append(keyParts, k+"="+c.DefaultQuery(k, "")) // Append key-value pair
		}
		cacheKey := sweetCachePrefix + "search:" + strings.Join(keyParts, ":")
		var cached []domain.Sweet
		if rdb != nil {
			// If cached data found, return it
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
		sweets, err := store.SearchSweets(db, filter) // Run the filtered query
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to search sweets"})
			return
		}
		if sweets == nil {
			sweets = []domain.Sweet{} // Serialize an empty array, not null
		}
		if rdb != nil {
			// Cache the result for future requests
			_ = utils.SetCache(ctx, rdb, cacheKey, sweets, cacheTTL)
		}
		c.JSON(http.StatusOK, sweets) // Return the filtered listing
	}
}

// UpdateSweetHandler replaces name, category and price of a catalog item
func UpdateSweetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sweetID(c) // Parse the path id
		if !ok {
			return
		}
		var req SweetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return validation error
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}
		// Apply the full replace
		sweet, err := store.UpdateSweet(db, id, req.Name, req.Category, req.Price)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Sweet not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update sweet"})
			return
		}
		invalidateSweetCache(rdb)    // Listings are stale now
		c.JSON(http.StatusOK, sweet) // Return the updated record
	}
}

// DeleteSweetHandler removes a catalog item (admin only)
func DeleteSweetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sweetID(c) // Parse the path id
		if !ok {
			return
		}
		sweet, err := store.DeleteSweet(db, id) // Remove the row
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Sweet not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete sweet"})
			return
		}
		// Log the catalog change
		logrus.WithFields(logrus.Fields{
			"sweet_id": sweet.ID,           // Removed sweet ID
			"name":     sweet.Name,         // Product name
			"user":     currentUsername(c), // Acting admin
		}).Info("Sweet deleted") // Log catalog removal
		invalidateSweetCache(rdb) // Listings are stale now
		c.JSON(http.StatusOK, gin.H{"message": "Sweet deleted successfully"})
	}
}

// PurchaseHandler decrements stock for a purchase; quantity defaults to 1
func PurchaseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sweetID(c) // Parse the path id
		if !ok {
			return
		}
		quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1")) // Units to purchase
		if err != nil || quantity <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "quantity must be positive"})
			return
		}
		sweet, err := store.PurchaseSweet(db, id, quantity) // Conditional decrement
		if err != nil {
			if errors.Is(err, store.ErrOutOfStock) {
				// Absent item and insufficient stock share one answer
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Sweet not found or out of stock"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to purchase sweet"})
			return
		}
		// Log the stock movement
		logrus.WithFields(logrus.Fields{
			"sweet_id":  sweet.ID,           // Sweet ID
			"quantity":  quantity,           // Units purchased
			"remaining": sweet.Quantity,     // Stock after purchase
			"user":      currentUsername(c), // Acting user
		}).Info("Sweet purchased") // Log purchase
		invalidateSweetCache(rdb)    // Listings are stale now
		c.JSON(http.StatusOK, sweet) // Return the updated record
	}
}

// RestockHandler increments stock (admin only); quantity must be positive
func RestockHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sweetID(c) // Parse the path id
		if !ok {
			return
		}
		quantity, err := strconv.Atoi(c.Query("quantity")) // Units to add
		if err != nil || quantity <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "quantity must be positive"})
			return
		}
		sweet, err := store.RestockSweet(db, id, quantity) // Atomic increment
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Sweet not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to restock sweet"})
			return
		}
		// Log the stock movement
		logrus.WithFields(logrus.Fields{
			"sweet_id": sweet.ID,           // Sweet ID
			"quantity": quantity,           // Units added
			"stock":    sweet.Quantity,     // Stock after restock
			"user":     currentUsername(c), // Acting admin
		}).Info("Sweet restocked") // Log restock
		invalidateSweetCache(rdb)    // Listings are stale now
		c.JSON(http.StatusOK, sweet) // Return the updated record
	}
}
