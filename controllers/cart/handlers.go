package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renus-code/QuickBite/models"
)

type AddItemInput struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

func currentEmail(c *gin.Context) (string, bool) {
	val, exists := c.Get("user_email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return val.(string), true
}

// GET /user/cart
func GetCart(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		subtotal, tax, total := engine.Totals(email)
		c.JSON(http.StatusOK, gin.H{
			"items":    engine.Items(email),
			"subtotal": subtotal,
			"tax":      tax,
			"total":    total,
		})
	}
}

// POST /user/cart
func AddToCart(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		engine.AddToCart(email, models.FoodItem{
			ID:       input.ID,
			Name:     input.Name,
			Price:    input.Price,
			ImageURL: input.ImageURL,
		})
		c.JSON(http.StatusOK, gin.H{"items": engine.Items(email)})
	}
}

// PUT /user/cart/:item_id/increase
func IncreaseQuantity(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		engine.IncreaseQuantity(email, c.Param("item_id"))
		c.JSON(http.StatusOK, gin.H{"items": engine.Items(email)})
	}
}

// PUT /user/cart/:item_id/decrease
func DecreaseQuantity(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		engine.DecreaseQuantity(email, c.Param("item_id"))
		c.JSON(http.StatusOK, gin.H{"items": engine.Items(email)})
	}
}

// DELETE /user/cart
func ClearCart(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		engine.ClearCart(email)
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// POST /user/cart/restore
func RestoreCart(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		engine.Restore(c.Request.Context(), email)
		c.JSON(http.StatusOK, gin.H{"items": engine.Items(email)})
	}
}

// GET /user/searches
func GetRecentSearches(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"searches": engine.RecentSearches(c.Request.Context(), email)})
	}
}

// POST /user/searches
func RecordSearch(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		var input struct {
			Query string `json:"query" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		engine.RecordSearch(c.Request.Context(), email, input.Query)
		c.JSON(http.StatusOK, gin.H{"searches": engine.RecentSearches(c.Request.Context(), email)})
	}
}

// DELETE /user/searches
func ClearRecentSearches(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		engine.ClearRecentSearches(c.Request.Context(), email)
		c.JSON(http.StatusOK, gin.H{"message": "Search history cleared"})
	}
}
