package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/renus-code/QuickBite/controllers/cart"
	giftcardControllers "github.com/renus-code/QuickBite/controllers/giftcard"
	orderControllers "github.com/renus-code/QuickBite/controllers/order"
	userControllers "github.com/renus-code/QuickBite/controllers/user"
	"github.com/renus-code/QuickBite/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(d.DB))
		userGroup.PUT("/", userControllers.UpdateUser(d.DB))
		userGroup.DELETE("/", userControllers.DeleteUser(d.DB))

		// ──────────────── Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(d.Cart))
			cartGroup.POST("/", cartControllers.AddToCart(d.Cart))
			cartGroup.PUT("/:item_id/increase", cartControllers.IncreaseQuantity(d.Cart))
			cartGroup.PUT("/:item_id/decrease", cartControllers.DecreaseQuantity(d.Cart))
			cartGroup.DELETE("/", cartControllers.ClearCart(d.Cart))
			cartGroup.POST("/restore", cartControllers.RestoreCart(d.Cart))
		}

		// ──────────────── Recent searches ────────────────
		userGroup.GET("/searches", cartControllers.GetRecentSearches(d.Cart))
		userGroup.POST("/searches", cartControllers.RecordSearch(d.Cart))
		userGroup.DELETE("/searches", cartControllers.ClearRecentSearches(d.Cart))

		// ──────────────── Orders ────────────────
		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.POST("/", orderControllers.PlaceOrderHandler(d.Orders))
			orderGroup.GET("/", orderControllers.GetUserOrdersHandler(d.Orders))
			orderGroup.GET("/:orderID", orderControllers.GetOrderByIDHandler(d.Orders))
			orderGroup.POST("/:orderID/reorder", orderControllers.ReorderHandler(d.Orders))
		}

		// ──────────────── Gift cards ────────────────
		giftGroup := userGroup.Group("/giftcards")
		{
			giftGroup.POST("/", giftcardControllers.PurchaseHandler(d.Ledger))
			giftGroup.GET("/", giftcardControllers.ListMineHandler(d.Ledger))
			giftGroup.POST("/redeem", giftcardControllers.RedeemHandler(d.Ledger))
			giftGroup.GET("/:code/qr", giftcardControllers.CodeQRHandler(d.Ledger))
		}
	}
}
