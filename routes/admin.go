package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/renus-code/QuickBite/controllers/order"
	userControllers "github.com/renus-code/QuickBite/controllers/user"
	"github.com/renus-code/QuickBite/middleware"
)

// SetupAdminRoutes registers the "/admin/*" endpoints behind the API key.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(d.Orders))
		adminGroup.GET("/orders/export", orderControllers.ExportOrdersToExcel(d.Orders))
	}
}
