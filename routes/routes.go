package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/renus-code/QuickBite/auth"
	cartControllers "github.com/renus-code/QuickBite/controllers/cart"
	catalogControllers "github.com/renus-code/QuickBite/controllers/catalog"
	giftcardControllers "github.com/renus-code/QuickBite/controllers/giftcard"
	orderControllers "github.com/renus-code/QuickBite/controllers/order"
	"github.com/renus-code/QuickBite/events"
)

// Deps carries the wired components the route groups need.
type Deps struct {
	DB      *gorm.DB
	Cart    *cartControllers.Engine
	Orders  *orderControllers.Manager
	Ledger  *giftcardControllers.Ledger
	Catalog *catalogControllers.Client
	Hub     *events.Hub
}

// SetupRoutes is the single entry point that wires up the route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// Public auth routes (no middleware)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignupHandler(d.DB))
		authGroup.POST("/login", auth.LoginHandler(d.DB))
		authGroup.POST("/logout", auth.LogoutHandler())
	}

	// Public catalog routes
	r.GET("/menu", catalogControllers.GetMenu(d.Catalog))
	r.GET("/restaurants", catalogControllers.GetRestaurants(d.Catalog))

	// Event stream for cart snapshots and order/gift-card messages
	r.GET("/ws/events", d.Hub.ServeWS)

	// User routes (JWT-protected)
	SetupUserRoutes(r, d)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, d)
}
