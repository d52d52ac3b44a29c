package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Seitek2002/ibox-next/controllers/cart"
	"github.com/Seitek2002/ibox-next/middleware"
)

// SetupCartRoutes registers all "/cart" endpoints. Requires a venue
// context on the session.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.RequireVenue)
	{
		cartGroup.GET("", cartControllers.GetCart(db))
		cartGroup.POST("", cartControllers.AddToCart(db))
		cartGroup.POST("/increment", cartControllers.IncrementCartItem(db))
		cartGroup.POST("/decrement", cartControllers.DecrementCartItem(db))
		cartGroup.DELETE("", cartControllers.ClearCart(db))
	}
}
