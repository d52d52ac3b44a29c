package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/Seitek2002/ibox-next/controllers/order"
)

// SetupOrderRoutes registers the websocket bridge to the upstream orders
// channel.
func SetupOrderRoutes(r *gin.Engine) {
	r.GET("/ws/orders", orderControllers.OrdersWebSocketHandler)
}
