package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	sessionControllers "github.com/Seitek2002/ibox-next/controllers/session"
)

// SetupSessionRoutes registers all "/session" endpoints.
func SetupSessionRoutes(r *gin.Engine, db *gorm.DB) {
	sessionGroup := r.Group("/session")
	{
		sessionGroup.GET("", sessionControllers.GetSession)
		sessionGroup.POST("/phone", sessionControllers.SetPhone(db))
		sessionGroup.POST("/language", sessionControllers.SetLanguage(db))
	}
}
