package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	scanControllers "github.com/Seitek2002/ibox-next/controllers/scan"
)

// SetupScanRoutes registers all "/scan" endpoints.
func SetupScanRoutes(r *gin.Engine, db *gorm.DB) {
	scanGroup := r.Group("/scan")
	{
		scanGroup.POST("", scanControllers.HandleScan(db))
		scanGroup.POST("/camera-error", scanControllers.HandleCameraError(db))
		scanGroup.POST("/retry", scanControllers.HandleScanRetry(db))
	}
}
