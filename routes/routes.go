package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Seitek2002/ibox-next/upstream"
)

// SetupRoutes is the single entry-point that wires up the session,
// cart, scan, order and venue route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, client *upstream.Client) {
	SetupSessionRoutes(r, db)

	SetupCartRoutes(r, db)

	SetupScanRoutes(r, db)

	SetupOrderRoutes(r)

	// Venue resolution is the catch-all: it owns /:venue and
	// /:venue/:spotId, so it must be registered last.
	SetupVenueRoutes(r, db, client)
}
