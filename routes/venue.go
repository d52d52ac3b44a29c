package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	venueControllers "github.com/Seitek2002/ibox-next/controllers/venue"
	"github.com/Seitek2002/ibox-next/upstream"
)

// SetupVenueRoutes registers the venues listing and the catch-all venue
// gate handling /:venue and /:venue/:spotId.
func SetupVenueRoutes(r *gin.Engine, db *gorm.DB, client *upstream.Client) {
	r.GET("/venues", venueControllers.ListVenues(client))
	r.NoRoute(venueControllers.Resolve(db, client))
}
