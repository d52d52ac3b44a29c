package venueControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Seitek2002/ibox-next/middleware"
	"github.com/Seitek2002/ibox-next/models"
	"github.com/Seitek2002/ibox-next/upstream"
)

// OrderContext is the part of the session the URL controls.
type OrderContext struct {
	Type       int
	ActiveSpot int
}

// ResolveOrderContext derives the next order context from the spot path
// segment. Order type is always pickup (delivery was removed). A missing
// or non-numeric segment keeps the stored spot. The changed flag is false
// when the session already matches, so repeated resolution with the same
// inputs writes nothing.
func ResolveOrderContext(spotSegment string, current OrderContext) (OrderContext, bool) {
	next := OrderContext{Type: models.OrderTypePickup, ActiveSpot: current.ActiveSpot}
	if n, err := strconv.Atoi(spotSegment); err == nil {
		next.ActiveSpot = n
	}
	return next, next != current
}

// Referral is what the promo/ref query parameters resolve to: values to
// persist and whether to redirect to the query-less URL. The clean URL
// carries no query, so the redirect happens at most once per navigation.
type Referral struct {
	PromoSet   bool
	PromoValue string
	RefSet     bool
	RefValue   string
	Redirect   bool
}

// ResolveReferral reads promo and ref/refId from a raw query. A present
// parameter is persisted even when empty; only non-empty values trigger
// the canonicalizing redirect.
func ResolveReferral(query map[string][]string) Referral {
	var r Referral
	get := func(key string) (string, bool) {
		vs, ok := query[key]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	}
	if v, ok := get("promo"); ok {
		r.PromoSet = true
		r.PromoValue = v
	}
	if v, ok := get("ref"); ok {
		r.RefSet = true
		r.RefValue = v
	} else if v, ok := get("refId"); ok {
		r.RefSet = true
		r.RefValue = v
	}
	r.Redirect = r.PromoValue != "" || r.RefValue != ""
	return r
}

// GET /venues
func ListVenues(client *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		venues, err := client.GetVenues()
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch venues"})
			return
		}
		c.JSON(http.StatusOK, venues)
	}
}

// Resolve is the venue gate. It claims every path no static route took:
//
//	/                  -> organizations list
//	/:venue            -> venue by slug (needs a previously stored spot)
//	/:venue/:spotId    -> venue scoped to the spot/table code
func Resolve(db *gorm.DB, client *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		parts := strings.Split(strings.Trim(c.Request.URL.Path, "/"), "/")
		switch {
		case len(parts) == 1 && parts[0] == "":
			ListVenues(client)(c)
		case len(parts) == 1:
			resolveVenue(c, db, client, parts[0], "")
		case len(parts) == 2:
			resolveVenue(c, db, client, parts[0], parts[1])
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		}
	}
}

func resolveVenue(c *gin.Context, db *gorm.DB, client *upstream.Client, slug, spotSegment string) {
	sess := middleware.CurrentSession(c)

	if !applyOrderContext(c, db, sess, spotSegment) {
		return
	}
	if captureReferral(c, db, sess) {
		return
	}

	var (
		venue *models.Venue
		err   error
	)
	switch {
	case spotSegment != "":
		// The numeric code doubles as the table lookup key upstream, so
		// the payload comes back table-scoped when it names a table.
		if _, numErr := strconv.Atoi(spotSegment); numErr == nil {
			venue, err = client.GetVenueTable(slug, spotSegment)
		} else {
			venue, err = client.GetVenue(slug, nil)
		}
	case sess.ActiveSpot != 0:
		spot := sess.ActiveSpot
		venue, err = client.GetVenue(slug, &spot)
	default:
		// A venue opened without any spot context goes back to the root.
		c.Redirect(http.StatusFound, "/")
		return
	}

	respondVenue(c, db, sess, slug, venue, err)
}

// captureReferral persists promo/ref signals and redirects to the clean
// URL when any were present. The redirect targets the bare path, so
// every query parameter is dropped with it, not just the referral ones.
// Returns true when the request was finished by a redirect or an error.
func captureReferral(c *gin.Context, db *gorm.DB, sess *models.Session) bool {
	r := ResolveReferral(c.Request.URL.Query())
	changed := false
	if r.PromoSet && sess.Promo != r.PromoValue {
		sess.Promo = r.PromoValue
		changed = true
	}
	if r.RefSet && sess.RefID != r.RefValue {
		sess.RefID = r.RefValue
		changed = true
	}
	if changed {
		if err := db.Save(sess).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return true
		}
	}
	if r.Redirect {
		c.Redirect(http.StatusFound, c.Request.URL.Path)
		return true
	}
	return false
}

// applyOrderContext updates type/activeSpot from the path, writing the
// session only when something actually changed.
func applyOrderContext(c *gin.Context, db *gorm.DB, sess *models.Session, spotSegment string) bool {
	next, changed := ResolveOrderContext(spotSegment, OrderContext{
		Type:       sess.OrderType,
		ActiveSpot: sess.ActiveSpot,
	})
	if !changed {
		return true
	}
	sess.OrderType = next.Type
	sess.ActiveSpot = next.ActiveSpot
	if err := db.Save(sess).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return false
	}
	return true
}

func respondVenue(c *gin.Context, db *gorm.DB, sess *models.Session, slug string, venue *models.Venue, err error) {
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch venue"})
		return
	}

	// Switching venues invalidates the cart built for the previous one.
	if sess.Venue != slug {
		if err := db.Where("session_id = ?", sess.ID).Delete(&models.CartLine{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset cart"})
			return
		}
		sess.Venue = slug
		sess.MainPage = c.Request.URL.Path
		if err := db.Save(sess).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
	}

	c.JSON(http.StatusOK, venue)
}
