package models

import "time"

// Order types. Delivery was removed from the product; every order is a
// self-pickup, but the numeric code is kept for client compatibility.
const OrderTypePickup = 2

// Session is the server-side home of what the web client used to keep in
// localStorage: the order context, the venue marker, referral signals and
// the last scanned route. One row per client, keyed by the session cookie.
type Session struct {
	ID          string `gorm:"primaryKey" json:"-"`
	OrderType   int    `json:"type"`
	ActiveSpot  int    `json:"activeSpot"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Venue       string `json:"venue,omitempty"`    // slug of the venue in context; presence gates cart/order routes
	MainPage    string `json:"mainPage,omitempty"` // route to fall back to when the cart page is unreachable
	Promo       string `json:"promo,omitempty"`
	RefID       string `json:"refId,omitempty"`
	CurrentURL  string `json:"currentUrl,omitempty"`
	Language    string `json:"language,omitempty"`
	// CameraErrors lists scanner error kinds already acted on, so each
	// one is surfaced at most once until the user retries.
	CameraErrors string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
