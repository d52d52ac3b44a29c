package middleware

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Seitek2002/ibox-next/models"
)

const (
	// SessionCookie carries a signed token identifying the client's
	// server-side session row.
	SessionCookie = "ibox_session"

	sessionMaxAge = 180 * 24 * 60 * 60 // seconds
	sessionKey    = "session"
)

func sessionSecret() []byte {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "ibox-dev-session-secret"
	}
	return []byte(secret)
}

// Session loads the caller's session row from the cookie, creating a
// fresh one (pickup order type, spot 0) on first contact.
func Session(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess models.Session

		id := sessionIDFromCookie(c)
		if id != "" {
			if err := db.First(&sess, "id = ?", id).Error; err != nil {
				id = ""
			}
		}

		if id == "" {
			sess = models.Session{
				ID:        uuid.NewString(),
				OrderType: models.OrderTypePickup,
			}
			if err := db.Create(&sess).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
				c.Abort()
				return
			}
			token, err := signSessionID(sess.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session"})
				c.Abort()
				return
			}
			c.SetCookie(SessionCookie, token, sessionMaxAge, "/", "", false, true)
		}

		c.Set(sessionKey, &sess)
		c.Next()
	}
}

// CurrentSession returns the session the Session middleware attached.
func CurrentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}

// RequireVenue blocks cart and order endpoints until the session carries
// a venue context. This is the whole of "authentication" here.
func RequireVenue(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil || sess.Venue == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No venue context"})
		c.Abort()
		return
	}
	c.Next()
}

func signSessionID(id string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": id,
	})
	return token.SignedString(sessionSecret())
}

func sessionIDFromCookie(c *gin.Context) string {
	tokenString, err := c.Cookie(SessionCookie)
	if err != nil || tokenString == "" {
		return ""
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return sessionSecret(), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	id, _ := claims["session_id"].(string)
	return id
}
