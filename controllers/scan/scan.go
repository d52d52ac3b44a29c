package scanControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Seitek2002/ibox-next/middleware"
	"github.com/Seitek2002/ibox-next/models"
)

// ExtractRoute turns a scanned QR payload (a URL) into the in-app route:
// scheme and host are dropped, everything after them is kept as-is.
func ExtractRoute(payload string) string {
	if strings.Contains(payload, "://") {
		parts := strings.Split(payload, "/")
		if len(parts) > 3 {
			return strings.Join(parts[3:], "/")
		}
		return ""
	}
	return strings.TrimPrefix(payload, "/")
}

// POST /scan
//
// A successful scan starts a fresh ordering context: the cart is cleared,
// the scanned route is remembered, and the client navigates to it.
func HandleScan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var input struct {
			Payload string `json:"payload" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		route := ExtractRoute(input.Payload)

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("session_id = ?", sess.ID).Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
			sess.CurrentURL = route
			return tx.Save(sess).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record scan"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"route": "/" + route})
	}
}

// POST /scan/camera-error
//
// The scanner reports a camera error kind and gets back the fallback to
// apply. Each distinct kind is acted on once per session until the user
// retries; repeats are acknowledged without a new action.
func HandleCameraError(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var input struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		seen, action := RecordCameraError(sess.CameraErrors, input.Name)
		if seen != sess.CameraErrors {
			sess.CameraErrors = seen
			if err := db.Save(sess).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
				return
			}
		}

		c.JSON(http.StatusOK, action)
	}
}

// POST /scan/retry
//
// The user asked to try again: forget which errors were already surfaced
// and go back to the rear camera.
func HandleScanRetry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		sess.CameraErrors = ""
		if err := db.Save(sess).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.JSON(http.StatusOK, FallbackAction{Constraint: CameraRear})
	}
}
