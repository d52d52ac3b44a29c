package sessionControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Seitek2002/ibox-next/middleware"
)

var languages = map[string]bool{"ru": true, "kg": true, "en": true}

// GET /session
func GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentSession(c))
}

// POST /session/phone
func SetPhone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var input struct {
			Phone string `json:"phone" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, input.Phone)
		if digits == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone must contain digits"})
			return
		}

		sess.PhoneNumber = digits
		if err := db.Save(sess).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// POST /session/language
func SetLanguage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var input struct {
			Language string `json:"language" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		lang := strings.ToLower(input.Language)
		if !languages[lang] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})
			return
		}

		sess.Language = lang
		if err := db.Save(sess).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}
