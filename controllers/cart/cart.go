package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Seitek2002/ibox-next/middleware"
	"github.com/Seitek2002/ibox-next/models"
)

// AddToCartInput carries the product as the client got it from the venue
// payload, plus the selected modifier if any. Clamp is set by the
// quantity-selector flow: trim the request to the remaining stock instead
// of rejecting it whole.
type AddToCartInput struct {
	Product    models.Product `json:"product" binding:"required"`
	ModifierID *uint          `json:"modifierId"`
	Quantity   int            `json:"quantity" binding:"required,min=1"`
	Clamp      bool           `json:"clamp"`
}

// LineRefInput names one cart line by its composite identity.
type LineRefInput struct {
	ProductID  uint  `json:"productId" binding:"required"`
	ModifierID *uint `json:"modifierId"`
}

func sessionLines(db *gorm.DB, sessionID string) (models.CartLines, error) {
	var lines models.CartLines
	err := db.Where("session_id = ?", sessionID).Order("added_at").Find(&lines).Error
	return lines, err
}

func applyMerge(db *gorm.DB, sessionID string, res models.MergeResult) error {
	switch res.Op {
	case models.OpCreate:
		res.Line.SessionID = sessionID
		return db.Create(&res.Line).Error
	case models.OpUpdate:
		return db.Save(&res.Line).Error
	case models.OpDelete:
		return db.Delete(&models.CartLine{}, res.Line.ID).Error
	}
	return nil
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		lines, err := sessionLines(db, sess.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// POST /cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var mod *models.Modifier
		if input.ModifierID != nil {
			for i := range input.Product.Modificators {
				if input.Product.Modificators[i].ID == *input.ModifierID {
					mod = &input.Product.Modificators[i]
					break
				}
			}
			if mod == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown modifier for product"})
				return
			}
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			lines, err := sessionLines(tx, sess.ID)
			if err != nil {
				return err
			}
			res, err := lines.Add(input.Product, mod, input.Quantity, input.Clamp)
			if err != nil {
				return err
			}
			return applyMerge(tx, sess.ID, res)
		})
		if err != nil {
			respondCartError(c, err, db, sess.ID, input.Product)
			return
		}

		respondCart(c, db, sess.ID)
	}
}

// POST /cart/increment
func IncrementCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var input LineRefInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			lines, err := sessionLines(tx, sess.ID)
			if err != nil {
				return err
			}
			res, err := lines.Increment(input.ProductID, input.ModifierID)
			if err != nil {
				return err
			}
			return applyMerge(tx, sess.ID, res)
		})
		if err != nil {
			if errors.Is(err, models.ErrStockLimit) {
				c.JSON(http.StatusConflict, gin.H{"error": "Stock limit reached"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		respondCart(c, db, sess.ID)
	}
}

// POST /cart/decrement
func DecrementCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var input LineRefInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			lines, err := sessionLines(tx, sess.ID)
			if err != nil {
				return err
			}
			return applyMerge(tx, sess.ID, lines.Decrement(input.ProductID, input.ModifierID))
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		respondCart(c, db, sess.ID)
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		if err := db.Where("session_id = ?", sess.ID).Delete(&models.CartLine{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

func respondCart(c *gin.Context, db *gorm.DB, sessionID string) {
	lines, err := sessionLines(db, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, lines)
}

// respondCartError maps a stock violation to a recoverable 409 carrying
// the remaining count; everything else is a server failure.
func respondCartError(c *gin.Context, err error, db *gorm.DB, sessionID string, p models.Product) {
	if !errors.Is(err, models.ErrStockLimit) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	lines, lerr := sessionLines(db, sessionID)
	remaining := 0
	if lerr == nil {
		remaining = models.LimitOf(p.Quantity).Remaining(lines.TotalFor(p.ID))
	}
	c.JSON(http.StatusConflict, gin.H{"error": "Stock limit reached", "remaining": remaining})
}
