package giftcardControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/renus-code/QuickBite/models"
)

func currentEmail(c *gin.Context) (string, bool) {
	val, exists := c.Get("user_email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return val.(string), true
}

func loadCurrentUser(db *gorm.DB, c *gin.Context) (*models.User, bool) {
	email, ok := currentEmail(c)
	if !ok {
		return nil, false
	}
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}

// POST /user/giftcards
func PurchaseHandler(l *Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentEmail(c); !ok {
			return
		}
		var req PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		card, err := l.Purchase(req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gift card"})
			return
		}
		c.JSON(http.StatusCreated, card)
	}
}

// POST /user/giftcards/redeem
func RedeemHandler(l *Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(l.DB, c)
		if !ok {
			return
		}
		var req struct {
			Code string `json:"code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		msg, err := l.Redeem(req.Code, user)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": msg, "balance": user.Balance})
		case errors.Is(err, ErrInvalidCode):
			c.JSON(http.StatusNotFound, gin.H{"error": msg})
		case errors.Is(err, ErrWrongRecipient), errors.Is(err, ErrNotLoggedIn):
			c.JSON(http.StatusForbidden, gin.H{"error": msg})
		case errors.Is(err, ErrAlreadyRedeemed):
			c.JSON(http.StatusConflict, gin.H{"error": msg})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		}
	}
}

// GET /user/giftcards
func ListMineHandler(l *Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentEmail(c)
		if !ok {
			return
		}
		cards, err := l.CardsForRecipient(email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gift cards"})
			return
		}
		c.JSON(http.StatusOK, cards)
	}
}

// GET /user/giftcards/:code/qr
//
// Renders the redemption code as a PNG so the sender can share it.
func CodeQRHandler(l *Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentEmail(c); !ok {
			return
		}
		code := c.Param("code")
		var card models.GiftCard
		if err := l.DB.Where("code = ?", code).First(&card).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid gift card code."})
			return
		}
		png, err := qrcode.Encode(card.Code, qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
