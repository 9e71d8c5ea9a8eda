package giftcardControllers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/renus-code/QuickBite/events"
	"github.com/renus-code/QuickBite/models"
)

// Rejection reasons for a redemption attempt. These are expected control
// flow, not faults: every one leaves all persisted state untouched.
var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrInvalidCode     = errors.New("invalid gift card code")
	ErrWrongRecipient  = errors.New("gift card sent to a different recipient")
	ErrAlreadyRedeemed = errors.New("gift card already redeemed")
)

const codeLength = 8

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Ledger issues gift cards and applies redemptions against user balances.
type Ledger struct {
	DB  *gorm.DB
	Hub *events.Hub
}

type PurchaseRequest struct {
	Amount         float64 `json:"amount" binding:"required"`
	SenderName     string  `json:"sender_name" binding:"required"`
	RecipientName  string  `json:"recipient_name" binding:"required"`
	RecipientEmail string  `json:"recipient_email" binding:"required,email"`
	Code           string  `json:"code"`
}

// Purchase persists a new unredeemed card, generating a redemption code
// when the caller did not supply one. Amount validation is left to the
// caller, matching the original behavior.
func (l *Ledger) Purchase(req PurchaseRequest) (*models.GiftCard, error) {
	code := req.Code
	if code == "" {
		var err error
		code, err = generateCode()
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
	}
	card := models.GiftCard{
		Code:           code,
		Amount:         req.Amount,
		SenderName:     req.SenderName,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		IsRedeemed:     false,
	}
	if err := l.DB.Create(&card).Error; err != nil {
		return nil, fmt.Errorf("persist gift card: %w", err)
	}
	return &card, nil
}

// Redeem validates and applies a redemption for the given user. The card
// flag flip and the balance credit commit in one transaction; a rejection
// rolls everything back. The returned message is user-facing either way.
func (l *Ledger) Redeem(code string, user *models.User) (string, error) {
	if user == nil {
		return "Please log in to redeem.", ErrNotLoggedIn
	}

	var card models.GiftCard
	err := l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", code).First(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCode
			}
			return fmt.Errorf("look up gift card: %w", err)
		}
		if !strings.EqualFold(card.RecipientEmail, user.Email) {
			return ErrWrongRecipient
		}
		if card.IsRedeemed {
			return ErrAlreadyRedeemed
		}

		card.IsRedeemed = true
		card.RedeemedByUserID = &user.ID
		if err := tx.Save(&card).Error; err != nil {
			return fmt.Errorf("update gift card: %w", err)
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("balance", gorm.Expr("balance + ?", card.Amount)).Error; err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}
		return nil
	})

	switch {
	case err == nil:
		user.Balance += card.Amount
		msg := fmt.Sprintf("Success! $%.2f added to your account.", card.Amount)
		l.Hub.Publish("giftcard", map[string]interface{}{
			"user_email": user.Email,
			"message":    msg,
		})
		return msg, nil
	case errors.Is(err, ErrInvalidCode):
		return "Invalid gift card code.", err
	case errors.Is(err, ErrWrongRecipient):
		return fmt.Sprintf("Failed: This card was sent to %s, not you.", card.RecipientEmail), err
	case errors.Is(err, ErrAlreadyRedeemed):
		return "This gift card has already been redeemed.", err
	default:
		return "Something went wrong. Please try again.", err
	}
}

// CardsForRecipient lists cards sent to the given email.
func (l *Ledger) CardsForRecipient(email string) ([]models.GiftCard, error) {
	var cards []models.GiftCard
	err := l.DB.Where("LOWER(recipient_email) = LOWER(?)", email).
		Order("id DESC").
		Find(&cards).Error
	return cards, err
}

// generateCode returns a short, high-entropy, human-typeable redemption
// code: 8 uppercase alphanumeric characters.
func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
