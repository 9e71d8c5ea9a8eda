package giftcardControllers

import (
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/renus-code/QuickBite/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.GiftCard{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", DisplayName: email}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestPurchaseGeneratesCode(t *testing.T) {
	db := openTestDB(t)
	l := &Ledger{DB: db}

	card, err := l.Purchase(PurchaseRequest{
		Amount:         50,
		SenderName:     "Alice",
		RecipientName:  "Bob",
		RecipientEmail: "bob@x.com",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8}$`), card.Code)
	assert.False(t, card.IsRedeemed)
	assert.Nil(t, card.RedeemedByUserID)
}

func TestPurchaseKeepsCallerCode(t *testing.T) {
	db := openTestDB(t)
	l := &Ledger{DB: db}

	card, err := l.Purchase(PurchaseRequest{
		Amount:         25,
		SenderName:     "Alice",
		RecipientName:  "Bob",
		RecipientEmail: "bob@x.com",
		Code:           "GIFT2024",
	})
	require.NoError(t, err)
	assert.Equal(t, "GIFT2024", card.Code)
}

func TestRedeemCreditsBalance(t *testing.T) {
	db := openTestDB(t)
	l := &Ledger{DB: db}
	bob := createUser(t, db, "bob@x.com")

	card, err := l.Purchase(PurchaseRequest{
		Amount: 50, SenderName: "Alice", RecipientName: "Bob", RecipientEmail: "bob@x.com",
	})
	require.NoError(t, err)

	msg, err := l.Redeem(card.Code, bob)
	require.NoError(t, err)
	assert.Equal(t, "Success! $50.00 added to your account.", msg)
	assert.InDelta(t, 50.0, bob.Balance, 1e-9)

	var stored models.User
	require.NoError(t, db.First(&stored, bob.ID).Error)
	assert.InDelta(t, 50.0, stored.Balance, 1e-9)

	var storedCard models.GiftCard
	require.NoError(t, db.First(&storedCard, card.ID).Error)
	assert.True(t, storedCard.IsRedeemed)
	require.NotNil(t, storedCard.RedeemedByUserID)
	assert.Equal(t, bob.ID, *storedCard.RedeemedByUserID)
}

func TestRedeemTwiceCreditsOnce(t *testing.T) {
	db := openTestDB(t)
	l := &Ledger{DB: db}
	bob := createUser(t, db, "bob@x.com")

	card, err := l.Purchase(PurchaseRequest{
		Amount: 50, SenderName: "Alice", RecipientName: "Bob", RecipientEmail: "bob@x.com",
	})
	require.NoError(t, err)

	_, err = l.Redeem(card.Code, bob)
	require.NoError(t, err)

	msg, err := l.Redeem(card.Code, bob)
	assert.ErrorIs(t, err, ErrAlreadyRedeemed)
	assert.Equal(t, "This gift card has already been redeemed.", msg)

	var stored models.User
	require.NoError(t, db.First(&stored, bob.ID).Error)
	assert.InDelta(t, 50.0, stored.Balance, 1e-9, "exactly one credit for any code")
}

func TestRedeemWrongRecipient(t *testing.T) {
	db := openTestDB(t)
	l := &Ledger{DB: db}
	alice := createUser(t, db, "alice@x.com")

	card, err := l.Purchase(PurchaseRequest{
		Amount: 50, SenderName: "Alice", RecipientName: "Bob", RecipientEmail: "bob@x.com",
	})
	require.NoError(t, err)

	msg, err := l.Redeem(card.Code, alice)
	assert.ErrorIs(t, err, ErrWrongRecipient)
	assert.Equal(t, "Failed: This card was sent to bob@x.com, not you.", msg)

	// Nothing may change on either side of the rejected redemption.
	var stored models.User
	require.NoError(t, db.First(&stored, alice.ID).Error)
	assert.Zero(t, stored.Balance)

	var storedCard models.GiftCard
	require.NoError(t, db.First(&storedCard, card.ID).Error)
	assert.False(t, storedCard.IsRedeemed)
	assert.Nil(t, storedCard.RedeemedByUserID)
}

func TestRedeemRecipientMatchIsCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	l := &Ledger{DB: db}
	bob := createUser(t, db, "Bob@X.Com")

	card, err := l.Purchase(PurchaseRequest{
		Amount: 10, SenderName: "Alice", RecipientName: "Bob", RecipientEmail: "bob@x.com",
	})
	require.NoError(t, err)

	_, err = l.Redeem(card.Code, bob)
	assert.NoError(t, err)
}

func TestRedeemUnknownCode(t *testing.T) {
	db := openTestDB(t)
	l := &Ledger{DB: db}
	bob := createUser(t, db, "bob@x.com")

	msg, err := l.Redeem("NOPE1234", bob)
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, "Invalid gift card code.", msg)
}

func TestRedeemLoggedOut(t *testing.T) {
	db := openTestDB(t)
	l := &Ledger{DB: db}

	msg, err := l.Redeem("ANYTHING", nil)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Equal(t, "Please log in to redeem.", msg)
}

func TestCardsForRecipient(t *testing.T) {
	db := openTestDB(t)
	l := &Ledger{DB: db}

	for _, email := range []string{"bob@x.com", "bob@x.com", "alice@x.com"} {
		_, err := l.Purchase(PurchaseRequest{
			Amount: 5, SenderName: "S", RecipientName: "R", RecipientEmail: email,
		})
		require.NoError(t, err)
	}

	cards, err := l.CardsForRecipient("BOB@x.com")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}
