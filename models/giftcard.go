package models

type GiftCard struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code             string  `gorm:"uniqueIndex;not null" json:"code"`
	Amount           float64 `json:"amount"`
	SenderName       string  `json:"sender_name"`
	RecipientName    string  `json:"recipient_name"`
	RecipientEmail   string  `gorm:"index" json:"recipient_email"`
	IsRedeemed       bool    `gorm:"default:false" json:"is_redeemed"`
	RedeemedByUserID *uint   `json:"redeemed_by_user_id"`
}
