package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type User struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Email         string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string      `gorm:"not null" json:"-"`
	DisplayName   string      `json:"display_name"`
	PhoneNumber   string      `json:"phone_number"`
	Addresses     AddressList `gorm:"type:text" json:"addresses"`
	PaymentMethod string      `json:"payment_method"`
	AvatarID      string      `json:"avatar_id"`
	Balance       float64     `json:"balance"`
	IsDarkMode    bool        `json:"is_dark_mode"`
	CreatedAt     time.Time   `json:"created_at"`
}

type Address struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// AddressList is stored as a JSON column so the user row stays a single
// record, matching the original schema.
type AddressList []Address

func (a AddressList) Value() (driver.Value, error) {
	if a == nil {
		a = AddressList{}
	}
	return json.Marshal(a)
}

func (a *AddressList) Scan(value interface{}) error {
	if value == nil {
		*a = AddressList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("unsupported type for AddressList")
	}
}
