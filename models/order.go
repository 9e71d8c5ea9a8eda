package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type OrderStatus string

const (
	// Order statuses, advanced strictly in this sequence once placed.
	OrderStatusPlaced         OrderStatus = "Placed"
	OrderStatusProcessing     OrderStatus = "Processing"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered" // terminal
)

var orderStatusSequence = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusProcessing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// Next returns the status following s, or false when s is terminal or
// unknown. There is no cancellation path and no backward transition.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, cur := range orderStatusSequence {
		if cur == s && i+1 < len(orderStatusSequence) {
			return orderStatusSequence[i+1], true
		}
	}
	return "", false
}

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef        string      `gorm:"uniqueIndex" json:"order_ref"`
	UserEmail       string      `gorm:"index" json:"user_email"`
	Items           StringList  `gorm:"type:text" json:"items"`
	LineItems       []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"line_items"`
	TotalPrice      float64     `json:"total_price"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'Placed'" json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderLine keeps the structured snapshot of a cart entry so a previous
// order can be rebuilt into a cart without losing prices. The display
// strings in Order.Items are derived from these at placement time.
type OrderLine struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	FoodID    string  `json:"food_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// StringList is the denormalized "Name (xN)" item list stored as JSON.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}
